// Package lsp serves EDS documents to editors over the Language Server
// Protocol: document symbols from the flattened outline and inline values
// for statements.
package lsp

import (
	"context"
	"encoding/json"
	"io"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/diagnostic"
	"github.com/walteh/eds-lsp/pkg/eds"
)

const ServerName = "edsls"

// codeServerNotInitialized is the LSP error for requests sent before
// initialize.
const codeServerNotInitialized = -32002

// Server represents an LSP server instance
type Server struct {
	documents *DocumentManager
	cfg       *config.Config

	id      string
	version string
	parse   func(ctx context.Context, text string) (*eds.Document, error)

	diagnostics diagnostic.Generator

	initialized atomic.Bool
	shutdown    atomic.Bool
}

func NewServer(ctx context.Context, cfg *config.Config, version string) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		id:        xid.New().String(),
		documents: NewDocumentManager(),
		cfg:       cfg,
		version:   version,
		parse:     eds.Parse,

		diagnostics: diagnostic.NewDefaultGenerator(),
	}
}

func (s *Server) Documents() *DocumentManager {
	return s.documents
}

// Start serves one client over rwc with Content-Length framing and blocks
// until the connection closes or ctx is done. Logs produced while serving
// are sent to the client; fallback receives anything logged before the
// connection is up.
func (s *Server) Start(ctx context.Context, rwc io.ReadWriteCloser, fallback io.Writer) error {
	w := NewLSPWriter(ctx, s.id, fallback)
	ctx = s.ApplyLSPWriter(ctx, w)

	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	w.Attach(conn)

	zerolog.Ctx(ctx).Debug().Str("version", s.version).Msg("language server listening")

	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		if err := conn.Close(); err != nil && err != jsonrpc2.ErrClosed {
			return errors.Errorf("closing connection: %w", err)
		}
		return ctx.Err()
	}
}

type handlerFunc func(ctx context.Context, req *jsonrpc2.Request) (interface{}, error)

func (s *Server) routes(conn *jsonrpc2.Conn) map[string]handlerFunc {
	return map[string]handlerFunc{
		"initialize":                  s.handleInitialize,
		"initialized":                 s.handleInitialized,
		"shutdown":                    s.handleShutdown,
		"exit":                        s.exitHandler(conn),
		"textDocument/didOpen":        withConn(conn, s.handleTextDocumentDidOpen),
		"textDocument/didChange":      withConn(conn, s.handleTextDocumentDidChange),
		"textDocument/didClose":       withConn(conn, s.handleTextDocumentDidClose),
		"textDocument/documentSymbol": s.handleTextDocumentDocumentSymbol,
		"textDocument/hover":          s.handleTextDocumentHover,
		"textDocument/inlineValue":    s.handleTextDocumentInlineValue,

		"textDocument/semanticTokens/full":  s.handleTextDocumentSemanticTokensFull,
		"textDocument/semanticTokens/range": s.handleTextDocumentSemanticTokensRange,
	}
}

// withConn adapts handlers that notify the client back.
func withConn(conn *jsonrpc2.Conn, fn func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error)) handlerFunc {
	return func(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
		return fn(ctx, conn, req)
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.debugf(ctx, "received %s", req.Method)

	h, ok := s.routes(conn)[req.Method]
	if !ok {
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not found: " + req.Method}
	}

	switch {
	case req.Method == "initialize" || req.Method == "exit":
	case !s.initialized.Load():
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: codeServerNotInitialized, Message: "server not initialized"}
	case s.shutdown.Load() && !req.Notif:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}

	return h(ctx, req)
}

func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params for " + req.Method}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid params for " + req.Method + ": " + err.Error()}
	}
	return nil
}

package lsp

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
)

func (s *Server) capabilities() ServerCapabilities {
	return ServerCapabilities{
		ServerCapabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DocumentSymbolProvider: true,
			HoverProvider:          true,
			SemanticTokensProvider: semanticTokensOptions(),
		},
		InlineValueProvider: true,
	}
}

func (s *Server) handleInitialize(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	if params.ClientInfo != nil {
		zerolog.Ctx(ctx).Debug().
			Str("client", params.ClientInfo.Name).
			Str("client_version", params.ClientInfo.Version).
			Msg("initializing")
	}

	s.initialized.Store(true)

	return InitializeResult{
		Capabilities: s.capabilities(),
		ServerInfo: &protocol.ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
	}, nil
}

func (s *Server) handleInitialized(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	zerolog.Ctx(ctx).Info().Msg("server initialized!")
	return nil, nil
}

func (s *Server) handleShutdown(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	s.debugf(ctx, "shutting down with %d open documents", s.documents.Len())
	s.shutdown.Store(true)
	return nil, nil
}

// exitHandler closes the connection, which ends Start.
func (s *Server) exitHandler(conn *jsonrpc2.Conn) handlerFunc {
	return func(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
		s.debugf(ctx, "exiting")
		return nil, conn.Close()
	}
}

package lsp

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
)

// replaceDocument parses text and stores the result under uri. When the
// parse fails any older entry is dropped so requests never see stale trees.
func (s *Server) replaceDocument(ctx context.Context, uri protocol.DocumentURI, version int32, text string) *Document {
	parsed, err := s.parse(ctx, text)
	if err != nil {
		s.documents.Delete(uri)
		zerolog.Ctx(ctx).Error().Err(err).Str("uri", string(uri)).Msg("failed to parse document")
		return nil
	}

	doc := &Document{URI: uri, Version: version, Parsed: parsed}
	s.documents.Store(doc)
	s.debugf(ctx, "stored %s at version %d", uri, version)
	return doc
}

func (s *Server) handleTextDocumentDidOpen(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	doc := s.replaceDocument(ctx, params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	s.publishDiagnostics(ctx, conn, params.TextDocument.URI, doc)
	return nil, nil
}

func (s *Server) handleTextDocumentDidChange(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidChangeTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	// full sync: the last change holds the whole text
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text

	doc := s.replaceDocument(ctx, params.TextDocument.URI, params.TextDocument.Version, text)
	s.publishDiagnostics(ctx, conn, params.TextDocument.URI, doc)
	return nil, nil
}

func (s *Server) handleTextDocumentDidClose(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DidCloseTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	s.documents.Delete(params.TextDocument.URI)
	s.publishDiagnostics(ctx, conn, params.TextDocument.URI, nil)
	return nil, nil
}

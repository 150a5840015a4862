package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/walteh/eds-lsp/pkg/position"
	"github.com/walteh/eds-lsp/pkg/semtok"
)

func semanticTokensOptions() *SemanticTokensOptions {
	legend := protocol.SemanticTokensLegend{}
	for _, t := range semtok.TokenTypeLegend {
		legend.TokenTypes = append(legend.TokenTypes, protocol.SemanticTokenTypes(t))
	}
	for _, m := range semtok.TokenModifierLegend {
		legend.TokenModifiers = append(legend.TokenModifiers, protocol.SemanticTokenModifiers(m))
	}
	return &SemanticTokensOptions{Legend: legend, Full: true, Range: true}
}

func (s *Server) handleTextDocumentSemanticTokensFull(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.SemanticTokensParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	doc, err := s.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := semtok.GetTokensForDocument(ctx, doc.Parsed)
	return &protocol.SemanticTokens{Data: semtok.Encode(tokens)}, nil
}

func (s *Server) handleTextDocumentSemanticTokensRange(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.SemanticTokensRangeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	doc, err := s.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	rng := position.NewRangeFromLSPRange(position.NewLineIndex(doc.Parsed.Text()), params.Range)
	tokens := semtok.GetTokensForRange(ctx, doc.Parsed, rng)
	return &protocol.SemanticTokens{Data: semtok.Encode(tokens)}, nil
}

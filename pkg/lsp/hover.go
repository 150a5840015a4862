package lsp

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/walteh/eds-lsp/pkg/hover"
	"github.com/walteh/eds-lsp/pkg/position"
)

func (s *Server) handleTextDocumentHover(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.HoverParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Msgf("hover request received: %+v", params.Position)

	doc, err := s.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	info, ok := hover.BuildHoverResponse(ctx, doc.Parsed, position.FromLSPPosition(params.Position))
	if !ok {
		return nil, nil
	}

	rng := position.ToLSPRange(info.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: info.Content,
		},
		Range: &rng,
	}, nil
}

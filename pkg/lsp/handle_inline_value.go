package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/position"
)

func (s *Server) handleTextDocumentInlineValue(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params InlineValueParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	doc, err := s.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	if s.cfg.InlineValues.Mode == config.InlineValuesPlaceholder {
		return []InlineValueText{{Range: params.Range, Text: s.cfg.InlineValues.Placeholder}}, nil
	}

	want := position.NewRangeFromLSPRange(position.NewLineIndex(doc.Parsed.Text()), params.Range)

	values := []InlineValueText{}
	for item := range doc.Parsed.Items() {
		if !item.Range.Intersects(want) {
			continue
		}
		_, value, ok := item.KeyValue()
		if !ok || value == "" {
			continue
		}
		values = append(values, InlineValueText{
			Range: position.ToLSPRange(item.Range),
			Text:  value,
		})
	}

	s.debugf(ctx, "%d inline values in %s", len(values), want)
	return values, nil
}

package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	"gitlab.com/tozd/go/errors"
	"go.lsp.dev/protocol"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/eds"
	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

var ErrDocumentNotFound = errors.Base("document not found")

func (s *Server) document(uri protocol.DocumentURI) (*Document, error) {
	doc, ok := s.documents.Get(uri)
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}
	return doc, nil
}

func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, req *jsonrpc2.Request) (interface{}, error) {
	var params protocol.DocumentSymbolParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	doc, err := s.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	it := doc.Parsed.Iter()
	var items []eds.Item
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	if it.Halt() != eds.HaltComplete {
		s.debugf(ctx, "outline of %s stopped early after %d items: %s", params.TextDocument.URI, len(items), it.Halt())
	}

	if s.cfg.Symbols.Nested {
		return s.nestedSymbols(items), nil
	}

	symbols := make([]protocol.DocumentSymbol, 0, len(items))
	for _, item := range items {
		symbols = append(symbols, s.symbol(item))
	}
	return symbols, nil
}

func (s *Server) symbol(item eds.Item) protocol.DocumentSymbol {
	rng := position.ToLSPRange(item.Range)
	sym := protocol.DocumentSymbol{
		Name:           item.Kind,
		Kind:           protocol.SymbolKindOperator,
		Range:          rng,
		SelectionRange: rng,
	}
	if s.cfg.Symbols.Naming == config.NamingText {
		sym.Name = item.Text
		sym.Detail = item.Kind
		sym.Kind = protocol.SymbolKindProperty
		if item.Kind == parser.KindSectionName {
			sym.Kind = protocol.SymbolKindNamespace
		}
	}
	return sym
}

// nestedSymbols puts each section's statements under its name. Statements
// with no section stay at the top level.
func (s *Server) nestedSymbols(items []eds.Item) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, sec := range eds.GroupSections(items) {
		if sec.Header.Kind == "" {
			for _, st := range sec.Statements {
				symbols = append(symbols, s.symbol(st))
			}
			continue
		}

		parent := s.symbol(sec.Header)
		for _, st := range sec.Statements {
			parent.Children = append(parent.Children, s.symbol(st))
		}
		if n := len(sec.Statements); n > 0 {
			parent.Range.End = position.ToLSPPosition(sec.Statements[n-1].Range.EndPoint)
		}
		symbols = append(symbols, parent)
	}
	return symbols
}

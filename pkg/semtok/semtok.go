// Package semtok provides semantic token support for EDS documents.
package semtok

import (
	"context"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/walteh/eds-lsp/pkg/eds"
	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

// GetTokensForDocument returns the semantic tokens of doc in document order.
// Unlike the outline it covers the whole text, including parts after an
// empty section.
func GetTokensForDocument(ctx context.Context, doc *eds.Document) []Token {
	text := doc.Text()
	var tokens []Token

	doc.Tree().Inspect(func(n *parser.Node) bool {
		switch n.Kind() {
		case parser.KindSectionName:
			tokens = append(tokens, Token{Type: TokenNamespace, Modifier: ModifierDeclaration, Range: n.Range()})
		case parser.KindKey:
			tokens = append(tokens, Token{Type: TokenProperty, Range: n.Range()})
		case parser.KindAssign:
			tokens = append(tokens, Token{Type: TokenOperator, Range: n.Range()})
		case parser.KindValue:
			typ := TokenString
			if isNumber(text[n.StartByte():n.EndByte()]) {
				typ = TokenNumber
			}
			tokens = append(tokens, Token{Type: typ, Range: n.Range()})
		}
		return true
	})

	for _, c := range doc.Tree().Comments() {
		tokens = append(tokens, Token{Type: TokenComment, Range: c})
	}

	slices.SortFunc(tokens, func(a, b Token) int {
		return a.Range.StartByte - b.Range.StartByte
	})

	zerolog.Ctx(ctx).Trace().Int("tokens", len(tokens)).Msg("generated semantic tokens")

	return tokens
}

// GetTokensForRange returns the tokens of doc that intersect rng.
func GetTokensForRange(ctx context.Context, doc *eds.Document, rng position.Range) []Token {
	return slices.DeleteFunc(GetTokensForDocument(ctx, doc), func(t Token) bool {
		return !t.Range.Intersects(rng)
	})
}

// Encode packs tokens into the LSP relative format: five integers per token
// holding the line delta, the start delta, the length, the type and the
// modifiers. Tokens must be sorted and must not span lines.
func Encode(tokens []Token) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prev position.Point
	for _, t := range tokens {
		start := t.Range.StartPoint
		deltaLine := start.Row - prev.Row
		deltaStart := start.Column
		if deltaLine == 0 {
			deltaStart = start.Column - prev.Column
		}
		data = append(data,
			uint32(deltaLine),
			uint32(deltaStart),
			uint32(t.Range.Len()),
			uint32(t.Type),
			uint32(t.Modifier),
		)
		prev = start
	}
	return data
}

// isNumber accepts the integer forms EDS files use (decimal, 0x hex, 0 octal)
// and plain decimals.
func isNumber(s string) bool {
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseUint(s, 0, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Package eds exposes the structure of EDS (electronic data sheet) documents:
// a parsed document wrapper and the flattening traversal that turns its tree
// into a document-ordered sequence of section names and statements.
package eds

import (
	"context"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

var (
	// ErrParseUnavailable is returned when no tree can be built for a text:
	// the grammar could not be initialized or produced nothing.
	ErrParseUnavailable = errors.Base("parse unavailable")

	// ErrDecode is returned when a node's byte range cannot be read back from
	// the document text as UTF-8.
	ErrDecode = errors.Base("node text cannot be decoded")
)

// Grammar builds a tree over a text.
type Grammar interface {
	Parse(ctx context.Context, text string) (*parser.Tree, error)
}

// Document owns a text and the tree parsed from it. Both are immutable, so a
// Document may be traversed from several goroutines at once.
type Document struct {
	text string
	tree *parser.Tree
}

// Parse builds a Document with the default EDS grammar.
func Parse(ctx context.Context, text string) (*Document, error) {
	g, err := parser.Default()
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrParseUnavailable, err)
	}
	return ParseWith(ctx, g, text)
}

func ParseWith(ctx context.Context, g Grammar, text string) (*Document, error) {
	if g == nil {
		return nil, errors.Errorf("%w: no grammar", ErrParseUnavailable)
	}
	tree, err := g.Parse(ctx, text)
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrParseUnavailable, err)
	}
	if tree.RootNode() == nil {
		return nil, errors.Errorf("%w: grammar produced no tree", ErrParseUnavailable)
	}
	return &Document{text: text, tree: tree}, nil
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Tree() *parser.Tree {
	return d.tree
}

// Walk returns a fresh cursor at the root of the tree.
func (d *Document) Walk() *Cursor {
	return &Cursor{text: d.text, tc: d.tree.Walk()}
}

// Cursor is a position in a Document's tree plus the primitives the
// traversal is built from.
type Cursor struct {
	text string
	tc   *parser.TreeCursor
}

func (c *Cursor) Kind() string {
	return c.tc.Node().Kind()
}

func (c *Cursor) Range() position.Range {
	return c.tc.Node().Range()
}

// Text returns the slice of the document text spanned by the current node.
func (c *Cursor) Text() (string, error) {
	r := c.Range()
	if r.StartByte < 0 || r.StartByte > r.EndByte || r.EndByte > len(c.text) {
		return "", errors.Errorf("%w: bytes [%d,%d) outside text of length %d", ErrDecode, r.StartByte, r.EndByte, len(c.text))
	}
	s := c.text[r.StartByte:r.EndByte]
	if !utf8.ValidString(s) {
		return "", errors.Errorf("%w: bytes [%d,%d) are not valid utf-8", ErrDecode, r.StartByte, r.EndByte)
	}
	return s, nil
}

func (c *Cursor) GotoFirstChild() bool {
	return c.tc.GotoFirstChild()
}

func (c *Cursor) GotoNextSibling() bool {
	return c.tc.GotoNextSibling()
}

func (c *Cursor) GotoParent() bool {
	return c.tc.GotoParent()
}

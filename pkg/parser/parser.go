package parser

import (
	"context"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/pkg/position"
)

// Parser turns EDS text into a Tree. The grammar is total: text that fits no
// production becomes ERROR leaves instead of failing the parse.
type Parser struct {
	def     *lexer.StatefulDefinition
	symbols map[lexer.TokenType]tokenKind
}

func New() (*Parser, error) {
	def, err := lexer.New(LexerRules)
	if err != nil {
		return nil, errors.Errorf("building eds lexer: %w", err)
	}
	return &Parser{def: def, symbols: symbolTable(def)}, nil
}

var defaultParser = sync.OnceValues(New)

// Default returns a Parser shared by the whole process. It is safe for
// concurrent use.
func Default() (*Parser, error) {
	return defaultParser()
}

type token struct {
	kind  tokenKind
	value string
	start int
}

func (t token) end() int {
	return t.start + len(t.value)
}

// tokenize returns the significant tokens and, separately, the comments.
func (p *Parser) tokenize(text string) ([]token, []token, error) {
	lex, err := p.def.Lex("", strings.NewReader(text))
	if err != nil {
		return nil, nil, errors.Errorf("starting lexer: %w", err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, nil, errors.Errorf("lexing: %w", err)
	}
	toks := make([]token, 0, len(raw))
	var comments []token
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind, ok := p.symbols[t.Type]
		if !ok {
			continue
		}
		tok := token{kind: kind, value: t.Value, start: t.Pos.Offset}
		if kind == tokComment {
			comments = append(comments, tok)
			continue
		}
		toks = append(toks, tok)
	}
	return toks, comments, nil
}

// Parse builds the tree for text.
func (p *Parser) Parse(ctx context.Context, text string) (*Tree, error) {
	toks, comments, err := p.tokenize(text)
	if err != nil {
		return nil, err
	}

	b := &builder{toks: toks, lines: position.NewLineIndex(text)}
	root := b.sourceFile(len(text))

	tree := NewTree(root)
	for _, c := range comments {
		tree.comments = append(tree.comments, b.lines.Range(c.start, c.end()))
	}

	zerolog.Ctx(ctx).Trace().
		Int("tokens", len(toks)).
		Int("sections", root.ChildCount()).
		Msg("parsed eds document")

	return tree, nil
}

// builder is a recursive descent over the significant tokens.
type builder struct {
	toks  []token
	pos   int
	lines *position.LineIndex
}

func (b *builder) peek() (token, bool) {
	if b.pos >= len(b.toks) {
		return token{}, false
	}
	return b.toks[b.pos], true
}

func (b *builder) at(kind tokenKind) bool {
	t, ok := b.peek()
	return ok && t.kind == kind
}

func (b *builder) leaf(kind string, named bool) *Node {
	t := b.toks[b.pos]
	b.pos++
	return NewNode(kind, named, b.lines.Range(t.start, t.end()))
}

// branch wraps children in a node spanning from the first to the last child.
func (b *builder) branch(kind string, children ...*Node) *Node {
	first, last := children[0], children[len(children)-1]
	return NewNode(kind, true, b.lines.Range(first.StartByte(), last.EndByte()), children...)
}

func (b *builder) sourceFile(size int) *Node {
	root := NewNode(KindSourceFile, true, b.lines.Range(0, size))
	for {
		t, ok := b.peek()
		if !ok {
			return root
		}
		switch t.kind {
		case tokSectionOpen:
			root.appendChild(b.section())
		case tokKey:
			root.appendChild(b.statement())
		default:
			root.appendChild(b.leaf(KindError, true))
		}
	}
}

// section = "[" section_name? "]"? statement*
func (b *builder) section() *Node {
	children := []*Node{b.leaf(KindSectionOpen, false)}
	if b.at(tokSectionName) {
		children = append(children, b.leaf(KindSectionName, true))
	}
	if b.at(tokSectionClose) {
		children = append(children, b.leaf(KindSectionClose, false))
	}
	for b.at(tokKey) {
		children = append(children, b.statement())
	}
	return b.branch(KindSection, children...)
}

// statement = key ( "=" value? )?
func (b *builder) statement() *Node {
	children := []*Node{b.leaf(KindKey, true)}
	if b.at(tokAssign) {
		children = append(children, b.leaf(KindAssign, false))
		if b.at(tokValue) {
			children = append(children, b.leaf(KindValue, true))
		}
	}
	return b.branch(KindStatement, children...)
}

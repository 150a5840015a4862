package parser

import (
	"strings"

	"github.com/walteh/eds-lsp/pkg/position"
)

// Node kinds produced by the EDS grammar.
const (
	KindSourceFile  = "source_file"
	KindSection     = "section"
	KindSectionName = "section_name"
	KindStatement   = "statement"
	KindKey         = "key"
	KindValue       = "value"
	KindError       = "ERROR"

	KindSectionOpen  = "["
	KindSectionClose = "]"
	KindAssign       = "="
)

// Node is a typed node of a parse tree. Named nodes carry structure, the
// anonymous ones are punctuation.
type Node struct {
	kind     string
	named    bool
	rng      position.Range
	parent   *Node
	index    int
	children []*Node
}

// NewNode builds a node and adopts children in order.
func NewNode(kind string, named bool, rng position.Range, children ...*Node) *Node {
	n := &Node{kind: kind, named: named, rng: rng}
	for _, c := range children {
		n.appendChild(c)
	}
	return n
}

func (n *Node) appendChild(c *Node) {
	c.parent = n
	c.index = len(n.children)
	n.children = append(n.children, c)
}

func (n *Node) Kind() string          { return n.kind }
func (n *Node) IsNamed() bool         { return n.named }
func (n *Node) Range() position.Range { return n.rng }
func (n *Node) StartByte() int        { return n.rng.StartByte }
func (n *Node) EndByte() int          { return n.rng.EndByte }
func (n *Node) Parent() *Node         { return n.parent }
func (n *Node) ChildCount() int       { return len(n.children) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// String renders the named structure of the subtree as an s-expression,
// e.g. (source_file (section (section_name) (statement (key) (value)))).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeSExpr(&sb)
	return sb.String()
}

func (n *Node) writeSExpr(sb *strings.Builder) {
	sb.WriteString("(")
	sb.WriteString(n.kind)
	for _, c := range n.children {
		if !c.named {
			continue
		}
		sb.WriteString(" ")
		c.writeSExpr(sb)
	}
	sb.WriteString(")")
}

// Tree is an immutable parse tree.
type Tree struct {
	root     *Node
	comments []position.Range
}

func NewTree(root *Node) *Tree {
	return &Tree{root: root}
}

// Comments returns the ranges of the comments in the source, which the tree
// itself does not hold.
func (t *Tree) Comments() []position.Range {
	if t == nil {
		return nil
	}
	return t.comments
}

func (t *Tree) RootNode() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Walk returns a cursor positioned at the root node.
func (t *Tree) Walk() *TreeCursor {
	return NewTreeCursor(t.RootNode())
}

// Inspect visits nodes in document order. When fn returns false the children
// of that node are skipped.
func (t *Tree) Inspect(fn func(*Node) bool) {
	if t.RootNode() == nil {
		return
	}
	var visit func(n *Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
}

package eds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/eds-lsp/pkg/parser"
)

type fakeNode struct {
	kind   string
	parent *fakeNode
	index  int
	kids   []*fakeNode
}

func n(kind string, kids ...*fakeNode) *fakeNode {
	node := &fakeNode{kind: kind}
	for i, k := range kids {
		k.parent = node
		k.index = i
		node.kids = append(node.kids, k)
	}
	return node
}

type fakeWalker struct {
	cur *fakeNode
}

func (w *fakeWalker) Kind() string { return w.cur.kind }

func (w *fakeWalker) GotoFirstChild() bool {
	if len(w.cur.kids) == 0 {
		return false
	}
	w.cur = w.cur.kids[0]
	return true
}

func (w *fakeWalker) GotoNextSibling() bool {
	p := w.cur.parent
	if p == nil || w.cur.index+1 >= len(p.kids) {
		return false
	}
	w.cur = p.kids[w.cur.index+1]
	return true
}

func (w *fakeWalker) GotoParent() bool {
	if w.cur.parent == nil {
		return false
	}
	w.cur = w.cur.parent
	return true
}

func section(name string, stmts ...string) *fakeNode {
	kids := []*fakeNode{n("["), n(parser.KindSectionName), n("]")}
	for range stmts {
		kids = append(kids, n(parser.KindStatement))
	}
	return n(parser.KindSection, kids...)
}

func TestStep(t *testing.T) {
	tests := []struct {
		name     string
		root     *fakeNode
		at       func(root *fakeNode) *fakeNode
		from     state
		want     state
		wantNode func(root *fakeNode) *fakeNode
	}{
		{
			name:     "root enters the first section name",
			root:     n(parser.KindSourceFile, section("A")),
			at:       func(r *fakeNode) *fakeNode { return r },
			from:     stateRoot,
			want:     stateSectionName,
			wantNode: func(r *fakeNode) *fakeNode { return r.kids[0].kids[1] },
		},
		{
			name: "root without sections",
			root: n(parser.KindSourceFile),
			at:   func(r *fakeNode) *fakeNode { return r },
			from: stateRoot,
			want: stateDone,
		},
		{
			name: "root of another kind",
			root: n("document", section("A")),
			at:   func(r *fakeNode) *fakeNode { return r },
			from: stateRoot,
			want: stateDone,
		},
		{
			name: "first section without a name",
			root: n(parser.KindSourceFile, n(parser.KindSection, n("["), n("]"))),
			at:   func(r *fakeNode) *fakeNode { return r },
			from: stateRoot,
			want: stateDone,
		},
		{
			name: "first child is not a section",
			root: n(parser.KindSourceFile, n(parser.KindStatement), section("A")),
			at:   func(r *fakeNode) *fakeNode { return r },
			from: stateRoot,
			want: stateDone,
		},
		{
			name:     "section name skips the closing bracket",
			root:     n(parser.KindSourceFile, section("A", "x")),
			at:       func(r *fakeNode) *fakeNode { return r.kids[0].kids[1] },
			from:     stateSectionName,
			want:     stateStatement,
			wantNode: func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
		},
		{
			name: "section name of an empty section",
			root: n(parser.KindSourceFile, section("A"), section("B", "z")),
			at:   func(r *fakeNode) *fakeNode { return r.kids[0].kids[1] },
			from: stateSectionName,
			want: stateDone,
		},
		{
			name: "section name without a closing bracket",
			root: n(parser.KindSourceFile, n(parser.KindSection, n("["), n(parser.KindSectionName), n(parser.KindStatement))),
			at:   func(r *fakeNode) *fakeNode { return r.kids[0].kids[1] },
			from: stateSectionName,
			want: stateDone,
		},
		{
			name:     "statement followed by a statement",
			root:     n(parser.KindSourceFile, section("A", "x", "y")),
			at:       func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
			from:     stateStatement,
			want:     stateStatement,
			wantNode: func(r *fakeNode) *fakeNode { return r.kids[0].kids[4] },
		},
		{
			name:     "last statement crosses into the next section",
			root:     n(parser.KindSourceFile, section("A", "x"), section("B")),
			at:       func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
			from:     stateStatement,
			want:     stateSectionName,
			wantNode: func(r *fakeNode) *fakeNode { return r.kids[1].kids[1] },
		},
		{
			name: "last statement of the last section",
			root: n(parser.KindSourceFile, section("A", "x")),
			at:   func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
			from: stateStatement,
			want: stateDone,
		},
		{
			name: "last statement followed by an error node",
			root: n(parser.KindSourceFile, section("A", "x"), n(parser.KindError), section("B")),
			at:   func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
			from: stateStatement,
			want: stateDone,
		},
		{
			name: "statement followed by scaffolding",
			root: n(parser.KindSourceFile, n(parser.KindSection, n("["), n(parser.KindSectionName), n("]"), n(parser.KindStatement), n("]"), n(parser.KindStatement))),
			at:   func(r *fakeNode) *fakeNode { return r.kids[0].kids[3] },
			from: stateStatement,
			want: stateDone,
		},
		{
			name: "done stays done",
			root: n(parser.KindSourceFile, section("A")),
			at:   func(r *fakeNode) *fakeNode { return r },
			from: stateDone,
			want: stateDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWalker{cur: tt.at(tt.root)}
			got := step(tt.from, w)
			assert.Equal(t, tt.want, got)
			if tt.wantNode != nil {
				assert.Same(t, tt.wantNode(tt.root), w.cur)
			}
		})
	}
}

func TestStepSequence(t *testing.T) {
	root := n(parser.KindSourceFile, section("A", "x", "y"), section("B", "z"))
	w := &fakeWalker{cur: root}

	var states []state
	for s := step(stateRoot, w); s != stateDone; s = step(s, w) {
		states = append(states, s)
	}

	assert.Equal(t, []state{
		stateSectionName, stateStatement, stateStatement,
		stateSectionName, stateStatement,
	}, states)
}

func TestHaltString(t *testing.T) {
	assert.Equal(t, "none", HaltNone.String())
	assert.Equal(t, "complete", HaltComplete.String())
	assert.Equal(t, "incomplete", HaltIncomplete.String())
	assert.Equal(t, "decode", HaltDecode.String())
	assert.Equal(t, "unknown", Halt(42).String())
}

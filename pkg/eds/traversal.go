package eds

import (
	"iter"

	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

// Item is a section name or statement yielded by the traversal. Text is a
// slice of the owning Document's text.
type Item struct {
	Kind  string
	Text  string
	Range position.Range
}

// Halt tells why a traversal stopped producing items.
type Halt int

const (
	// HaltNone means the traversal has not stopped yet.
	HaltNone Halt = iota
	// HaltComplete means no section name or statement of the document was
	// left behind.
	HaltComplete
	// HaltIncomplete means at least one section name or statement was not
	// yielded, either skipped over or still ahead when the shape stopped
	// matching.
	HaltIncomplete
	// HaltDecode means a node's text could not be read.
	HaltDecode
)

func (h Halt) String() string {
	switch h {
	case HaltNone:
		return "none"
	case HaltComplete:
		return "complete"
	case HaltIncomplete:
		return "incomplete"
	case HaltDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// state is the kind of node the cursor rests on between two items.
type state int

const (
	stateRoot state = iota
	stateSectionName
	stateStatement
	stateDone
)

// walker is the subset of Cursor the state machine needs.
type walker interface {
	Kind() string
	GotoFirstChild() bool
	GotoNextSibling() bool
	GotoParent() bool
}

// step moves w from the node of state s to the next item and returns the
// state of that item, or stateDone when the tree does not have the expected
// shape at that point.
func step(s state, w walker) state {
	switch s {
	case stateRoot:
		if w.Kind() == parser.KindSourceFile && w.GotoFirstChild() {
			return enterSection(w)
		}
	case stateSectionName:
		// skip the closing bracket
		if w.GotoNextSibling() && w.GotoNextSibling() && w.Kind() == parser.KindStatement {
			return stateStatement
		}
	case stateStatement:
		if w.GotoNextSibling() && w.Kind() == parser.KindStatement {
			return stateStatement
		}
		if w.GotoParent() && w.GotoNextSibling() {
			return enterSection(w)
		}
	}
	return stateDone
}

// enterSection expects w on a section and moves it to the section's name,
// which follows the opening bracket.
func enterSection(w walker) state {
	if w.Kind() == parser.KindSection && w.GotoFirstChild() && w.GotoNextSibling() && w.Kind() == parser.KindSectionName {
		return stateSectionName
	}
	return stateDone
}

// Iterator is a forward-only traversal over one Document. It holds its own
// cursor; the Document is never modified.
type Iterator struct {
	doc     *Document
	cur     *Cursor
	state   state
	halt    Halt
	err     error
	count   int
}

// Iter starts a new traversal at the root of the document.
func (d *Document) Iter() *Iterator {
	return &Iterator{doc: d, cur: d.Walk(), state: stateRoot}
}

// Next returns the next item. Once it returns false it keeps doing so; Halt
// then reports why.
func (it *Iterator) Next() (Item, bool) {
	if it.state == stateDone {
		return Item{}, false
	}

	next := step(it.state, it.cur)
	if next == stateDone {
		it.stop(it.settle(), nil)
		return Item{}, false
	}

	text, err := it.cur.Text()
	if err != nil {
		it.stop(HaltDecode, err)
		return Item{}, false
	}

	it.state = next
	item := Item{Kind: it.cur.Kind(), Text: text, Range: it.cur.Range()}
	it.count++
	return item, true
}

func (it *Iterator) stop(h Halt, err error) {
	it.state = stateDone
	it.halt = h
	it.err = err
}

// settle decides whether anything yieldable was left behind when the shape
// checks failed. The traversal only ever yields section names and
// statements, so any surplus of those over the yielded count was skipped,
// whether it lies ahead of the cursor or behind it.
func (it *Iterator) settle() Halt {
	total := 0
	it.doc.tree.Inspect(func(n *parser.Node) bool {
		if n.Kind() != parser.KindSectionName && n.Kind() != parser.KindStatement {
			return true
		}
		total++
		return false
	})
	if total > it.count {
		return HaltIncomplete
	}
	return HaltComplete
}

// Halt reports why the traversal stopped, or HaltNone while it still runs.
func (it *Iterator) Halt() Halt {
	return it.halt
}

// Err returns the decoding error that stopped the traversal, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Items returns the traversal as a range-over-func sequence. Every call
// starts a fresh traversal.
func (d *Document) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		it := d.Iter()
		for {
			item, ok := it.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Flatten runs a traversal to completion.
func (d *Document) Flatten() []Item {
	var items []Item
	for item := range d.Items() {
		items = append(items, item)
	}
	return items
}

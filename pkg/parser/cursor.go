package parser

// TreeCursor walks a tree one structural move at a time. It never leaves the
// subtree of the node it was created on.
type TreeCursor struct {
	root *Node
	node *Node
}

func NewTreeCursor(root *Node) *TreeCursor {
	return &TreeCursor{root: root, node: root}
}

func (c *TreeCursor) Node() *Node {
	return c.node
}

// GotoFirstChild moves to the first child of the current node and reports
// whether one existed.
func (c *TreeCursor) GotoFirstChild() bool {
	if c.node == nil || len(c.node.children) == 0 {
		return false
	}
	c.node = c.node.children[0]
	return true
}

// GotoNextSibling moves to the next sibling of the current node and reports
// whether one existed.
func (c *TreeCursor) GotoNextSibling() bool {
	if c.node == nil || c.node == c.root || c.node.parent == nil {
		return false
	}
	siblings := c.node.parent.children
	if c.node.index+1 >= len(siblings) {
		return false
	}
	c.node = siblings[c.node.index+1]
	return true
}

// GotoParent moves to the parent of the current node and reports whether one
// existed.
func (c *TreeCursor) GotoParent() bool {
	if c.node == nil || c.node == c.root || c.node.parent == nil {
		return false
	}
	c.node = c.node.parent
	return true
}

// Reset moves the cursor back to the node it was created on.
func (c *TreeCursor) Reset() {
	c.node = c.root
}

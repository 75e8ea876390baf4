package document

// Kind classifies a node in the document tree.
type Kind string

// Node kinds, in hierarchy order.
const (
	KindTitle      Kind = "title"
	KindSection    Kind = "section"
	KindSubsection Kind = "subsection"
	KindItem       Kind = "item"
)

// Node is a single element of the document tree.
//
// SourceOffset is the character index of the node's originating line in the
// input text. Within each kind, offsets are strictly increasing in document
// order; the association step relies on this.
type Node struct {
	ID           string  `json:"id"`
	Text         string  `json:"text"`
	Kind         Kind    `json:"kind"`
	SourceOffset int     `json:"source_offset"`
	Children     []*Node `json:"children,omitempty"`
}

// AddChild appends a child node.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Tree is the result of parsing a document.
//
// An empty tree (Root == nil) is a valid terminal state, not an error:
// Message carries a human-readable explanation ("document is empty",
// "no headings found", ...). Callers must not treat it as exceptional.
type Tree struct {
	Root    *Node  `json:"root,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.Root == nil
}

// NodeCount returns the total number of nodes in the tree.
func (t *Tree) NodeCount() int {
	if t.IsEmpty() {
		return 0
	}
	count := 0
	t.Walk(func(n *Node) { count++ })
	return count
}

// Walk visits every node in the tree in depth-first document order.
func (t *Tree) Walk(fn func(n *Node)) {
	if t.IsEmpty() {
		return
	}
	walk(t.Root, fn)
}

func walk(n *Node, fn func(n *Node)) {
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// WalkEdges visits every parent→child pair in the tree exactly once,
// in depth-first document order.
func (t *Tree) WalkEdges(fn func(parent, child *Node)) {
	if t.IsEmpty() {
		return
	}
	walkEdges(t.Root, fn)
}

func walkEdges(n *Node, fn func(parent, child *Node)) {
	for _, c := range n.Children {
		fn(n, c)
		walkEdges(c, fn)
	}
}

// Sections returns the Title's Section children in document order.
func (t *Tree) Sections() []*Node {
	if t.IsEmpty() {
		return nil
	}
	var out []*Node
	for _, c := range t.Root.Children {
		if c.Kind == KindSection {
			out = append(out, c)
		}
	}
	return out
}

package cst

import "turingc/internal/token"

// Builder assembles a Node tree bottom-up: Start opens a node, PushToken
// appends a leaf to the innermost open node, and Finish closes it and
// attaches it as a child of its parent (or returns it, for the root).
type Builder struct {
	stack []*Node
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Start opens a new node of the given kind.
func (b *Builder) Start(kind Kind) {
	b.stack = append(b.stack, &Node{Kind: kind})
}

// PushToken appends tok as a leaf child of the innermost open node.
func (b *Builder) PushToken(tok token.Token) {
	if len(b.stack) == 0 {
		panic("cst: PushToken with no open node")
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, &Leaf{Tok: tok})
}

// PushNode appends an already-built node as a child of the innermost open
// node (used when a sub-parser returns a finished Node directly).
func (b *Builder) PushNode(n *Node) {
	if len(b.stack) == 0 {
		panic("cst: PushNode with no open node")
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, n)
}

// Finish closes the innermost open node and either attaches it to its
// parent or, if it was the root, returns it.
func (b *Builder) Finish() *Node {
	n := len(b.stack)
	if n == 0 {
		panic("cst: Finish with no open node")
	}
	top := b.stack[n-1]
	b.stack = b.stack[:n-1]
	if len(b.stack) > 0 {
		b.PushNode(top)
	}
	return top
}

// Depth reports how many nodes are currently open. The parser's
// nesting-depth limits are enforced by its own counters, not by Depth.
func (b *Builder) Depth() int { return len(b.stack) }

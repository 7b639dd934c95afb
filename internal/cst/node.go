package cst

import (
	"turingc/internal/source"
	"turingc/internal/token"
)

// Element is either a *Node or a *Leaf; the tree is untyped so the
// parser and any later CST consumer walk it uniformly.
type Element interface {
	Span() source.Span
	isElement()
}

// Node is an interior tree element: a syntactic construct with ordered
// children (which may themselves be Nodes or Leaves).
type Node struct {
	Kind     Kind
	Children []Element
}

func (n *Node) isElement() {}

// Span covers every child; a Node with no children has a zero span.
func (n *Node) Span() source.Span {
	var sp source.Span
	first := true
	for _, c := range n.Children {
		if first {
			sp = c.Span()
			first = false
			continue
		}
		sp = sp.Cover(c.Span())
	}
	return sp
}

// Tokens returns the node's direct-child tokens (not tokens nested under
// child Nodes), in order.
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	for _, c := range n.Children {
		if l, ok := c.(*Leaf); ok {
			out = append(out, l.Tok)
		}
	}
	return out
}

// ChildNodes returns the node's direct-child Nodes, in order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if nd, ok := c.(*Node); ok {
			out = append(out, nd)
		}
	}
	return out
}

// Leaf wraps one token (significant or, at the edges of a node, an
// Invalid token produced by error recovery).
type Leaf struct {
	Tok token.Token
}

func (l *Leaf) isElement() {}

func (l *Leaf) Span() source.Span { return l.Tok.Span }

// Text reconstructs source text for the subtree rooted at e, given the
// file content it was parsed from. Because trivia is attached to leaves,
// this reproduces the original bytes exactly (spec section 3's
// lossless-round-trip requirement) -- except for tokens synthesized by
// stitching (NotIn/NotEqu), whose interior trivia is not retained.
func Text(e Element, content []byte) string {
	switch v := e.(type) {
	case *Leaf:
		var out []byte
		for _, tr := range v.Tok.LeadingTrivia {
			out = append(out, content[tr.Span.Start:tr.Span.End]...)
		}
		sp := v.Tok.Span
		out = append(out, content[sp.Start:sp.End]...)
		return string(out)
	case *Node:
		var out []byte
		for _, c := range v.Children {
			out = append(out, Text(c, content)...)
		}
		return string(out)
	default:
		return ""
	}
}

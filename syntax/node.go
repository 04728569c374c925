// Copyright 2024-2026 The Syntree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package syntax defines the engine's dual tree representation.
//
// The tree-of-record is the concrete tree: [Node] values with [*token.Token]
// leaves, storing only relative lengths and never absolute offsets. Identical
// content at different document positions is structurally identical, so a
// subtree can be shared by reference between the trees before and after an
// edit, at a shifted position, without copying.
//
// Absolute positions live in the positioned view ([PositionedNode],
// [PositionedToken]): an ephemeral wrapper pairing a concrete element with
// its offset and its positioned parent. Positioned views are derived on
// demand from [Root] and are never stored back into the concrete tree.
package syntax

import (
	"fmt"
	"iter"
	"slices"

	"github.com/syntree/syntree/token"
)

// Element is one element of a concrete tree: either a *[Node] or a
// *[token.Token]. No other implementations exist; [NewNode] rejects them.
type Element interface {
	// Kind returns the element's kind tag.
	Kind() token.Kind
	// TextLen returns the length of the text this element covers, in bytes.
	TextLen() int
}

// Node is an interior node of the concrete tree.
//
// A Node is immutable once built and stores no absolute offset; its textLen
// is always the sum of its children's lengths.
type Node struct {
	kind      token.Kind
	children  []Element
	textLen   int
	recovered bool
}

// NewNode builds a node bottom-up from its children, in source order.
//
// Panics if kind is [token.None] or if any child is neither a *Node nor a
// *token.Token.
func NewNode(kind token.Kind, children ...Element) *Node {
	return newNode(kind, false, children)
}

// NewRecoveredNode is [NewNode] for a node produced by error recovery: a
// placeholder for malformed input, or a construct that was closed by
// recovery rather than by its own terminator. Recovered nodes (and every
// node above them) are never offered for reuse by an incremental reparse,
// because their shape can depend on input beyond their own span.
func NewRecoveredNode(kind token.Kind, children ...Element) *Node {
	return newNode(kind, true, children)
}

func newNode(kind token.Kind, recovered bool, children []Element) *Node {
	if kind == token.None {
		panic("syntree/syntax: cannot create a node with the reserved None kind")
	}

	textLen := 0
	for _, child := range children {
		switch child := child.(type) {
		case *Node:
			recovered = recovered || child.recovered
		case *token.Token:
		default:
			panic(fmt.Sprintf("syntree/syntax: unknown element type %T", child))
		}
		textLen += child.TextLen()
	}

	return &Node{
		kind:      kind,
		children:  slices.Clone(children),
		textLen:   textLen,
		recovered: recovered,
	}
}

// Kind returns this node's kind.
func (n *Node) Kind() token.Kind {
	return n.kind
}

// TextLen returns the length of the text this node covers, in bytes.
func (n *Node) TextLen() int {
	return n.textLen
}

// Recovered reports whether this node, or any node below it, was produced
// by error recovery.
func (n *Node) Recovered() bool {
	return n.recovered
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the i-th direct child.
func (n *Node) Child(i int) Element {
	return n.children[i]
}

// Elements returns an iterator over the direct children, in source order.
func (n *Node) Elements() iter.Seq[Element] {
	return slices.Values(n.children)
}

// Equal reports whether two elements have identical shape and identical
// token text at every position. This is content equality: two structurally
// equal trees need not share any references.
func Equal(a, b Element) bool {
	switch a := a.(type) {
	case *token.Token:
		b, ok := b.(*token.Token)
		return ok && a.Kind() == b.Kind() && a.Text() == b.Text()
	case *Node:
		b, ok := b.(*Node)
		if !ok || a.kind != b.kind || len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

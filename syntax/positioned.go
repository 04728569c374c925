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

package syntax

import (
	"iter"

	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/token"
)

// Positioned is an element of the positioned view: a concrete element seen
// at an absolute offset. It is implemented by [*PositionedNode] and
// [*PositionedToken] only.
//
// Positioned values are constructed transiently whenever a caller descends
// from [Root]; they are never the tree-of-record and should not be retained
// past the traversal that produced them. The parent back-reference is a
// lookup relation for upward queries, not an ownership edge.
type Positioned interface {
	report.Spanner

	// Start returns the absolute offset of the first byte this element
	// covers.
	Start() int
	// End returns the offset one past the last covered byte.
	End() int
	// Parent returns the enclosing positioned node, or nil at the root.
	Parent() *PositionedNode
	// Element returns the underlying concrete element.
	Element() Element
	// FindAt returns the deepest descendant whose span contains offset,
	// defaulting to the receiver if no child covers it.
	FindAt(offset int) Positioned
}

// PositionedNode is a concrete node seen at an absolute offset.
type PositionedNode struct {
	node   *Node
	offset int
	parent *PositionedNode
}

// PositionedToken is a concrete token seen at an absolute offset.
type PositionedToken struct {
	tok    *token.Token
	offset int
	parent *PositionedNode
}

// Root wraps a concrete node as the root of a positioned view, at offset 0.
func Root(n *Node) *PositionedNode {
	return &PositionedNode{node: n}
}

// Node returns the underlying concrete node.
func (p *PositionedNode) Node() *Node {
	return p.node
}

// Kind returns the node's kind.
func (p *PositionedNode) Kind() token.Kind {
	return p.node.Kind()
}

// Start returns the absolute offset of the first byte this node covers.
func (p *PositionedNode) Start() int {
	return p.offset
}

// End returns the offset one past the last byte this node covers.
func (p *PositionedNode) End() int {
	return p.offset + p.node.TextLen()
}

// Span implements [report.Spanner].
func (p *PositionedNode) Span() report.Span {
	return report.Span{Start: p.Start(), End: p.End()}
}

// Parent returns the enclosing positioned node, or nil at the root.
func (p *PositionedNode) Parent() *PositionedNode {
	return p.parent
}

// Element implements [Positioned].
func (p *PositionedNode) Element() Element {
	return p.node
}

// AllChildren returns an iterator over the direct children, nodes and
// tokens interleaved in source order.
func (p *PositionedNode) AllChildren() iter.Seq[Positioned] {
	return func(yield func(Positioned) bool) {
		offset := p.offset
		for el := range p.node.Elements() {
			var child Positioned
			switch el := el.(type) {
			case *Node:
				child = &PositionedNode{node: el, offset: offset, parent: p}
			case *token.Token:
				child = &PositionedToken{tok: el, offset: offset, parent: p}
			}
			if !yield(child) {
				return
			}
			offset += el.TextLen()
		}
	}
}

// Children returns an iterator over the direct node children, in source
// order.
func (p *PositionedNode) Children() iter.Seq[*PositionedNode] {
	return func(yield func(*PositionedNode) bool) {
		for child := range p.AllChildren() {
			if node, ok := child.(*PositionedNode); ok && !yield(node) {
				return
			}
		}
	}
}

// Tokens returns an iterator over the direct token children, in source
// order.
func (p *PositionedNode) Tokens() iter.Seq[*PositionedToken] {
	return func(yield func(*PositionedToken) bool) {
		for child := range p.AllChildren() {
			if tok, ok := child.(*PositionedToken); ok && !yield(tok) {
				return
			}
		}
	}
}

// FindToken returns the first direct token child of the given kind, or nil.
func (p *PositionedNode) FindToken(kind token.Kind) *PositionedToken {
	for tok := range p.Tokens() {
		if tok.Kind() == kind {
			return tok
		}
	}
	return nil
}

// TokensOfKind returns an iterator over the direct token children of the
// given kind.
func (p *PositionedNode) TokensOfKind(kind token.Kind) iter.Seq[*PositionedToken] {
	return func(yield func(*PositionedToken) bool) {
		for tok := range p.Tokens() {
			if tok.Kind() == kind && !yield(tok) {
				return
			}
		}
	}
}

// TightSpan returns this node's span with leading and trailing children of
// the given trivia kind excluded. Only token children are ever trivia;
// interior nodes are not, regardless of their content. Passing [token.None]
// (no trivia kind) yields the full span, as does a node with no trivia at
// its edges; a node with nothing but trivia yields a zero-length span at its
// start.
func (p *PositionedNode) TightSpan(trivia token.Kind) report.Span {
	if trivia == token.None {
		return p.Span()
	}

	found := false
	tight := report.Span{Start: p.Start(), End: p.Start()}
	for child := range p.AllChildren() {
		if tok, ok := child.(*PositionedToken); ok && tok.Kind() == trivia {
			continue
		}
		if !found {
			tight.Start = child.Start()
			found = true
		}
		tight.End = child.End()
	}
	return tight
}

// FindAt returns the deepest descendant whose span contains offset,
// defaulting to p if no child covers it. Children are contiguous and
// non-overlapping by construction, so at most one child can match.
func (p *PositionedNode) FindAt(offset int) Positioned {
	for child := range p.AllChildren() {
		if child.Start() <= offset && offset < child.End() {
			return child.FindAt(offset)
		}
	}
	return p
}

// Token returns the underlying concrete token.
func (p *PositionedToken) Token() *token.Token {
	return p.tok
}

// Kind returns the token's kind.
func (p *PositionedToken) Kind() token.Kind {
	return p.tok.Kind()
}

// Text returns the token's text.
func (p *PositionedToken) Text() string {
	return p.tok.Text()
}

// Start returns the absolute offset of the first byte of this token.
func (p *PositionedToken) Start() int {
	return p.offset
}

// End returns the offset one past the last byte of this token.
func (p *PositionedToken) End() int {
	return p.offset + p.tok.TextLen()
}

// Span implements [report.Spanner].
func (p *PositionedToken) Span() report.Span {
	return report.Span{Start: p.Start(), End: p.End()}
}

// Parent returns the enclosing positioned node, or nil if the token is the
// root of its view.
func (p *PositionedToken) Parent() *PositionedNode {
	return p.parent
}

// Element implements [Positioned].
func (p *PositionedToken) Element() Element {
	return p.tok
}

// FindAt implements [Positioned]. A token has no children, so it returns
// the receiver.
func (p *PositionedToken) FindAt(int) Positioned {
	return p
}

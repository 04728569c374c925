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

package parser

import (
	"fmt"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/token"
)

// ReuseCursor walks the previous concrete tree in document order, offering
// subtrees that can be substituted verbatim into the new tree because they
// do not overlap the damage range.
//
// The cursor borrows the previous tree for the duration of one reparse and
// must be queried at monotonically non-decreasing offsets, which is how a
// left-to-right recursive descent naturally behaves.
//
// A node is offered iff its old span does not overlap the edit's old range
// [e.Start, e.OldEnd()) and it contains no error recovery; its offset in the
// new document is its old offset, shifted by e.Delta() when the node sits at
// or after OldEnd. This single per-node test makes a separate
// damage-expansion pass unnecessary: a rejected node is rebuilt by the
// grammar, which rebuilds its descendants with it.
//
// Recovered subtrees are excluded because their shape is not a function of
// their own span: a construct closed at end of input parses differently
// once text is appended after it, even though its old bytes are untouched.
type ReuseCursor struct {
	damage      DamageRange
	editStart   int
	oldEnd      int
	delta       int
	stack       []reuseFrame
	reused      int
	reusedSpans []report.Span
}

type reuseFrame struct {
	el       syntax.Element
	oldStart int
}

// NewReuseCursor creates a cursor over the tree produced by the previous
// parse, invalidated by e.
func NewReuseCursor(prev *syntax.Node, e edit.Edit) *ReuseCursor {
	c := &ReuseCursor{
		damage:    DamageOf(e),
		editStart: e.Start,
		oldEnd:    e.OldEnd(),
		delta:     e.Delta(),
	}
	if prev != nil {
		c.stack = append(c.stack, reuseFrame{el: prev, oldStart: 0})
	}
	return c
}

// Damage returns the byte interval invalidated by the edit this cursor was
// created for.
func (c *ReuseCursor) Damage() DamageRange {
	return c.damage
}

// TryReuse returns a node from the previous tree that can stand verbatim at
// offset in the new document with the given kind, or nil if reparsing must
// occur there. On success the cursor skips the node's entire subtree; the
// grammar must likewise skip the tokens it covers.
func (c *ReuseCursor) TryReuse(offset int, kind token.Kind) *syntax.Node {
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		oldEnd := top.oldStart + top.el.TextLen()

		// Position the subtree in the new document. A node overlapping the
		// old range has no coherent new position and can only be descended
		// into.
		var newStart int
		switch {
		case oldEnd <= c.editStart:
			newStart = top.oldStart
		case top.oldStart >= c.oldEnd:
			newStart = top.oldStart + c.delta
		default:
			c.descend(top)
			continue
		}
		newEnd := newStart + top.el.TextLen()

		if newEnd <= offset {
			// Entirely before the query point; its descendants are too.
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		if newStart > offset {
			return nil
		}

		if newStart == offset {
			if n, ok := top.el.(*syntax.Node); ok && n.Kind() == kind && n.TextLen() > 0 && !n.Recovered() {
				if c.damage.Overlaps(newStart, newEnd) {
					panic(fmt.Sprintf(
						"syntree/parser: offered node [%d,%d) overlaps damage %v; this is a bug in syntree",
						newStart, newEnd, c.damage))
				}
				c.stack = c.stack[:len(c.stack)-1]
				c.reused++
				c.reusedSpans = append(c.reusedSpans, report.Span{Start: newStart, End: newEnd})
				return n
			}
		}

		// The subtree covers the query point but is not itself a match;
		// one of its children may start exactly there.
		c.descend(top)
	}
	return nil
}

// descend replaces the top of the stack with its children, keeping
// document order.
func (c *ReuseCursor) descend(top reuseFrame) {
	c.stack = c.stack[:len(c.stack)-1]
	n, ok := top.el.(*syntax.Node)
	if !ok {
		return
	}

	// Push in reverse so the first child is popped first. Old offsets are
	// reconstructed by accumulating child lengths, as everywhere else.
	base := len(c.stack)
	offset := top.oldStart
	for el := range n.Elements() {
		c.stack = append(c.stack, reuseFrame{el: el, oldStart: offset})
		offset += el.TextLen()
	}
	reverse(c.stack[base:])
}

func reverse(frames []reuseFrame) {
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
}

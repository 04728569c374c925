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

package edit

import "fmt"

// Op is one operation of an editor-style delta: [Retain], [Insert], or
// [Delete]. Ops are consumed by [Translate] and never stored.
type Op interface {
	isOp()
}

// Retain advances past n unchanged bytes of the original document.
type Retain int

// Insert inserts text at the current position.
type Insert string

// Delete removes the next n bytes of the original document.
type Delete int

func (Retain) isOp() {}
func (Insert) isOp() {}
func (Delete) isOp() {}

// TextEdit is an [Edit] together with the text it inserts, so that a caller
// holding only the pre-edit document can produce the post-edit one.
type TextEdit struct {
	Edit
	Text string
}

// Apply splices this edit into source and returns the result.
//
// Panics if the edit is out of bounds or Text does not match NewLen; a
// TextEdit produced by [Translate] and applied in sequence order is always
// consistent.
func (e TextEdit) Apply(source string) string {
	if err := e.Validate(len(source)); err != nil {
		panic(fmt.Sprintf("syntree/edit: %v", err))
	}
	if len(e.Text) != e.NewLen {
		panic(fmt.Sprintf("syntree/edit: %v carries %d bytes of text", e.Edit, len(e.Text)))
	}
	return source[:e.Start] + e.Text + source[e.OldEnd():]
}

// Translate reduces an ordered delta to a minimal sequence of edits.
//
// Each emitted edit's Start is a position in the document as already-emitted
// edits have modified it, so the result can be applied strictly left to
// right without the caller recomputing offsets. A Delete immediately
// followed by an Insert merges into a single replacement; this is the
// dominant editor pattern and must not produce two edits. An empty delta
// yields nil.
//
// Panics if a Retain or Delete count is negative.
func Translate(ops []Op) []TextEdit {
	var (
		out    []TextEdit
		cursor int // Position in the original document.
		delta  int // Net length change from edits already emitted.
	)
	for i := 0; i < len(ops); i++ {
		switch op := ops[i].(type) {
		case Retain:
			if op < 0 {
				panic(fmt.Sprintf("syntree/edit: negative retain %d", int(op)))
			}
			cursor += int(op)

		case Delete:
			if op < 0 {
				panic(fmt.Sprintf("syntree/edit: negative delete %d", int(op)))
			}

			// Merge an adjacent insert into one replacement.
			var text string
			if i+1 < len(ops) {
				if ins, ok := ops[i+1].(Insert); ok {
					text = string(ins)
					i++
				}
			}
			out = append(out, TextEdit{
				Edit: Edit{Start: cursor + delta, OldLen: int(op), NewLen: len(text)},
				Text: text,
			})
			cursor += int(op)
			delta += len(text) - int(op)

		case Insert:
			// A standalone insert does not advance the original-document
			// cursor.
			out = append(out, TextEdit{
				Edit: Edit{Start: cursor + delta, NewLen: len(op)},
				Text: string(op),
			})
			delta += len(op)
		}
	}
	return out
}

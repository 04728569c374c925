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

// Package edit models localized text changes and translates editor-style
// operation sequences (retain/insert/delete) into them.
//
// An [Edit] is the only unit of change the tree engine accepts: a single
// contiguous replacement described by a start offset, a removed length, and
// an inserted length. Higher-level deltas are reduced to a minimal sequence
// of edits by [Translate].
package edit

import "fmt"

// Edit is a single contiguous text change: OldLen bytes at Start are
// replaced by NewLen bytes.
type Edit struct {
	Start  int
	OldLen int
	NewLen int
}

// OldEnd returns the end of the replaced range in the pre-edit document.
func (e Edit) OldEnd() int {
	return e.Start + e.OldLen
}

// NewEnd returns the end of the inserted range in the post-edit document.
func (e Edit) NewEnd() int {
	return e.Start + e.NewLen
}

// Delta returns the net length change this edit applies.
func (e Edit) Delta() int {
	return e.NewLen - e.OldLen
}

// Validate checks this edit against a document of sourceLen bytes, returning
// an error if the replaced range falls outside its bounds. Such an edit is a
// programmer error at the boundary and must be rejected before any state is
// mutated.
func (e Edit) Validate(sourceLen int) error {
	if e.Start < 0 || e.OldLen < 0 || e.NewLen < 0 {
		return fmt.Errorf("edit: negative field in %v", e)
	}
	if e.OldEnd() > sourceLen {
		return fmt.Errorf("edit: %v is out of bounds for source of length %d", e, sourceLen)
	}
	return nil
}

// String implements [fmt.Stringer].
func (e Edit) String() string {
	return fmt.Sprintf("{%d -%d +%d}", e.Start, e.OldLen, e.NewLen)
}

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
)

// DamageRange is the byte interval invalidated by an edit: the span of the
// post-edit document that cannot be trusted to equal pre-edit content at the
// same coordinates.
type DamageRange struct {
	Start, End int
}

// DamageOf derives the damage range of an edit from its post-edit bounds.
func DamageOf(e edit.Edit) DamageRange {
	return DamageRange{Start: e.Start, End: e.NewEnd()}
}

// Overlaps returns whether [start, end) shares at least one byte with the
// damage range.
func (d DamageRange) Overlaps(start, end int) bool {
	return start < d.End && end > d.Start
}

// String implements [fmt.Stringer].
func (d DamageRange) String() string {
	return fmt.Sprintf("[%d,%d)", d.Start, d.End)
}

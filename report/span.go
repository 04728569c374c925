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

package report

import "fmt"

// Spanner is any type with a [Span].
type Spanner interface {
	// Should return the zero [Span] to indicate that it does not contribute
	// span information.
	Span() Span
}

// Span is a half-open byte interval [Start, End) within a source text.
type Span struct {
	Start, End int
}

// NewSpan constructs a span, panicking if the endpoints are out of order.
func NewSpan(start, end int) Span {
	if start > end || start < 0 {
		panic(fmt.Sprintf("syntree/report: invalid span endpoints: [%d, %d)", start, end))
	}
	return Span{Start: start, End: end}
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset lies within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Overlaps returns whether this span shares at least one byte with o.
//
// Zero-length spans overlap nothing, including themselves.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && s.End > o.Start
}

// Join returns the smallest span containing both s and o.
func (s Span) Join(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

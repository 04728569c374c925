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

// Package report provides spans and diagnostics for the syntax-tree engine.
//
// Grammars never abort on malformed input; instead they push diagnostics
// into a [Report] and keep parsing. The report is returned to the caller
// alongside the tree, so no diagnostic is ever silently dropped.
package report

import (
	"cmp"
	"fmt"
	"slices"
)

// Report is an ordered collection of diagnostics produced by one parse.
type Report struct {
	diagnostics []*Diagnostic
}

// Errorf pushes a new error diagnostic attached to the span of at. The
// returned diagnostic stays valid as the report grows, so notes may be
// attached to it at any later point.
func (r *Report) Errorf(at Spanner, format string, args ...any) *Diagnostic {
	return r.push(Error, at, format, args...)
}

// Warnf pushes a new warning diagnostic attached to the span of at.
func (r *Report) Warnf(at Spanner, format string, args ...any) *Diagnostic {
	return r.push(Warning, at, format, args...)
}

// Remarkf pushes a new remark attached to the span of at.
func (r *Report) Remarkf(at Spanner, format string, args ...any) *Diagnostic {
	return r.push(Remark, at, format, args...)
}

func (r *Report) push(level Level, at Spanner, format string, args ...any) *Diagnostic {
	var span Span
	if at != nil {
		span = at.Span()
	}
	d := &Diagnostic{
		level:   level,
		message: fmt.Sprintf(format, args...),
		span:    span,
	}
	r.diagnostics = append(r.diagnostics, d)
	return d
}

// Diagnostics returns the diagnostics recorded so far, in insertion order
// (or span order, after [Report.Sort]).
func (r *Report) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

// Len returns the number of recorded diagnostics.
func (r *Report) Len() int {
	return len(r.diagnostics)
}

// HasErrors returns whether any diagnostic has level [Error].
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.diagnostics, func(d *Diagnostic) bool {
		return d.level == Error
	})
}

// Sort canonicalizes the order of diagnostics: by span start, then by
// severity. The sort is stable, so diagnostics at the same position keep
// their insertion order.
func (r *Report) Sort() {
	slices.SortStableFunc(r.diagnostics, func(a, b *Diagnostic) int {
		if diff := cmp.Compare(a.span.Start, b.span.Start); diff != 0 {
			return diff
		}
		return cmp.Compare(a.level, b.level)
	})
}

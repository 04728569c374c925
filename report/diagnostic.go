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

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Error indicates a constraint violation in the parsed text.
	Error Level = 1 + iota
	// Warning indicates something that probably should not be ignored.
	Warning
	// Remark is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("report.Level(%d)", int8(l))
	}
}

// Diagnostic is a single message attached to a span of the parsed text.
//
// Diagnostics are recoverable by construction: a parser that emits one is
// expected to keep going, so not every Diagnostic is fatal to anything.
type Diagnostic struct {
	level   Level
	message string
	span    Span
	notes   []string
}

// Level returns this diagnostic's severity.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Message returns the main diagnostic message.
func (d *Diagnostic) Message() string {
	return d.message
}

// Span implements [Spanner].
func (d *Diagnostic) Span() Span {
	return d.span
}

// Notes returns any notes attached with [Diagnostic.Note].
func (d *Diagnostic) Notes() []string {
	return d.notes
}

// Note attaches a free-form note to this diagnostic and returns it, for
// chaining off of [Report.Errorf] and friends.
func (d *Diagnostic) Note(format string, args ...any) *Diagnostic {
	d.notes = append(d.notes, fmt.Sprintf(format, args...))
	return d
}

// String implements [fmt.Stringer].
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%v: %s at %v", d.level, d.message, d.span)
}

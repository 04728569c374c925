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
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/token"
)

// Session is the state handed to a grammar's [Grammar.Parse]: the token
// stream for one document, the diagnostics sink, and (during an incremental
// reparse) the reuse cursor over the previous tree.
//
// A Session is single-use and not safe for concurrent use.
type Session struct {
	source string
	buf    *token.Buffer
	idx    int
	report *report.Report
	reuse  *ReuseCursor
}

func newSession(buf *token.Buffer, reuse *ReuseCursor, r *report.Report) *Session {
	return &Session{
		source: buf.Source(),
		buf:    buf,
		report: r,
		reuse:  reuse,
	}
}

// Source returns the full source text being parsed.
func (s *Session) Source() string {
	return s.source
}

// Done returns whether the token stream is exhausted.
func (s *Session) Done() bool {
	return s.idx >= s.buf.Len()
}

// Peek returns the next token without consuming it. At the end of the
// stream it returns the grammar's EOF token, positioned at the end of the
// source.
func (s *Session) Peek() token.Positioned {
	if s.Done() {
		return s.buf.EOF()
	}
	return s.buf.At(s.idx)
}

// Next consumes and returns the next token. At the end of the stream it
// returns the EOF token without advancing.
func (s *Session) Next() token.Positioned {
	tok := s.Peek()
	if !s.Done() {
		s.idx++
	}
	return tok
}

// Offset returns the absolute offset of the next unconsumed token, or the
// source length at the end of the stream.
func (s *Session) Offset() int {
	return s.Peek().Offset
}

// TryReuse asks the reuse cursor for a previous-tree node of the given kind
// standing at the current offset. On success the session skips every token
// the node covers and the grammar must splice the node in verbatim instead
// of descending.
//
// During a full parse there is no previous tree and TryReuse always returns
// nil.
func (s *Session) TryReuse(kind token.Kind) *syntax.Node {
	if s.reuse == nil {
		return nil
	}
	n := s.reuse.TryReuse(s.Offset(), kind)
	if n == nil {
		return nil
	}
	end := s.Offset() + n.TextLen()
	for s.idx < s.buf.Len() && s.buf.At(s.idx).Offset < end {
		s.idx++
	}
	return n
}

// Errorf records a recoverable parse diagnostic. Diagnostics never abort
// parsing.
func (s *Session) Errorf(at report.Spanner, format string, args ...any) *report.Diagnostic {
	return s.report.Errorf(at, format, args...)
}

// Warnf records a warning diagnostic.
func (s *Session) Warnf(at report.Spanner, format string, args ...any) *report.Diagnostic {
	return s.report.Warnf(at, format, args...)
}

// Report returns the diagnostics sink for this parse.
func (s *Session) Report() *report.Report {
	return s.report
}

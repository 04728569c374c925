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

// Package parser orchestrates incremental reparsing.
//
// A [Parser] owns the current concrete tree, the source text it was parsed
// from, and the token buffer. Given a localized [edit.Edit], it produces an
// updated tree without re-parsing the whole document: only the touched byte
// range is re-lexed, and subtrees of the previous tree that lie outside the
// damage range are spliced into the new tree verbatim by the [ReuseCursor].
//
// The shape of the tree is decided entirely by the [Grammar] collaborator;
// this package supplies the machinery around it.
package parser

import (
	"fmt"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/token"
)

// Stats describes what the last successful Parse or Edit did, for debugging
// and for tests of the engine's reuse behavior.
type Stats struct {
	// ReusedNodes is the number of previous-tree subtrees spliced verbatim
	// into the new tree.
	ReusedNodes int
	// ReusedSpans holds the new-document spans of those subtrees.
	ReusedSpans []report.Span
	// RelexWindow is the byte range of the new source that was actually
	// re-lexed.
	RelexWindow report.Span
}

// Parser maintains a parsed representation of one text document across
// localized edits.
//
// A Parser starts empty; [Parser.Parse] is the only transition into the
// parsed state from empty, and [Parser.Edit] called on an empty parser
// degrades to a full parse. Mutating calls must be serialized by the caller
// (single-writer discipline); the concrete tree returned by a completed
// call is immutable and safe to read concurrently with other reads.
type Parser struct {
	grammar Grammar

	source string
	buf    *token.Buffer
	tree   *syntax.Node
	stats  Stats

	// Goroutine id of the in-flight mutating call, or 0. Mutators do not
	// block each other; overlapping calls are API misuse and panic.
	mutator atomic.Int64
}

// New creates an empty parser for the given grammar.
//
// Panics if grammar is nil.
func New(grammar Grammar) *Parser {
	if grammar == nil {
		panic("syntree/parser: nil grammar")
	}
	return &Parser{grammar: grammar}
}

// Parse performs a full tokenize and parse of source, with no reuse, and
// installs the result as the current tree. Parse diagnostics are appended
// to r; a lex error is returned and leaves the parser unchanged.
func (p *Parser) Parse(source string, r *report.Report) (*syntax.Node, error) {
	defer p.guard("Parse")()
	return p.parse(source, r)
}

func (p *Parser) parse(source string, r *report.Report) (*syntax.Node, error) {
	buf := token.NewBuffer(p.grammar.Tokenize, p.grammar.EOF())
	if err := buf.Reset(source); err != nil {
		return nil, err
	}

	tree := p.run(newSession(buf, nil, r), len(source))
	p.source, p.buf, p.tree = source, buf, tree
	p.stats = Stats{RelexWindow: buf.Window()}
	return tree, nil
}

// Edit applies a single contiguous change to the document and reparses
// incrementally: the token buffer re-lexes only the touched range, and the
// grammar's descent is driven with a reuse cursor over the previous tree,
// initialized to the damage range [e.Start, e.NewEnd()).
//
// newSource must be the full post-edit text; e must lie within the current
// source's bounds, and is rejected before any state changes otherwise. On
// an empty parser, Edit degrades to a full parse of newSource.
func (p *Parser) Edit(e edit.Edit, newSource string, r *report.Report) (*syntax.Node, error) {
	defer p.guard("Edit")()

	if p.tree == nil {
		return p.parse(newSource, r)
	}
	return p.edit(e, newSource, r)
}

func (p *Parser) edit(e edit.Edit, newSource string, r *report.Report) (*syntax.Node, error) {
	prev := p.tree
	if err := p.buf.Update(e, newSource); err != nil {
		return nil, err
	}

	cursor := NewReuseCursor(prev, e)
	tree := p.run(newSession(p.buf, cursor, r), len(newSource))
	p.source, p.tree = newSource, tree
	p.stats = Stats{
		ReusedNodes: cursor.reused,
		ReusedSpans: cursor.reusedSpans,
		RelexWindow: p.buf.Window(),
	}
	return tree, nil
}

// ApplyDelta reduces an editor-style delta to edits and applies them in
// order, each against the source as already-applied edits have modified it.
// It returns the tree after the final edit; an unchanged document (a delta
// with no inserts or deletes) returns the current tree as-is.
//
// Only the final edit reports into r: the documents between edits are
// transient, and their diagnostics would carry spans in coordinates no
// document the caller ever sees.
func (p *Parser) ApplyDelta(ops []edit.Op, r *report.Report) (*syntax.Node, error) {
	defer p.guard("ApplyDelta")()

	if p.tree == nil {
		return nil, fmt.Errorf("syntree/parser: ApplyDelta on an empty parser")
	}

	tree := p.tree
	edits := edit.Translate(ops)
	for i, te := range edits {
		if err := te.Validate(len(p.source)); err != nil {
			return nil, err
		}

		sink := r
		if i < len(edits)-1 {
			sink = new(report.Report)
		}

		var err error
		tree, err = p.edit(te.Edit, te.Apply(p.source), sink)
		if err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// run drives the grammar and checks its contract.
func (p *Parser) run(s *Session, sourceLen int) *syntax.Node {
	tree := p.grammar.Parse(s)
	if tree == nil {
		panic("syntree/parser: grammar returned a nil tree")
	}
	if tree.TextLen() != sourceLen {
		panic(fmt.Sprintf(
			"syntree/parser: grammar produced a tree covering %d of %d bytes; this is a bug in the grammar",
			tree.TextLen(), sourceLen))
	}
	return tree
}

// Tree returns the current concrete tree, or nil for an empty parser.
func (p *Parser) Tree() *syntax.Node {
	return p.tree
}

// Root returns a positioned view over the current tree, or nil for an empty
// parser.
func (p *Parser) Root() *syntax.PositionedNode {
	if p.tree == nil {
		return nil
	}
	return syntax.Root(p.tree)
}

// Source returns the source text the current tree was parsed from.
func (p *Parser) Source() string {
	return p.source
}

// Stats returns what the last successful Parse or Edit did.
func (p *Parser) Stats() Stats {
	return p.stats
}

// guard enforces the single-writer discipline: a mutating call that
// observes another in-flight mutator panics with both goroutine ids rather
// than corrupting state.
func (p *Parser) guard(op string) func() {
	id := goid.Get()
	if prev := p.mutator.Swap(id); prev != 0 && prev != id {
		panic(fmt.Sprintf(
			"syntree/parser: goroutine %d called %s while goroutine %d was mutating the same Parser",
			id, op, prev))
	}
	return func() { p.mutator.Store(0) }
}

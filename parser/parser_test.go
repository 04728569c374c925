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

package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/internal/sexp"
	"github.com/syntree/syntree/parser"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
)

func parse(t *testing.T, source string) (*parser.Parser, *syntax.Node) {
	t.Helper()
	p := parser.New(sexp.New())
	var r report.Report
	tree, err := p.Parse(source, &r)
	require.NoError(t, err)
	return p, tree
}

// freshDump parses source from scratch and returns the structural rendering
// of the result, for comparison against an incrementally updated tree.
func freshDump(t *testing.T, source string) (*syntax.Node, string) {
	t.Helper()
	_, tree := parse(t, source)
	return tree, syntax.Dump(syntax.Root(tree), sexp.KindName)
}

func TestParse(t *testing.T) {
	t.Parallel()

	p, tree := parse(t, "(a b)")
	require.NotNil(t, tree)
	assert.Equal(t, 5, tree.TextLen())
	assert.Equal(t, "(a b)", p.Source())

	want := "" +
		"File@[0,5)\n" +
		"  List@[0,5)\n" +
		"    LParen@[0,1) \"(\"\n" +
		"    Atom@[1,2) \"a\"\n" +
		"    Space@[2,3) \" \"\n" +
		"    Atom@[3,4) \"b\"\n" +
		"    RParen@[4,5) \")\"\n"
	assert.Empty(t, cmp.Diff(want, syntax.Dump(p.Root(), sexp.KindName)))

	stats := p.Stats()
	assert.Equal(t, 0, stats.ReusedNodes)
	assert.Equal(t, report.Span{Start: 0, End: 5}, stats.RelexWindow)
}

func TestParseEmptySource(t *testing.T) {
	t.Parallel()

	_, tree := parse(t, "")
	require.NotNil(t, tree)
	assert.Equal(t, 0, tree.TextLen())
	assert.Equal(t, 0, tree.NumChildren())
}

func TestParseLexErrorLeavesParserEmpty(t *testing.T) {
	t.Parallel()

	p := parser.New(sexp.New())
	var r report.Report
	_, err := p.Parse("a \xff b", &r)
	require.Error(t, err)
	assert.Nil(t, p.Tree())
	assert.Nil(t, p.Root())
}

func TestEditMatchesFreshParse(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a b) (c d)")

	e := edit.Edit{Start: 7, OldLen: 1, NewLen: 1}
	var r report.Report
	tree, err := p.Edit(e, "(a b) (x d)", &r)
	require.NoError(t, err)

	fresh, wantDump := freshDump(t, "(a b) (x d)")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Empty(t, cmp.Diff(wantDump, syntax.Dump(p.Root(), sexp.KindName)))
	assert.False(t, r.HasErrors())

	// The undamaged first list is spliced in verbatim; only the replaced
	// atom is re-lexed.
	stats := p.Stats()
	assert.Equal(t, 1, stats.ReusedNodes)
	assert.Equal(t, []report.Span{{Start: 0, End: 5}}, stats.ReusedSpans)
	assert.Equal(t, report.Span{Start: 7, End: 8}, stats.RelexWindow)
}

func TestEditFullReplacementMatchesFreshParse(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a b)")

	// Replace the whole document in one edit. Nothing can be reused, and
	// the result must be indistinguishable from a from-scratch parse.
	e := edit.Edit{Start: 0, OldLen: 5, NewLen: 7}
	var r report.Report
	tree, err := p.Edit(e, "(x y z)", &r)
	require.NoError(t, err)

	fresh, wantDump := freshDump(t, "(x y z)")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Empty(t, cmp.Diff(wantDump, syntax.Dump(p.Root(), sexp.KindName)))
	assert.Equal(t, 0, p.Stats().ReusedNodes)
	assert.Equal(t, report.Span{Start: 0, End: 7}, p.Stats().RelexWindow)
}

func TestEditReusesOnlyOutsideDamage(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a) (b) (c) (d)")

	// Replace the "b" list wholesale.
	e := edit.Edit{Start: 4, OldLen: 3, NewLen: 7}
	var r report.Report
	_, err := p.Edit(e, "(a) (x y z) (c) (d)", &r)
	require.NoError(t, err)

	damage := parser.DamageOf(e)
	stats := p.Stats()
	assert.GreaterOrEqual(t, stats.ReusedNodes, 3)
	for _, span := range stats.ReusedSpans {
		assert.False(t, damage.Overlaps(span.Start, span.End),
			"reused span %v overlaps damage %v", span, damage)
	}
}

func TestEditReusesNestedSiblings(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "((a) (b))")

	// The outer list is damaged and rebuilt, but the nested (a) list is
	// not and survives by reference.
	e := edit.Edit{Start: 6, OldLen: 1, NewLen: 2}
	var r report.Report
	tree, err := p.Edit(e, "((a) (xx))", &r)
	require.NoError(t, err)

	fresh, _ := freshDump(t, "((a) (xx))")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Contains(t, p.Stats().ReusedSpans, report.Span{Start: 1, End: 4})
}

func TestEditShiftsReusedSubtrees(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a) (tail)")

	// Grow the first list; the (tail) list is reused at a shifted offset.
	e := edit.Edit{Start: 2, OldLen: 0, NewLen: 3}
	var r report.Report
	tree, err := p.Edit(e, "(a bb) (tail)", &r)
	require.NoError(t, err)

	fresh, _ := freshDump(t, "(a bb) (tail)")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Contains(t, p.Stats().ReusedSpans, report.Span{Start: 7, End: 13})
}

func TestEditOnEmptyParserDegradesToFullParse(t *testing.T) {
	t.Parallel()

	p := parser.New(sexp.New())
	var r report.Report
	tree, err := p.Edit(edit.Edit{}, "(a b)", &r)
	require.NoError(t, err)

	fresh, _ := freshDump(t, "(a b)")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Equal(t, "(a b)", p.Source())
}

func TestEditRejectsOutOfBounds(t *testing.T) {
	t.Parallel()

	p, tree := parse(t, "(a)")

	e := edit.Edit{Start: 2, OldLen: 5, NewLen: 0}
	var r report.Report
	_, err := p.Edit(e, "(a", &r)
	require.Error(t, err)

	// Nothing changed.
	assert.Same(t, tree, p.Tree())
	assert.Equal(t, "(a)", p.Source())
}

func TestEditLexErrorLeavesTreeIntact(t *testing.T) {
	t.Parallel()

	p, tree := parse(t, "(a)")

	e := edit.Edit{Start: 2, OldLen: 0, NewLen: 1}
	var r report.Report
	_, err := p.Edit(e, "(a\xff)", &r)
	require.Error(t, err)

	assert.Same(t, tree, p.Tree())
	assert.Equal(t, "(a)", p.Source())
}

func TestEditRecoversFromParseErrors(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a b)")

	// Inject a stray close paren. The parse still succeeds, covering the
	// whole source, with a diagnostic attached to the stray token.
	e := edit.Edit{Start: 5, OldLen: 0, NewLen: 1}
	var r report.Report
	tree, err := p.Edit(e, "(a b))", &r)
	require.NoError(t, err)
	require.NotNil(t, tree)

	assert.Equal(t, 6, tree.TextLen())
	require.True(t, r.HasErrors())
	assert.Equal(t, report.Span{Start: 5, End: 6}, r.Diagnostics()[0].Span())

	fresh, _ := freshDump(t, "(a b))")
	assert.True(t, syntax.Equal(fresh, tree))
}

func TestEditInsertionAtRecoveredNodeBoundary(t *testing.T) {
	t.Parallel()

	// "(()" parses to an unterminated outer list, closed by recovery at end
	// of input. Appending ")" exactly at its end boundary does not touch its
	// old bytes, but the node must not survive: a parse of the new text
	// closes the outer list with the new paren instead.
	p, _ := parse(t, "(()")

	e := edit.Edit{Start: 3, OldLen: 0, NewLen: 1}
	var r report.Report
	tree, err := p.Edit(e, "(())", &r)
	require.NoError(t, err)

	fresh, wantDump := freshDump(t, "(())")
	assert.True(t, syntax.Equal(fresh, tree))
	assert.Empty(t, cmp.Diff(wantDump, syntax.Dump(p.Root(), sexp.KindName)))
	assert.False(t, r.HasErrors())
	assert.False(t, tree.Recovered())

	// The closed inner list is clean and is still reused.
	assert.Contains(t, p.Stats().ReusedSpans, report.Span{Start: 1, End: 3})
}

func TestEditAppendAfterRecoveredList(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "((a")

	var r report.Report
	source := "((a"
	for _, step := range []struct {
		e   edit.Edit
		new string
	}{
		{edit.Edit{Start: 3, OldLen: 0, NewLen: 1}, "((a)"},
		{edit.Edit{Start: 4, OldLen: 0, NewLen: 1}, "((a))"},
	} {
		source = step.new
		r = report.Report{}
		tree, err := p.Edit(step.e, source, &r)
		require.NoError(t, err)

		fresh, _ := freshDump(t, source)
		assert.True(t, syntax.Equal(fresh, tree), "after edit to %q", source)
	}
	assert.False(t, r.HasErrors())
	assert.False(t, p.Tree().Recovered())
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(one two)")

	var r report.Report
	tree, err := p.ApplyDelta([]edit.Op{
		edit.Retain(5),
		edit.Delete(3),
		edit.Insert("three"),
	}, &r)
	require.NoError(t, err)

	assert.Equal(t, "(one three)", p.Source())
	fresh, _ := freshDump(t, "(one three)")
	assert.True(t, syntax.Equal(fresh, tree))
}

func TestApplyDeltaMultipleEdits(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "(a b) (c d)")

	var r report.Report
	tree, err := p.ApplyDelta([]edit.Op{
		edit.Retain(1),
		edit.Delete(1),
		edit.Insert("first"),
		edit.Retain(5),
		edit.Delete(1),
		edit.Insert("second"),
	}, &r)
	require.NoError(t, err)

	assert.Equal(t, "(first b) (second d)", p.Source())
	fresh, _ := freshDump(t, "(first b) (second d)")
	assert.True(t, syntax.Equal(fresh, tree))
}

func TestApplyDeltaReportsFinalStateOnly(t *testing.T) {
	t.Parallel()

	p, _ := parse(t, "()")

	// The intermediate document "(()" is malformed; the final "(())" is
	// not. Only the final state's diagnostics may reach the caller.
	var r report.Report
	tree, err := p.ApplyDelta([]edit.Op{
		edit.Insert("("),
		edit.Retain(2),
		edit.Insert(")"),
	}, &r)
	require.NoError(t, err)

	assert.Equal(t, "(())", p.Source())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.HasErrors())

	fresh, _ := freshDump(t, "(())")
	assert.True(t, syntax.Equal(fresh, tree))
}

func TestApplyDeltaNoOp(t *testing.T) {
	t.Parallel()

	p, tree := parse(t, "(a)")

	var r report.Report
	got, err := p.ApplyDelta([]edit.Op{edit.Retain(3)}, &r)
	require.NoError(t, err)
	assert.Same(t, tree, got)
}

func TestApplyDeltaOnEmptyParser(t *testing.T) {
	t.Parallel()

	p := parser.New(sexp.New())
	var r report.Report
	_, err := p.ApplyDelta([]edit.Op{edit.Insert("(a)")}, &r)
	assert.Error(t, err)
}

func TestApplyDeltaOutOfBounds(t *testing.T) {
	t.Parallel()

	p, tree := parse(t, "(a)")

	var r report.Report
	_, err := p.ApplyDelta([]edit.Op{edit.Retain(2), edit.Delete(5)}, &r)
	require.Error(t, err)
	assert.Same(t, tree, p.Tree())
}

func TestNewPanicsOnNilGrammar(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { parser.New(nil) })
}

func TestDamageOf(t *testing.T) {
	t.Parallel()

	d := parser.DamageOf(edit.Edit{Start: 5, OldLen: 3, NewLen: 7})
	assert.Equal(t, parser.DamageRange{Start: 5, End: 12}, d)
	assert.Equal(t, "[5,12)", d.String())

	assert.True(t, d.Overlaps(0, 6))
	assert.True(t, d.Overlaps(11, 20))
	assert.False(t, d.Overlaps(0, 5))
	assert.False(t, d.Overlaps(12, 20))
}

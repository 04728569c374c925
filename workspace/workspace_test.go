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

package workspace_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/internal/sexp"
	"github.com/syntree/syntree/parser"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/workspace"
)

func newWorkspace() *workspace.Workspace {
	return workspace.New(func() parser.Grammar { return sexp.New() })
}

func TestOpenAndEdit(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	tree, err := w.Open("a.sexp", "(a b)")
	require.NoError(t, err)
	assert.Equal(t, 5, tree.TextLen())

	got, err := w.Tree("a.sexp")
	require.NoError(t, err)
	assert.Same(t, tree, got)

	e := edit.Edit{Start: 3, OldLen: 1, NewLen: 2}
	edited, err := w.Edit("a.sexp", e, "(a xy)")
	require.NoError(t, err)
	assert.Equal(t, 6, edited.TextLen())

	got, err = w.Tree("a.sexp")
	require.NoError(t, err)
	assert.Same(t, edited, got)
}

func TestOpenReplacesExistingDocument(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	_, err := w.Open("a.sexp", "(old)")
	require.NoError(t, err)
	fresh, err := w.Open("a.sexp", "(new)")
	require.NoError(t, err)

	got, err := w.Tree("a.sexp")
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Len(t, w.Paths(), 1)
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	texts := map[string]string{}
	for i := range 20 {
		texts[fmt.Sprintf("doc%02d.sexp", i)] = fmt.Sprintf("(doc %d)", i)
	}

	w := newWorkspace()
	require.NoError(t, w.OpenAll(t.Context(), texts))
	assert.Len(t, w.Paths(), 20)

	for path := range texts {
		tree, err := w.Tree(path)
		require.NoError(t, err)
		assert.NotNil(t, tree)
	}
}

func TestOpenAllPropagatesLexError(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	err := w.OpenAll(t.Context(), map[string]string{
		"good.sexp": "(a)",
		"bad.sexp":  "(\xff)",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad.sexp")

	// The failed document is never registered.
	_, err = w.Tree("bad.sexp")
	assert.Error(t, err)
}

func TestOpenAllHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	w := newWorkspace()
	err := w.OpenAll(ctx, map[string]string{
		"a.sexp": "(a)",
		"b.sexp": "(b)",
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, w.Paths())
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	_, err := w.Open("a.sexp", "(one two)")
	require.NoError(t, err)

	tree, err := w.ApplyDelta("a.sexp", []edit.Op{
		edit.Retain(5),
		edit.Delete(3),
		edit.Insert("three"),
	})
	require.NoError(t, err)

	var r report.Report
	fresh, err := parser.New(sexp.New()).Parse("(one three)", &r)
	require.NoError(t, err)

	require.NotNil(t, tree)
	assert.True(t, syntax.Equal(fresh, tree))
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	_, err := w.Open("a.sexp", "(a))")
	require.NoError(t, err)

	diags, err := w.Diagnostics("a.sexp")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message(), "unmatched")

	// A repairing edit clears them.
	_, err = w.Edit("a.sexp", edit.Edit{Start: 3, OldLen: 1, NewLen: 0}, "(a)")
	require.NoError(t, err)
	diags, err = w.Diagnostics("a.sexp")
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestClose(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	_, err := w.Open("a.sexp", "(a)")
	require.NoError(t, err)

	w.Close("a.sexp")
	_, err = w.Tree("a.sexp")
	assert.Error(t, err)
	assert.Empty(t, w.Paths())

	// Closing twice is fine.
	w.Close("a.sexp")
}

func TestUnknownDocument(t *testing.T) {
	t.Parallel()

	w := newWorkspace()
	_, err := w.Edit("nope.sexp", edit.Edit{}, "")
	assert.ErrorContains(t, err, "no open document")
	_, err = w.ApplyDelta("nope.sexp", nil)
	assert.Error(t, err)
	_, err = w.Diagnostics("nope.sexp")
	assert.Error(t, err)
}

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

// Package workspace coordinates incremental parsers for a set of open
// documents.
//
// Each document gets its own [parser.Parser] and its own diagnostics
// report. Mutations of one document are serialized by the workspace;
// distinct documents are independent, so the initial bulk parse fans out
// across goroutines.
package workspace

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/parser"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
)

// Workspace tracks one incremental parser per open document.
type Workspace struct {
	grammar func() parser.Grammar

	mu   sync.Mutex
	docs map[string]*document
}

type document struct {
	mu     sync.Mutex
	parser *parser.Parser
	report report.Report
}

// New creates an empty workspace. grammar is called once per opened
// document, so grammars need not be safe for concurrent use.
func New(grammar func() parser.Grammar) *Workspace {
	return &Workspace{
		grammar: grammar,
		docs:    map[string]*document{},
	}
}

// Open parses text and registers it under path, replacing any document
// already open there.
func (w *Workspace) Open(path, text string) (*syntax.Node, error) {
	doc := &document{parser: parser.New(w.grammar())}
	tree, err := doc.parser.Parse(text, &doc.report)
	if err != nil {
		return nil, fmt.Errorf("workspace: open %q: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return tree, nil
}

// OpenAll parses every file in texts concurrently and registers the
// results. It returns the first error; documents whose parse completed stay
// open, while parses not yet started when ctx is canceled (by the caller or
// by another file's failure) are skipped.
func (w *Workspace) OpenAll(ctx context.Context, texts map[string]string) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for path, text := range texts {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := w.Open(path, text)
			return err
		})
	}
	return group.Wait()
}

// Close drops the document at path.
func (w *Workspace) Close(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

// Edit applies a single edit to the document at path.
func (w *Workspace) Edit(path string, e edit.Edit, newText string) (*syntax.Node, error) {
	doc, err := w.lookup(path)
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.report = report.Report{}
	return doc.parser.Edit(e, newText, &doc.report)
}

// ApplyDelta applies an editor-style delta to the document at path.
func (w *Workspace) ApplyDelta(path string, ops []edit.Op) (*syntax.Node, error) {
	doc, err := w.lookup(path)
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.report = report.Report{}
	return doc.parser.ApplyDelta(ops, &doc.report)
}

// Tree returns the current tree of the document at path.
func (w *Workspace) Tree(path string) (*syntax.Node, error) {
	doc, err := w.lookup(path)
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.parser.Tree(), nil
}

// Diagnostics returns the diagnostics of the last parse or edit of the
// document at path.
func (w *Workspace) Diagnostics(path string) ([]*report.Diagnostic, error) {
	doc, err := w.lookup(path)
	if err != nil {
		return nil, err
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.report.Diagnostics(), nil
}

// Paths returns the paths of every open document.
func (w *Workspace) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	return paths
}

func (w *Workspace) lookup(path string) (*document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, ok := w.docs[path]
	if !ok {
		return nil, fmt.Errorf("workspace: no open document at %q", path)
	}
	return doc, nil
}

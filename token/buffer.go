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

package token

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/report"
)

// Buffer is an incremental lexer cache: it owns the authoritative token list
// for the current source text, and re-lexes only the byte range touched by
// an edit.
//
// Tokens that survive an update are carried over by pointer, so a token
// outside the re-lex window is reference-identical before and after, merely
// at a shifted offset.
type Buffer struct {
	tokenize TokenizeFunc
	eof      *Token

	toks    []Positioned
	source  string
	version int
	window  report.Span
}

// NewBuffer creates an empty buffer using the given tokenizer and designated
// end-of-input token.
//
// Panics if tokenize or eof is nil.
func NewBuffer(tokenize TokenizeFunc, eof *Token) *Buffer {
	if tokenize == nil || eof == nil {
		panic("syntree/token: NewBuffer requires a tokenizer and an EOF token")
	}
	return &Buffer{tokenize: tokenize, eof: eof}
}

// Reset discards the current token list and lexes source from scratch.
//
// On a lex error, the buffer is left unchanged.
func (b *Buffer) Reset(source string) error {
	toks, err := b.lex(source, 0)
	if err != nil {
		return err
	}
	b.toks = toks
	b.source = source
	b.version++
	b.window = report.Span{Start: 0, End: len(source)}
	return nil
}

// Update splices the token list to reflect e, re-lexing only the touched
// window: the kept prefix is every token ending at or before e.Start, the
// kept suffix is every token starting at or after e.OldEnd (shifted by
// e.Delta), and the source between them is lexed anew. The window is
// slightly wider than the edit itself so that a token whose lexeme crosses
// the edit boundary is re-tokenized whole rather than truncated.
//
// newSource must be the full post-edit text. On any error (edit out of
// bounds, inconsistent newSource length, lex error) the buffer is left
// unchanged.
func (b *Buffer) Update(e edit.Edit, newSource string) error {
	if err := e.Validate(len(b.source)); err != nil {
		return err
	}
	if len(newSource) != len(b.source)+e.Delta() {
		return fmt.Errorf(
			"syntree/token: new source length %d does not match %d%+d implied by %v",
			len(newSource), len(b.source), e.Delta(), e)
	}

	// prefix is the count of tokens entirely before the edit; suffix is the
	// index of the first token entirely after the old range.
	prefix := sort.Search(len(b.toks), func(i int) bool {
		return b.toks[i].End() > e.Start
	})
	suffix := sort.Search(len(b.toks), func(i int) bool {
		return b.toks[i].Offset >= e.OldEnd()
	})
	suffix = max(suffix, prefix)

	windowStart := 0
	if prefix > 0 {
		windowStart = b.toks[prefix-1].End()
	}
	windowEnd := len(newSource)
	if suffix < len(b.toks) {
		windowEnd = b.toks[suffix].Offset + e.Delta()
	}

	relexed, err := b.lex(newSource[windowStart:windowEnd], windowStart)
	if err != nil {
		return err
	}

	toks := make([]Positioned, 0, prefix+len(relexed)+len(b.toks)-suffix)
	toks = append(toks, b.toks[:prefix]...)
	toks = append(toks, relexed...)
	for _, t := range b.toks[suffix:] {
		toks = append(toks, Positioned{Token: t.Token, Offset: t.Offset + e.Delta()})
	}

	b.toks = toks
	b.source = newSource
	b.version++
	b.window = report.Span{Start: windowStart, End: windowEnd}
	return nil
}

// lex tokenizes text and positions the result starting at base, verifying
// that the tokenizer covered every byte.
func (b *Buffer) lex(text string, base int) ([]Positioned, error) {
	raw, err := b.tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("syntree/token: lex of [%d,%d): %w", base, base+len(text), err)
	}

	toks := make([]Positioned, len(raw))
	offset := base
	for i, t := range raw {
		toks[i] = Positioned{Token: t, Offset: offset}
		offset += t.TextLen()
	}
	if offset != base+len(text) {
		return nil, fmt.Errorf(
			"syntree/token: tokenizer covered %d of %d bytes; this is a bug in the grammar",
			offset-base, len(text))
	}
	return toks, nil
}

// Len returns the number of tokens in the buffer, not counting EOF.
func (b *Buffer) Len() int {
	return len(b.toks)
}

// At returns the i-th token.
func (b *Buffer) At(i int) Positioned {
	return b.toks[i]
}

// All returns an iterator over the tokens in the buffer, in source order.
func (b *Buffer) All() iter.Seq[Positioned] {
	return slices.Values(b.toks)
}

// EOF returns the designated end-of-input token, positioned at the end of
// the current source.
func (b *Buffer) EOF() Positioned {
	return Positioned{Token: b.eof, Offset: len(b.source)}
}

// Source returns the source text the buffer currently reflects.
func (b *Buffer) Source() string {
	return b.source
}

// Version returns a counter that increments on every successful Reset or
// Update.
func (b *Buffer) Version() int {
	return b.version
}

// Window returns the byte range of the new source that the last successful
// Reset or Update actually lexed.
func (b *Buffer) Window() report.Span {
	return b.window
}

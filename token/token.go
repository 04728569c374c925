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

// Package token defines the lexical atoms of the syntax-tree engine and
// Buffer, the incremental lexer cache.
//
// The engine is grammar-agnostic: token kinds are opaque tags registered by
// the grammar collaborator, and tokenization is a function value supplied by
// it. Nothing in this package knows what any particular kind means.
package token

import "fmt"

// Kind identifies what kind of token (or node) a syntax element is.
//
// Kinds are allocated by the grammar collaborator; the engine only ever
// compares them. The zero kind is reserved to mean "no kind" and must not be
// assigned by a grammar.
type Kind uint16

// None is the reserved "no kind" value.
const None Kind = 0

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k == None {
		return "None"
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Token is a lexical atom: a kind tag and the text it was lexed from.
//
// Tokens are immutable once created and are shared by pointer: the same
// *Token may appear in the token buffer, in the previous tree, and in the
// new tree after an incremental reparse.
type Token struct {
	kind Kind
	text string
}

// New creates a new token.
//
// Panics if kind is [None]; the reserved kind cannot be lexed.
func New(kind Kind, text string) *Token {
	if kind == None {
		panic("syntree/token: cannot create a token with the reserved None kind")
	}
	return &Token{kind: kind, text: text}
}

// Kind returns this token's kind.
func (t *Token) Kind() Kind {
	return t.kind
}

// Text returns this token's text.
func (t *Token) Text() string {
	return t.text
}

// TextLen returns the length of this token's text, in bytes.
func (t *Token) TextLen() int {
	return len(t.text)
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	return fmt.Sprintf("%v(%q)", t.kind, t.text)
}

// TokenizeFunc is the tokenizer contract supplied by a grammar: it splits
// text into a token sequence covering every byte of text, in order.
//
// A tokenizer that cannot classify some substring must return an error
// (a lex error); it must not return a partial token list.
type TokenizeFunc func(text string) ([]*Token, error)

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

// Package sexp is a small s-expression grammar used to exercise the tree
// engine: nested parenthesized lists of atoms, with whitespace kept in the
// tree as trivia.
//
// It doubles as a reference for writing a [parser.Grammar]: it recovers from
// unmatched delimiters with error-placeholder nodes, and it offers every
// list to the reuse cursor before descending.
package sexp

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/syntree/syntree/parser"
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/token"
)

// Token and node kinds of the s-expression language.
const (
	Space token.Kind = 1 + iota // Contiguous whitespace (trivia).
	Atom                        // A bare word.
	LParen
	RParen
	Unrecognized // A run of bytes the lexer cannot classify.
	EOF          // End of input; never appears in the tree.

	File  // Root node: a sequence of items.
	List  // A parenthesized list.
	Error // Placeholder node for a malformed region.
)

// KindName maps the kinds above to names, for [syntax.Dump].
func KindName(k token.Kind) string {
	switch k {
	case Space:
		return "Space"
	case Atom:
		return "Atom"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Unrecognized:
		return "Unrecognized"
	case EOF:
		return "EOF"
	case File:
		return "File"
	case List:
		return "List"
	case Error:
		return "Error"
	default:
		return k.String()
	}
}

// ErrInvalidUTF8 is the lex error for input that is not valid UTF-8.
type ErrInvalidUTF8 struct {
	Offset int
}

// Error implements [error].
func (e ErrInvalidUTF8) Error() string {
	return fmt.Sprintf("input is not valid UTF-8 at offset %d", e.Offset)
}

// Grammar implements [parser.Grammar] for the s-expression language.
type Grammar struct{}

// New returns the s-expression grammar.
func New() Grammar {
	return Grammar{}
}

// EOF implements [parser.Grammar].
func (Grammar) EOF() *token.Token {
	return token.New(EOF, "")
}

// Tokenize implements [parser.Grammar].
func (Grammar) Tokenize(text string) ([]*token.Token, error) {
	var toks []*token.Token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, ErrInvalidUTF8{Offset: i}
		}

		start := i
		switch {
		case r == '(':
			i += size
			toks = append(toks, token.New(LParen, "("))
		case r == ')':
			i += size
			toks = append(toks, token.New(RParen, ")"))
		case unicode.IsSpace(r):
			i += size
			i += takeWhile(text[i:], unicode.IsSpace)
			toks = append(toks, token.New(Space, text[start:i]))
		case isAtom(r):
			i += size
			i += takeWhile(text[i:], isAtom)
			toks = append(toks, token.New(Atom, text[start:i]))
		default:
			i += size
			i += takeWhile(text[i:], func(r rune) bool {
				return !isAtom(r) && !unicode.IsSpace(r) && r != '(' && r != ')'
			})
			toks = append(toks, token.New(Unrecognized, text[start:i]))
		}
	}
	return toks, nil
}

func takeWhile(text string, p func(rune) bool) int {
	for i, r := range text {
		if !p(r) {
			return i
		}
	}
	return len(text)
}

func isAtom(r rune) bool {
	return r != '(' && r != ')' && !unicode.IsSpace(r) && unicode.IsGraphic(r)
}

// Parse implements [parser.Grammar].
func (g Grammar) Parse(s *parser.Session) *syntax.Node {
	var children []syntax.Element
	for !s.Done() {
		children = append(children, g.item(s))
	}
	return syntax.NewNode(File, children...)
}

// item parses a single file- or list-level item: trivia, an atom, a list,
// or an error placeholder.
func (g Grammar) item(s *parser.Session) syntax.Element {
	tok := s.Peek()
	switch tok.Kind() {
	case Space, Atom:
		return s.Next().Token

	case LParen:
		if n := s.TryReuse(List); n != nil {
			return n
		}
		return g.list(s)

	case RParen:
		s.Next()
		s.Errorf(tok.Span(), "unmatched %q", ")")
		return syntax.NewRecoveredNode(Error, tok.Token)

	default:
		s.Next()
		s.Errorf(tok.Span(), "unrecognized text %q", tok.Token.Text())
		return syntax.NewRecoveredNode(Error, tok.Token)
	}
}

// list parses a parenthesized list; the cursor is at the open paren. An
// unterminated list is closed at end of input with a diagnostic, and is
// marked recovered: appending text after it changes how it parses, so it
// must not survive a later reparse verbatim.
func (g Grammar) list(s *parser.Session) *syntax.Node {
	open := s.Next()
	children := []syntax.Element{open.Token}
	for {
		if s.Done() {
			s.Errorf(open.Span(), "unterminated list").
				Note("expected %q before end of input", ")")
			return syntax.NewRecoveredNode(List, children...)
		}
		if s.Peek().Kind() == RParen {
			children = append(children, s.Next().Token)
			return syntax.NewNode(List, children...)
		}
		children = append(children, g.item(s))
	}
}

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
	"github.com/syntree/syntree/syntax"
	"github.com/syntree/syntree/token"
)

// Grammar is the collaborator contract for a specific source language. The
// tree engine has no dependency on any language's token or node kinds; it
// learns everything through this interface.
//
// A Grammar must be usable for repeated parses of the same document, one at
// a time. The engine never calls into it concurrently for a single [Parser].
type Grammar interface {
	// Tokenize splits text into a token sequence covering every byte, in
	// order. It returns an error (a lex error) if some substring cannot be
	// classified; it must not return a partial token list.
	Tokenize(text string) ([]*token.Token, error)

	// EOF returns the designated end-of-input token value. It is yielded by
	// a [Session] once the token stream is exhausted and never appears in
	// the tree.
	EOF() *token.Token

	// Parse runs the grammar's recursive descent over the session's token
	// stream and returns the root of the new concrete tree. The returned
	// tree must cover the session's entire source.
	//
	// The procedure should query [Session.TryReuse] at each potential
	// subtree boundary before descending, and report recoverable issues via
	// [Session.Errorf]: on malformed input it emits an error-placeholder
	// node plus a diagnostic and continues, it never fails.
	Parse(s *Session) *syntax.Node
}

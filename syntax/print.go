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

package syntax

import (
	"fmt"
	"strings"

	"github.com/syntree/syntree/token"
)

// KindNamer maps a kind to a human-readable name; grammars provide one so
// that rendered trees use their vocabulary. A nil KindNamer falls back to
// [token.Kind.String].
type KindNamer func(token.Kind) string

// String renders the compact form, Kind@[start,end). This is the form meant
// for logs; use [Dump] for a structural rendering.
func (p *PositionedNode) String() string {
	return fmt.Sprintf("%v@%v", p.Kind(), p.Span())
}

// String renders the compact form, Kind@[start,end).
func (p *PositionedToken) String() string {
	return fmt.Sprintf("%v@%v", p.Kind(), p.Span())
}

// Dump renders the structural form of an element and all of its
// descendants: one line per element with kind, offsets, and, for leaves,
// the token text. The structural form is for test assertions and debugging
// tooling, not for the parse algorithm itself.
func Dump(p Positioned, namer KindNamer) string {
	if namer == nil {
		namer = token.Kind.String
	}
	var out strings.Builder
	dump(&out, p, namer, 0)
	return out.String()
}

func dump(out *strings.Builder, p Positioned, namer KindNamer, depth int) {
	fmt.Fprintf(out, "%*s", depth*2, "")
	switch p := p.(type) {
	case *PositionedNode:
		fmt.Fprintf(out, "%s@%v\n", namer(p.Kind()), p.Span())
		for child := range p.AllChildren() {
			dump(out, child, namer, depth+1)
		}
	case *PositionedToken:
		fmt.Fprintf(out, "%s@%v %q\n", namer(p.Kind()), p.Span(), p.Text())
	}
}

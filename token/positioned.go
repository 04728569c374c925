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

	"github.com/syntree/syntree/report"
)

// Positioned pairs a token with its absolute byte offset in the source.
//
// The zero value is "no token"; see [Positioned.IsZero].
type Positioned struct {
	Token  *Token
	Offset int
}

// IsZero returns whether this is the zero Positioned.
func (p Positioned) IsZero() bool {
	return p.Token == nil
}

// Kind returns the kind of the underlying token, or [None] for the zero
// Positioned.
func (p Positioned) Kind() Kind {
	if p.Token == nil {
		return None
	}
	return p.Token.Kind()
}

// End returns the offset one past the last byte of this token.
func (p Positioned) End() int {
	if p.Token == nil {
		return p.Offset
	}
	return p.Offset + p.Token.TextLen()
}

// Span implements [report.Spanner].
func (p Positioned) Span() report.Span {
	return report.Span{Start: p.Offset, End: p.End()}
}

// String implements [fmt.Stringer].
func (p Positioned) String() string {
	if p.Token == nil {
		return "<zero>"
	}
	return fmt.Sprintf("%v@%v", p.Token, p.Span())
}

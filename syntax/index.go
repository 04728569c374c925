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
	"github.com/syntree/syntree/internal/interval"
	"github.com/syntree/syntree/token"
)

// Index accelerates repeated point queries against one finished tree: it
// maps every leaf token's byte range to the token in a single walk, so
// tooling that issues many offset lookups per tree does not re-descend for
// each one.
//
// An Index is a snapshot. It does not observe later edits; build a new one
// from the new tree's root.
type Index struct {
	leaves interval.Map[int, token.Positioned]
}

// NewIndex builds an index over every leaf token under root.
func NewIndex(root *PositionedNode) *Index {
	ix := new(Index)
	ix.add(root)
	return ix
}

func (ix *Index) add(p *PositionedNode) {
	for child := range p.AllChildren() {
		switch child := child.(type) {
		case *PositionedNode:
			ix.add(child)
		case *PositionedToken:
			if child.Start() == child.End() {
				continue
			}
			ix.leaves.Insert(child.Start(), child.End()-1, token.Positioned{
				Token:  child.Token(),
				Offset: child.Start(),
			})
		}
	}
}

// TokenAt returns the leaf token whose range contains offset.
func (ix *Index) TokenAt(offset int) (token.Positioned, bool) {
	found := ix.leaves.Get(offset)
	if found.Value == nil {
		return token.Positioned{}, false
	}
	return *found.Value, true
}

// Len returns the number of indexed leaf tokens.
func (ix *Index) Len() int {
	return ix.leaves.Len()
}

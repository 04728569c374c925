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

package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syntree/syntree/edit"
)

func TestEditDerivedFields(t *testing.T) {
	t.Parallel()

	e := edit.Edit{Start: 5, OldLen: 3, NewLen: 5}
	assert.Equal(t, 8, e.OldEnd())
	assert.Equal(t, 10, e.NewEnd())
	assert.Equal(t, 2, e.Delta())
	assert.Equal(t, "{5 -3 +5}", e.String())
}

func TestEditValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, edit.Edit{Start: 0, OldLen: 0, NewLen: 0}.Validate(0))
	assert.NoError(t, edit.Edit{Start: 3, OldLen: 2, NewLen: 9}.Validate(5))

	assert.Error(t, edit.Edit{Start: 4, OldLen: 2}.Validate(5))
	assert.Error(t, edit.Edit{Start: 6}.Validate(5))
	assert.Error(t, edit.Edit{Start: -1, OldLen: 1}.Validate(5))
	assert.Error(t, edit.Edit{Start: 0, OldLen: -1}.Validate(5))
	assert.Error(t, edit.Edit{Start: 0, NewLen: -1}.Validate(5))
}

func TestTextEditApply(t *testing.T) {
	t.Parallel()

	te := edit.TextEdit{
		Edit: edit.Edit{Start: 5, OldLen: 1, NewLen: 2},
		Text: ", ",
	}
	assert.Equal(t, "hello, world", te.Apply("hello world"))

	assert.Panics(t, func() {
		bad := edit.TextEdit{Edit: edit.Edit{Start: 0, OldLen: 0, NewLen: 3}, Text: "xy"}
		bad.Apply("abc")
	})
}

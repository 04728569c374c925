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

package report

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Renderer renders diagnostics against the source text they refer to.
//
// The zero value renders plain text; set Colorize for ANSI color output.
type Renderer struct {
	Colorize bool
}

// Render renders every diagnostic in r against source and returns the result.
func (rn Renderer) Render(source string, r *Report) string {
	var out strings.Builder
	for i, d := range r.Diagnostics() {
		if i > 0 {
			out.WriteByte('\n')
		}
		rn.renderOne(&out, source, d)
	}
	return out.String()
}

func (rn Renderer) renderOne(out *strings.Builder, source string, d *Diagnostic) {
	line, col, text := locate(source, d.Span().Start)

	fmt.Fprintf(out, "%s%v: %s%s\n", rn.color(d.Level()), d.Level(), d.Message(), rn.reset())
	fmt.Fprintf(out, "  --> %d:%d\n", line, col)

	gutter := len(fmt.Sprint(line))
	fmt.Fprintf(out, " %*s |\n", gutter, "")
	fmt.Fprintf(out, " %*d | %s\n", gutter, line, strings.TrimRight(text, "\n"))

	// Underline the spanned bytes. Display widths, not byte counts: the
	// caret must line up under multi-byte and wide characters.
	lineStart := d.Span().Start - (col - 1)
	prefix := uniseg.StringWidth(source[lineStart:d.Span().Start])
	spanEnd := min(d.Span().End, lineStart+len(text))
	width := uniseg.StringWidth(strings.TrimRight(source[d.Span().Start:spanEnd], "\n"))
	width = max(width, 1)
	fmt.Fprintf(out, " %*s | %s%s%s%s\n",
		gutter, "",
		strings.Repeat(" ", prefix),
		rn.color(d.Level()), strings.Repeat("^", width), rn.reset())

	for _, note := range d.Notes() {
		fmt.Fprintf(out, " %*s = note: %s\n", gutter, "", note)
	}
}

// locate returns the 1-based line and byte column of offset within source,
// along with the text of that line.
func locate(source string, offset int) (line, col int, text string) {
	offset = min(offset, len(source))
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += lineStart + 1
	}
	return line, offset - lineStart + 1, source[lineStart:lineEnd]
}

func (rn Renderer) color(l Level) string {
	if !rn.Colorize {
		return ""
	}
	switch l {
	case Error:
		return "\033[1;91m"
	case Warning:
		return "\033[1;93m"
	default:
		return "\033[1;96m"
	}
}

func (rn Renderer) reset() string {
	if !rn.Colorize {
		return ""
	}
	return "\033[0m"
}

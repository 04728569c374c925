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

// Package golden provides a file-system-driven golden test harness: each
// test case is a file under a testdata root, and its expected outputs live
// next to it with extra extensions.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a collection of golden test cases on disk.
type Corpus struct {
	// Root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// Environment variable consulted for refresh mode. When set, its value
	// is a glob of test names whose expected outputs are rewritten in place
	// instead of compared.
	Refresh string

	// File extension (without the dot) of files that define a test case.
	Extension string

	// Extensions of the expected outputs, suffixed to the test case's file
	// name. A missing output file is treated as expecting empty output.
	Outputs []string
}

// Run executes test once per corpus file. The test function fills in
// outputs, one string per entry in c.Outputs, which are then compared
// against (or, in refresh mode, written to) the golden files.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	root := filepath.Join(callerDir(), c.Root)

	var cases []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("golden: error while walking testdata:", err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob %q in $%s", refresh, c.Refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing expectations because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, p := range cases {
		name, _ := filepath.Rel(root, p)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(p)
			if err != nil {
				t.Fatalf("golden: error while loading input %q: %v", p, err)
			}

			outputs := make([]string, len(c.Outputs))
			test(t, name, string(text), outputs)

			refreshThis, _ := doublestar.Match(refresh, name)
			for i, ext := range c.Outputs {
				goldenPath := fmt.Sprint(p, ".", ext)
				if refreshThis {
					c.refresh(t, goldenPath, outputs[i])
					continue
				}

				want, err := os.ReadFile(goldenPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: error while loading output %q: %v", goldenPath, err)
					continue
				}
				if diff := diff(outputs[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", goldenPath, diff)
				}
			}
		})
	}
}

func (c Corpus) refresh(t *testing.T, goldenPath, output string) {
	if output == "" {
		if err := os.Remove(goldenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("golden: error while deleting output %q: %v", goldenPath, err)
		}
		return
	}
	if err := os.WriteFile(goldenPath, []byte(output), 0o660); err != nil {
		t.Errorf("golden: error while writing output %q: %v", goldenPath, err)
	}
}

func diff(got, want string) string {
	if got == want {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

// callerDir returns the directory of the test file that called into this
// package.
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}

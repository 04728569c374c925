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

// Package main is the entry point for the syntree CLI, a workbench for
// inspecting the tree engine with the built-in s-expression grammar.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syntree/syntree/edit"
	"github.com/syntree/syntree/internal/sexp"
	"github.com/syntree/syntree/parser"
	"github.com/syntree/syntree/report"
	"github.com/syntree/syntree/syntax"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}

func logger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
}

func newRootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "syntree",
		Short:         "Inspect incremental parses of s-expression files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newParseCommand(&verbose))
	root.AddCommand(newTokensCommand())
	root.AddCommand(newEditCommand(&verbose))
	return root
}

func newParseCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			p := parser.New(sexp.New())
			var r report.Report
			tree, err := p.Parse(string(text), &r)
			if err != nil {
				return err
			}
			if *verbose {
				lg := logger()
				lg.SetLevel(log.DebugLevel)
				lg.Debug("parsed", "bytes", tree.TextLen(), "diagnostics", r.Len())
			}

			fmt.Fprint(cmd.OutOrStdout(), syntax.Dump(syntax.Root(tree), sexp.KindName))
			printDiagnostics(cmd, string(text), &r)
			return nil
		},
	}
}

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a file and print its token list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			toks, err := sexp.New().Tokenize(string(text))
			if err != nil {
				return err
			}
			offset := 0
			for _, tok := range toks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t[%d,%d)\t%q\n",
					sexp.KindName(tok.Kind()), offset, offset+tok.TextLen(), tok.Text())
				offset += tok.TextLen()
			}
			return nil
		},
	}
}

// editScript is the YAML shape consumed by the edit subcommand: a sequence
// of replacements applied in order, each against the already-edited text.
type editScript struct {
	Edits []struct {
		Start  int    `yaml:"start"`
		OldLen int    `yaml:"old_len"`
		Text   string `yaml:"text"`
	} `yaml:"edits"`
}

func newEditCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file> <script.yaml>",
		Short: "Apply an edit script incrementally and dump the final tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			scriptText, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var script editScript
			if err := yaml.Unmarshal(scriptText, &script); err != nil {
				return fmt.Errorf("bad edit script: %w", err)
			}

			lg := logger()
			if *verbose {
				lg.SetLevel(log.DebugLevel)
			}

			p := parser.New(sexp.New())
			var r report.Report
			if _, err := p.Parse(string(text), &r); err != nil {
				return err
			}

			source := string(text)
			for i, step := range script.Edits {
				te := edit.TextEdit{
					Edit: edit.Edit{Start: step.Start, OldLen: step.OldLen, NewLen: len(step.Text)},
					Text: step.Text,
				}
				if err := te.Validate(len(source)); err != nil {
					return err
				}
				source = te.Apply(source)

				r = report.Report{}
				if _, err := p.Edit(te.Edit, source, &r); err != nil {
					return err
				}
				stats := p.Stats()
				lg.Debug("applied edit",
					"step", i,
					"edit", te.Edit.String(),
					"relexed", stats.RelexWindow.String(),
					"reused", stats.ReusedNodes)
			}

			fmt.Fprint(cmd.OutOrStdout(), syntax.Dump(p.Root(), sexp.KindName))
			printDiagnostics(cmd, source, &r)
			return nil
		},
	}
}

func printDiagnostics(cmd *cobra.Command, source string, r *report.Report) {
	if r.Len() == 0 {
		return
	}
	r.Sort()
	fmt.Fprint(cmd.ErrOrStderr(), report.Renderer{}.Render(source, r))
}

// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/rewrite"
	"fillmore-labs.com/clonecapture/syntax"
)

// errPrintedError indicates error messages have been printed to stderr.
var errPrintedError = errors.New("terminating because of errors")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clonecapture",
		Short: "clonecapture duplicates values captured by move closures",
		Long: `clonecapture rewrites Rust functions so that every move closure and
async move block captures clones of the outer bindings it uses, leaving
the originals usable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRewriteCmd())

	return cmd
}

type rewriteCmd struct {
	behavior     config.Behavior
	exemptPrefix string
	write        bool
}

func newRewriteCmd() *cobra.Command {
	c := &rewriteCmd{
		behavior:     config.DefaultBehavior(),
		exemptPrefix: config.DefaultExemptPrefix,
	}

	cmd := &cobra.Command{
		Use:   "rewrite [flags] [file.rs ...]",
		Short: "rewrite Rust source files",
		Long: `rewrite rewrites functions annotated with #[clone_on_capture], or all
functions with --all. Without files, standard input is rewritten to
standard output.`,
		RunE: c.run,
	}

	fs := cmd.Flags()
	boolVar(fs, &c.behavior, config.RewriteAll, "all", "rewrite every function, not only annotated ones")
	boolVar(fs, &c.behavior, config.Trace, "trace", "trace visited nodes and captured names to stderr")
	boolVar(fs, &c.behavior, config.BindParams, "params", "duplicate captured function parameters")
	boolVar(fs, &c.behavior, config.FormatArgs, "format-args", "count inline format arguments as usages")
	fs.StringVar(&c.exemptPrefix, "exempt-prefix", c.exemptPrefix, "never duplicate bindings starting with this prefix")
	fs.BoolVarP(&c.write, "write", "w", false, "write result to the source file instead of standard output")

	return cmd
}

func (c *rewriteCmd) run(cmd *cobra.Command, args []string) error {
	settings := settingsFromFlags(cmd.Flags(), c.behavior, c.exemptPrefix)

	opts := rewrite.Options(settings.Options())
	opts = append(opts, rewrite.WithTraceOutput(cmd.ErrOrStderr()))
	r := rewrite.New(opts)

	if len(args) == 0 {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}

		out, ok := c.process(cmd, r, "<stdin>", src)
		if !ok {
			return errPrintedError
		}

		_, err = cmd.OutOrStdout().Write(out)

		return err
	}

	failed := false

	for _, file := range args {
		if err := c.file(cmd, r, file); err != nil {
			if !errors.Is(err, errPrintedError) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file, err)
			}

			failed = true
		}
	}

	if failed {
		return errPrintedError
	}

	return nil
}

func (c *rewriteCmd) file(cmd *cobra.Command, r *rewrite.Rewriter, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	out, ok := c.process(cmd, r, file, src)
	if !ok {
		return errPrintedError
	}

	if !c.write {
		_, err := cmd.OutOrStdout().Write(out)

		return err
	}

	if bytes.Equal(src, out) {
		return nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	return os.WriteFile(file, out, info.Mode().Perm())
}

// process rewrites a single source file, reporting errors as file:line:col: message.
func (c *rewriteCmd) process(cmd *cobra.Command, r *rewrite.Rewriter, name string, src []byte) ([]byte, bool) {
	stderr := cmd.ErrOrStderr()

	f, err := syntax.ParseFile(src)
	if err != nil {
		fmt.Fprintf(stderr, "%s:%v\n", name, err)

		return nil, false
	}

	rewritten, err := r.File(cmd.Context(), f)
	if err != nil {
		for _, e := range flatten(err) {
			fmt.Fprintf(stderr, "%s:%v\n", name, e)
		}

		return nil, false
	}

	out, err := syntax.Format(rewritten)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)

		return nil, false
	}

	return out, true
}

// flatten returns the errors joined by [errors.Join].
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}

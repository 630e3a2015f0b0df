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

// Package testsource provides utilities for parsing Rust source fragments in tests.
//
// It is designed to simplify testing of the capture rewriter by handling the
// boilerplate of wrapping statement lists in a function.
package testsource

import (
	"strings"
	"testing"

	"fillmore-labs.com/clonecapture/syntax"
)

// Parse parses a source fragment into a syntax tree.
// The provided source `src` is wrapped in a function body `fn test() { ... }`,
// so statement-level fragments can be tested without writing the surrounding
// function.
//
// Returns:
//   - *syntax.File: The parsed file holding the single function.
//   - *syntax.FnItem: The function wrapping the source code.
func Parse(tb testing.TB, src string) (*syntax.File, *syntax.FnItem) {
	tb.Helper()

	return ParseFunc(tb, wrapSource(src))
}

// ParseFunc parses the source of a complete function and returns it.
func ParseFunc(tb testing.TB, src string) (*syntax.File, *syntax.FnItem) {
	tb.Helper()

	f, err := syntax.ParseFile([]byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	fn := firstFn(f)
	if fn == nil {
		tb.Fatal("Can't find function")
	}

	return f, fn
}

// Format renders a node, failing the test on error.
func Format(tb testing.TB, node any) string {
	tb.Helper()

	b, err := syntax.Format(node)
	if err != nil {
		tb.Fatalf("Can't format %T: %v", node, err)
	}

	return string(b)
}

func wrapSource(src string) string {
	const (
		header     = "fn test() {\n"
		suffix     = "\n}\n"
		wrapperLen = len(header) + len(suffix)
	)

	var b strings.Builder
	b.Grow(wrapperLen + len(src))

	b.WriteString(header) // ignore error
	b.WriteString(src)    // ignore error
	b.WriteString(suffix) // ignore error

	return b.String()
}

func firstFn(f *syntax.File) *syntax.FnItem {
	for _, it := range f.Items {
		if fn, ok := it.(*syntax.FnItem); ok {
			return fn
		}
	}

	return nil
}

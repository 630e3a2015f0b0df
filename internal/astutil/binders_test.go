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

package astutil_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/clonecapture/internal/astutil"
	"fillmore-labs.com/clonecapture/syntax"
)

func TestBoundNames(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want []string
	}{
		{"ident", "let a = x;", []string{"a"}},
		{"typed", "let a: String = x;", []string{"a"}},
		{"mut", "let mut a = x;", nil},
		{"ref", "let ref a = x;", []string{"a"}},
		{"exempt", "let dc_a = x;", nil},
		{"tuple", "let (a, mut b, dc_c, d) = x;", []string{"a", "d"}},
		{"tuple_rest", "let (a, ..) = x;", []string{"a"}},
		{"tuple_struct", "let Some(a) = x else { return };", []string{"a"}},
		{"struct", "let Point { x, y: b, mut z, .. } = p;", []string{"x", "b"}},
		{"nested", "let (Wrapper(a), Point { y: (b, c), .. }) = v;", []string{"a", "b", "c"}},
		{"at", "let a @ Some(b) = x else { return };", []string{"a", "b"}},
		{"mut_at", "let mut a @ Some(b) = x else { return };", []string{"b"}},
		{"wild", "let _ = x;", nil},
		{"reference", "let &a = x;", nil},
		{"slice", "let [a, b] = x;", nil},
		{"or", "let (Ok(a) | Err(a)) = x;", nil},
		{"bare_ident", "let None = x else { return };", []string{"None"}},
	}

	exempt := func(name string) bool { return strings.HasPrefix(name, "dc_") }

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stmts, err := syntax.ParseStmts(tt.src)
			if err != nil {
				t.Fatalf("Can't parse %q: %v", tt.src, err)
			}

			local, ok := stmts[0].(*syntax.LocalStmt)
			if !ok {
				t.Fatalf("Expected *syntax.LocalStmt, got %T", stmts[0])
			}

			got := slices.Collect(BoundNames(local.Pat, exempt))
			if !slices.Equal(got, tt.want) {
				t.Errorf("BoundNames(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestBoundNamesStop(t *testing.T) {
	t.Parallel()

	stmts, err := syntax.ParseStmts("let (a, (b, c), d) = x;")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for name := range BoundNames(stmts[0].(*syntax.LocalStmt).Pat, nil) {
		got = append(got, name)
		if name == "b" {
			break
		}
	}

	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInternalError(t *testing.T) {
	t.Parallel()

	errTest := errors.New("test error")
	err := InternalError(syntax.Pos{Offset: 4, Line: 1, Column: 5}, "ClosureExpr", "broken: %w", errTest)

	if !errors.Is(err, errTest) {
		t.Errorf("errors.Is(%v, %v) = false", err, errTest)
	}

	var nodeErr *NodeError
	if !errors.As(err, &nodeErr) || nodeErr.Pos.Line != 1 {
		t.Fatalf("Expected *NodeError at line 1, got %#v", err)
	}

	if got, want := err.Error(), "Internal Error: ClosureExpr: broken: test error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

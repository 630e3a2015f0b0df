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

package fix_test

import (
	"errors"
	"maps"
	"slices"
	"testing"

	. "fillmore-labs.com/clonecapture/internal/fix"
	"fillmore-labs.com/clonecapture/syntax"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name     string
		names    []string
		boundary string
		want     string
	}{
		{
			name:     "empty",
			boundary: "move || a",
			want:     "move || a",
		},
		{
			name:     "sorted",
			names:    []string{"b", "a"},
			boundary: "move || (a, b)",
			want: `{
    let a = a.clone();
    let b = b.clone();
    move || (a, b)
}`,
		},
		{
			name:     "async",
			names:    []string{"r#type"},
			boundary: "async move { r#type }",
			want: `{
    let r#type = r#type.clone();
    async move {
        r#type
    }
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			boundary, err := syntax.ParseExpr(tt.boundary)
			if err != nil {
				t.Fatalf("Can't parse %q: %v", tt.boundary, err)
			}

			x, err := Wrap(slices.Values(tt.names), boundary)
			if err != nil {
				t.Fatalf("Wrap() = %v", err)
			}

			got, err := syntax.Format(x)
			if err != nil {
				t.Fatal(err)
			}

			if string(got) != tt.want {
				t.Errorf("Wrap() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWrapUnchanged(t *testing.T) {
	t.Parallel()

	boundary := &syntax.ClosureExpr{Move: true, Body: &syntax.TupleExpr{}}

	x, err := Wrap(maps.Keys(map[string]struct{}{}), boundary)
	if err != nil {
		t.Fatal(err)
	}

	if x != syntax.Expr(boundary) {
		t.Errorf("Wrap() = %#v, want the boundary itself", x)
	}
}

func TestWrapInvalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "_", "a-b", "1a", "a b"} {
		boundary := &syntax.ClosureExpr{Move: true, Body: &syntax.TupleExpr{}}

		if _, err := Wrap(slices.Values([]string{"ok", name}), boundary); !errors.Is(err, ErrSynthesis) {
			t.Errorf("Wrap(%q) = %v, want %v", name, err, ErrSynthesis)
		}
	}
}

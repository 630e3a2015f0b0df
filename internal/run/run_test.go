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

package run_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/clonecapture/internal/config"
	. "fillmore-labs.com/clonecapture/internal/run"
	"fillmore-labs.com/clonecapture/internal/testsource"
	"fillmore-labs.com/clonecapture/internal/usage"
	"fillmore-labs.com/clonecapture/syntax"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{
			name: "scenario_root_variable",
			src: `fn test() {
    let a = String::from("a");
    let c = move || a;
    println!("{}", a);
}`,
			want: `fn test() {
    let a = String::from("a");
    let c = { let a = a.clone(); move || a };
    println!("{}", a);
}`,
		},
		{
			name: "scenario_exempt",
			src: `fn test() {
    let dc_a = String::from("a");
    let c = move || dc_a;
}`,
		},
		{
			name: "scenario_no_references",
			src: `fn test() {
    let c = move || None::<String>;
}`,
		},
		{
			name: "scenario_iterator",
			src: `fn test(arr: Vec<String>) -> usize {
    arr.into_iter().map(|x| {
        let _a = move || x;
        let _b = x;
    }).count()
}`,
			want: `fn test(arr: Vec<String>) -> usize {
    arr.into_iter().map(|x| {
        let _a = { let x = x.clone(); move || x };
        let _b = x;
    }).count()
}`,
		},
		{
			name: "param_moved",
			src: `pub fn spawn(name: String) {
    std::thread::spawn(move || println!("{name}"));
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, fn := testsource.ParseFunc(t, tt.src)
			before := testsource.Format(t, fn)

			got, err := DefaultOptions().Run(t.Context(), fn)
			if err != nil {
				t.Fatalf("Run() = %v", err)
			}

			want := tt.src
			if tt.want != "" {
				want = tt.want
			}

			_, wantFn := testsource.ParseFunc(t, want)
			if diff := cmp.Diff(testsource.Format(t, wantFn), testsource.Format(t, got)); diff != "" {
				t.Errorf("Run() mismatch (-want +got):\n%s", diff)
			}

			if after := testsource.Format(t, fn); after != before {
				t.Error("Run() modified its input")
			}
		})
	}
}

type unknownExpr struct{ syntax.Expr }

func (unknownExpr) Pos() syntax.Pos { return syntax.Pos{Offset: 20, Line: 2, Column: 5} }

func TestRunError(t *testing.T) {
	t.Parallel()

	fn := &syntax.FnItem{
		Start: syntax.Pos{Line: 1, Column: 1},
		Name:  "broken",
		Body:  &syntax.Block{Stmts: []syntax.Stmt{&syntax.ExprStmt{X: unknownExpr{}}}},
	}

	got, err := DefaultOptions().Run(t.Context(), fn)
	if got != nil {
		t.Error("Run() returned a partial tree")
	}

	var runErr *Error
	if !errors.As(err, &runErr) {
		t.Fatalf("Run() = %v, want *run.Error", err)
	}

	if runErr.Func != "broken" || runErr.Pos.Line != 2 || runErr.Pos.Column != 5 {
		t.Errorf("Run() = %#v, want error in broken at 2:5", runErr)
	}

	if !errors.Is(err, usage.ErrUnhandled) {
		t.Errorf("Run() = %v, want %v", err, usage.ErrUnhandled)
	}

	if !strings.HasPrefix(err.Error(), "2:5: fn broken: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRunNoBody(t *testing.T) {
	t.Parallel()

	_, err := DefaultOptions().Run(t.Context(), &syntax.FnItem{Name: "decl"})
	if !errors.Is(err, ErrNoBody) {
		t.Errorf("Run() = %v, want %v", err, ErrNoBody)
	}
}

func TestRunBindParams(t *testing.T) {
	t.Parallel()

	const src = `pub fn spawn(name: String) {
    std::thread::spawn(move || println!("{name}"));
    drop(name);
}`

	opts := DefaultOptions()
	opts.Behavior.Enable(config.BindParams)

	_, fn := testsource.ParseFunc(t, src)

	got, err := opts.Run(t.Context(), fn)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	_, wantFn := testsource.ParseFunc(t, `pub fn spawn(name: String) {
    std::thread::spawn({ let name = name.clone(); move || println!("{name}") });
    drop(name);
}`)
	if diff := cmp.Diff(testsource.Format(t, wantFn), testsource.Format(t, got)); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTrace(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name  string
		trace bool
	}{
		{"enabled", true},
		{"disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			opts := DefaultOptions()
			opts.Behavior.Set(config.Trace, tt.trace)
			opts.TraceOutput = &buf

			_, fn := testsource.Parse(t, "let a = 1;\nlet c = move || a;")
			if _, err := opts.Run(t.Context(), fn); err != nil {
				t.Fatal(err)
			}

			if got := strings.Contains(buf.String(), "fn=test"); got != tt.trace {
				t.Errorf("trace output present = %t, want %t:\n%s", got, tt.trace, buf.String())
			}
		})
	}
}

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

package usage_test

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/internal/testsource"
	. "fillmore-labs.com/clonecapture/internal/usage"
	"fillmore-labs.com/clonecapture/syntax"
)

func defaultStage() Stage {
	return Stage{Exempt: config.DefaultExempt(), Behavior: config.DefaultBehavior()}
}

func rewriteFn(t *testing.T, stage Stage, fn *syntax.FnItem) string {
	t.Helper()

	body, err := stage.Rewrite(t.Context(), fn)
	if err != nil {
		t.Fatalf("Rewrite() = %v", err)
	}

	r := *fn
	r.Body = body

	return testsource.Format(t, &r)
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string // empty: unchanged
	}{
		{
			name: "root_variable",
			src: `let a = String::new();
let c = move || a.len();
let n = a.len();`,
			want: `let a = String::new();
let c = { let a = a.clone(); move || a.len() };
let n = a.len();`,
		},
		{
			name: "exempt_prefix",
			src: `let dc_a = String::new();
let c = move || dc_a.len();`,
		},
		{
			name: "no_references",
			src:  `let c = move || None::<u32>;`,
		},
		{
			name: "mutable",
			src: `let mut m = Vec::new();
let c = move || m.len();`,
		},
		{
			name: "non_move",
			src: `let a = 1;
let c = || a;`,
		},
		{
			name: "iterator_param",
			src: `let v: Vec<String> = Vec::new();
let r = v.into_iter().map(|x| {
    let _a = move || x;
    let _b = x;
});`,
			want: `let v: Vec<String> = Vec::new();
let r = v.into_iter().map(|x| {
    let _a = { let x = x.clone(); move || x };
    let _b = x;
});`,
		},
		{
			name: "nested_boundaries",
			src: `let a = 1;
let c = move || {
    let d = move || a;
    d
};`,
			want: `let a = 1;
let c = {
    let a = a.clone();
    move || {
        let d = { let a = a.clone(); move || a };
        d
    }
};`,
		},
		{
			name: "self_binding",
			src: `let x = 1;
let c = move || {
    let x = x;
    x
};`,
			want: `let x = 1;
let c = {
    let x = x.clone();
    move || {
        let x = x;
        x
    }
};`,
		},
		{
			name: "closure_param_shadows",
			src: `let a = 1;
let c = move |a| a;`,
		},
		{
			name: "local_binding",
			src: `let c = move || {
    let b = 1;
    b
};`,
		},
		{
			name: "async_move",
			src: `let s = String::new();
let f = async move { s.len() };`,
			want: `let s = String::new();
let f = { let s = s.clone(); async move { s.len() } };`,
		},
		{
			name: "async_non_move",
			src: `let s = String::new();
let f = async { s.len() };`,
		},
		{
			name: "sorted",
			src: `let b = 1;
let a = 2;
let c = move || (b, a);`,
			want: `let b = 1;
let a = 2;
let c = { let a = a.clone(); let b = b.clone(); move || (b, a) };`,
		},
		{
			name: "macro",
			src: `let a = 1;
let c = move || println!("{}", a);`,
			want: `let a = 1;
let c = { let a = a.clone(); move || println!("{}", a) };`,
		},
		{
			name: "format_args",
			src: `let a = 1;
let w = 4;
let c = move || format!("{a:>w$}");`,
			want: `let a = 1;
let w = 4;
let c = { let a = a.clone(); let w = w.clone(); move || format!("{a:>w$}") };`,
		},
		{
			name: "if_let",
			src: `let o = Some(1);
if let Some(v) = o {
    let c = move || v;
}`,
			want: `let o = Some(1);
if let Some(v) = o {
    let c = { let v = v.clone(); move || v };
}`,
		},
		{
			name: "match_arm",
			src: `match o {
    Some(v) => {
        let c = move || v;
    }
    _ => {}
}`,
			want: `match o {
    Some(v) => {
        let c = { let v = v.clone(); move || v };
    }
    _ => {}
}`,
		},
		{
			name: "for_loop",
			src: `for s in list {
    let c = move || s;
}`,
			want: `for s in list {
    let c = { let s = s.clone(); move || s };
}`,
		},
		{
			name: "struct_shorthand",
			src: `let x = 1;
let c = move || P { x };`,
			want: `let x = 1;
let c = { let x = x.clone(); move || P { x } };`,
		},
		{
			name: "nested_fn",
			src: `let a = 1;
fn inner() {
    let c = move || a;
}`,
		},
		{
			name: "nested_fn_own_bindings",
			src: `fn inner() {
    let b = 1;
    let c = move || b;
}`,
			want: `fn inner() {
    let b = 1;
    let c = { let b = b.clone(); move || b };
}`,
		},
		{
			name: "let_else",
			src: `let Some(v) = o else { return };
let c = move || v;`,
			want: `let Some(v) = o else { return };
let c = { let v = v.clone(); move || v };`,
		},
		{
			name: "qualified_path",
			src: `let a = 1;
let c = move || self::a;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, fn := testsource.Parse(t, tt.src)
			got := rewriteFn(t, defaultStage(), fn)

			want := tt.src
			if tt.want != "" {
				want = tt.want
			}

			_, wantFn := testsource.Parse(t, want)
			if diff := cmp.Diff(testsource.Format(t, wantFn), got); diff != "" {
				t.Errorf("Rewrite() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewriteBehavior(t *testing.T) {
	t.Parallel()

	const src = `fn test(a: String, mut b: String) {
    let c = move || println!("{a}");
    let d = move || b;
}`

	tests := [...]struct {
		name    string
		enable  config.Flags
		disable config.Flags
		want    string
	}{
		{
			name: "defaults",
			want: src,
		},
		{
			name:   "params",
			enable: config.BindParams,
			want: `fn test(a: String, mut b: String) {
    let c = { let a = a.clone(); move || println!("{a}") };
    let d = move || b;
}`,
		},
		{
			name:    "params_no_format_args",
			enable:  config.BindParams,
			disable: config.FormatArgs,
			want:    src,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stage := defaultStage()
			stage.Behavior.Enable(tt.enable)
			stage.Behavior.Disable(tt.disable)

			_, fn := testsource.ParseFunc(t, src)
			got := rewriteFn(t, stage, fn)

			_, wantFn := testsource.ParseFunc(t, tt.want)
			if diff := cmp.Diff(testsource.Format(t, wantFn), got); diff != "" {
				t.Errorf("Rewrite() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewriteDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	_, fn := testsource.Parse(t, `let a = 1;
let c = move || { let d = move || a; d };`)
	before := testsource.Format(t, fn)

	_ = rewriteFn(t, defaultStage(), fn)

	if after := testsource.Format(t, fn); after != before {
		t.Errorf("input modified:\n%s", cmp.Diff(before, after))
	}
}

func TestRewriteWithoutBoundaries(t *testing.T) {
	t.Parallel()

	_, fn := testsource.Parse(t, `let a = vec![1, 2, 3];
let b: u32 = a.iter().map(|x| x * 2).sum();
'outer: loop {
    match b {
        0..=3 if a.len() > 0 => break 'outer,
        n => println!("{n}"),
    }
}
let s = S { a, ..Default::default() };
unsafe { f(&mut s as *mut S) };
while let Some(x) = it.next() {
    continue;
}`)

	got := rewriteFn(t, defaultStage(), fn)
	if diff := cmp.Diff(testsource.Format(t, fn), got); diff != "" {
		t.Errorf("Rewrite() mismatch (-want +got):\n%s", diff)
	}
}

type unknownExpr struct{ syntax.Expr }

func (unknownExpr) Pos() syntax.Pos { return syntax.Pos{Offset: 12, Line: 2, Column: 1} }

func TestRewriteUnhandled(t *testing.T) {
	t.Parallel()

	fn := &syntax.FnItem{
		Name: "test",
		Body: &syntax.Block{Stmts: []syntax.Stmt{&syntax.ExprStmt{X: unknownExpr{}}}},
	}

	body, err := defaultStage().Rewrite(t.Context(), fn)
	if !errors.Is(err, ErrUnhandled) {
		t.Fatalf("Rewrite() = %v, want %v", err, ErrUnhandled)
	}

	if body != nil {
		t.Errorf("Rewrite() returned a partial tree")
	}
}

func TestRewriteTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	stage := defaultStage()
	stage.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, fn := testsource.Parse(t, `let a = 1;
let c = move || a;`)
	_ = rewriteFn(t, stage, fn)

	for _, want := range []string{"msg=visit", "msg=bound", "msg=used", "msg=capture", `scope="move closure"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("trace does not contain %q:\n%s", want, buf.String())
		}
	}
}

var cloned = regexp.MustCompile(`let (\w+) = \w+\.clone\(\);`)

func TestRewriteFormatArgs(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		lit  string
		want []string
	}{
		{`"{a} {b:?}"`, []string{"a", "b"}},
		{`"{} {0} {{a}}"`, nil},
		{`"{:>width$.prec$}"`, []string{"prec", "width"}},
		{`r#"{x}"#`, []string{"x"}},
		{`"{self}"`, nil},
		{`"{a"`, nil},
	}

	for _, tt := range tests {
		src := "let a = 1;\nlet b = 1;\nlet width = 1;\nlet prec = 1;\nlet x = 1;\n" +
			"let c = move || print!(" + tt.lit + ");"

		_, fn := testsource.Parse(t, src)
		got := rewriteFn(t, defaultStage(), fn)

		var names []string
		for _, m := range cloned.FindAllStringSubmatch(got, -1) {
			names = append(names, m[1])
		}

		if diff := cmp.Diff(tt.want, names); diff != "" {
			t.Errorf("duplicated names for %s mismatch (-want +got):\n%s", tt.lit, diff)
		}
	}
}

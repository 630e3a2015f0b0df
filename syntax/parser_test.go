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

package syntax_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	. "fillmore-labs.com/clonecapture/syntax"
)

func TestFormatFile(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{
			name: "closure",
			src:  `fn main() { let a = "a".to_string(); let c = move || { let b = a; b }; c(); }`,
			want: `fn main() {
    let a = "a".to_string();
    let c = move || {
        let b = a;
        b
    };
    c();
}
`,
		},
		{
			name: "match",
			src:  `fn f(x: Option<u32>) -> u32 { match x { Some(v) if v > 1 => v, Some(_) | None => { 0 } } }`,
			want: `fn f(x: Option<u32>) -> u32 {
    match x {
        Some(v) if v > 1 => v,
        Some(_) | None => {
            0
        }
    }
}
`,
		},
		{
			name: "expressions",
			src: `async fn g(&self, (a, b): (u8, u8)) {
    let v: Vec<u8> = vec![a, b];
    let s = S { a, b: 2, ..Default::default() };
    let r = &mut v[0..=1];
    'outer: for (i, x) in v.iter().enumerate() { if i as u8 == *x { break 'outer; } else { continue; } }
    let h = tokio::spawn(async move { s.len() }).await?;
    let n = None::<String>;
    println!("{} {}", a, b);
}`,
			want: `async fn g(&self, (a, b): (u8, u8)) {
    let v: Vec<u8> = vec![a, b];
    let s = S { a, b: 2, ..Default::default() };
    let r = &mut v[0..=1];
    'outer: for (i, x) in v.iter().enumerate() {
        if i as u8 == *x {
            break 'outer;
        } else {
            continue;
        }
    }
    let h = tokio::spawn(async move {
        s.len()
    }).await?;
    let n = None::<String>;
    println!("{} {}", a, b);
}
`,
		},
		{
			name: "items",
			src: `use std::sync::Arc;
#[derive(Clone)]
struct P { x: u8 }
impl P {
    pub fn new() -> Self { P { x: 0 } }
    fn get(&self) -> u8;
}
const N: usize = 3;`,
			want: `use std::sync::Arc;

#[derive(Clone)]
struct P { x: u8 }

impl P {
    pub fn new() -> Self {
        P { x: 0 }
    }

    fn get(&self) -> u8;
}

const N: usize = 3;
`,
		},
		{
			name: "statement_attrs",
			src:  `fn f() { let a = 1; #[rustfmt::skip] foo(a); #[allow(unused)] m!(a); match a { #[cfg(x)] 0 => b, _ => c } }`,
			want: `fn f() {
    let a = 1;
    #[rustfmt::skip]
    foo(a);
    #[allow(unused)]
    m!(a);
    match a {
        #[cfg(x)]
        0 => b,
        _ => c,
    }
}
`,
		},
		{
			name: "comments",
			src: `//! Crate docs.

/// Docs.
#[clone_on_capture]
fn f() {
    // keep me
    let a = 1; // trailing
    /* block */ g(a);
    match a {
        // zero
        0 => {}
        _ => h(), // other
    }
    // end
}

struct S {
    /// field docs
    x: u8,
}
// tail`,
			want: `//! Crate docs.
/// Docs.
#[clone_on_capture]
fn f() {
    // keep me
    let a = 1; // trailing
    /* block */
    g(a);
    match a {
        // zero
        0 => {}
        _ => h(), // other
    }
    // end
}

struct S {
    /// field docs
    x: u8,
}

// tail
`,
		},
		{
			name: "patterns",
			src:  `fn p() { let Point { x, y: ref mut w, .. } = pt; let [first, .., last] = arr; if let Some(n @ 1..=9) | Some(n) = o { } while let (a, &b) = it.next() {} }`,
			want: `fn p() {
    let Point { x, y: ref mut w, .. } = pt;
    let [first, .., last] = arr;
    if let Some(n @ 1..=9) | Some(n) = o {}
    while let (a, &b) = it.next() {}
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := ParseFile([]byte(tt.src))
			qt.Assert(t, qt.IsNil(err))

			got, err := Format(f)
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.Equals(string(got), tt.want))

			// formatted output is a fixpoint
			f2, err := ParseFile(got)
			qt.Assert(t, qt.IsNil(err))

			again, err := Format(f2)
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.Equals(string(again), string(got)))
		})
	}
}

func TestParseFnItem(t *testing.T) {
	t.Parallel()

	f, err := ParseFile([]byte(`#[clone_on_capture(debug)] pub(crate) fn run<T: Clone>(mut a: T, (b, c): (u8, u8)) where T: Send {}`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Items, 1))

	fn, ok := f.Items[0].(*FnItem)
	qt.Assert(t, qt.IsTrue(ok))

	qt.Check(t, qt.Equals(fn.Name, "run"))
	qt.Check(t, qt.Equals(fn.Sig, "pub(crate) fn run<T: Clone>(mut a: T, (b, c): (u8, u8)) where T: Send"))
	qt.Assert(t, qt.HasLen(fn.Attrs, 1))
	qt.Check(t, qt.Equals(fn.Attrs[0].Name, "clone_on_capture"))
	qt.Check(t, qt.Equals(fn.Attrs[0].Args, "debug"))
	qt.Assert(t, qt.HasLen(fn.Params, 2))
	qt.Check(t, qt.Equals(fn.Params[0].Type.Text, "T"))

	_, ok = fn.Params[1].Pat.(*TuplePat)
	qt.Check(t, qt.IsTrue(ok))
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	f, err := ParseFile([]byte(`fn f() {
    foo(a, /* inner */ b); // after
    // before
    bar!(/* kept in the macro */);
}`))
	qt.Assert(t, qt.IsNil(err))

	fn, ok := f.Items[0].(*FnItem)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(fn.Body.Stmts, 2))

	text := func(list []Comment) []string {
		var s []string
		for _, c := range list {
			s = append(s, c.Text)
		}

		return s
	}

	first := CommentsOf(fn.Body.Stmts[0])
	qt.Check(t, qt.HasLen(first.Leading, 0))
	qt.Check(t, qt.DeepEquals(text(first.Trailing), []string{"/* inner */", "// after"}))

	second := CommentsOf(fn.Body.Stmts[1])
	qt.Check(t, qt.DeepEquals(text(second.Leading), []string{"// before"}))
	qt.Check(t, qt.HasLen(second.Trailing, 0))

	got, err := Format(fn)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(string(got), `fn f() {
    foo(a, b); /* inner */ // after
    // before
    bar!(/* kept in the macro */);
}`))
}

func TestParseExpr(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		src  string
		want string
	}{
		{"a + b * c as u8", "a + b * c as u8"},
		{"x = y += 1", "x = y += 1"},
		{"t.0.1", "t.0.1"},
		{"|x: &str, _| x.len()", "|x: &str, _| x.len()"},
		{"move |a| -> u8 { a }", "move |a| -> u8 {\n    a\n}"},
		{"async move { x }.await", "async move {\n    x\n}.await"},
		{"&&mut x", "&&mut x"},
		{"(a,)", "(a,)"},
		{"[0; N]", "[0; N]"},
		{"<T as Default>::default()", "<T as Default>::default()"},
		{"Vec::<Vec<u8>>::new()", "Vec::<Vec<u8>>::new()"},
		{"..", ".."},
		{"x?.y", "x?.y"},
		{"if a { b } else if c { d } else { e }", "if a {\n    b\n} else if c {\n    d\n} else {\n    e\n}"},
	}

	for _, tt := range tests {
		x, err := ParseExpr(tt.src)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("ParseExpr(%q)", tt.src))

		got, err := Format(x)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(string(got), tt.want))
	}
}

func TestPrecedence(t *testing.T) {
	t.Parallel()

	x, err := ParseExpr("a || b && c == d + e * -f as u8")
	qt.Assert(t, qt.IsNil(err))

	or, ok := x.(*BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(or.Op, "||"))

	and, ok := or.Y.(*BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(and.Op, "&&"))

	eq, ok := and.Y.(*BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(eq.Op, "=="))

	add, ok := eq.Y.(*BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(add.Op, "+"))

	mul, ok := add.Y.(*BinaryExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(mul.Op, "*"))

	_, ok = mul.Y.(*CastExpr)
	qt.Check(t, qt.IsTrue(ok))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{"missing_expr", `fn f() { let x = ; }`, `1:18: expected expression, found ";"`},
		{"unclosed_block", `fn f() { x`, `1:11: expected "}", found "end of file"`},
		{"missing_semi", `fn f() { a b }`, `1:12: expected ";" or "}", found "b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseFile([]byte(tt.src))
			qt.Assert(t, qt.ErrorMatches(err, tt.want))
		})
	}
}

func TestFormatParenthesizesBlockOperand(t *testing.T) {
	t.Parallel()

	x := &AwaitExpr{X: &BlockExpr{Block: &Block{}}}

	got, err := Format(x)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(string(got), "({}).await"))
}

func TestFormatUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Format(42)
	qt.Check(t, qt.ErrorMatches(err, `syntax: unsupported node type int`))
}

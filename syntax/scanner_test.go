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

func TestTokenize(t *testing.T) {
	t.Parallel()

	const src = `let r#type = t.0.1 >>= 0x1F_u8; 'outer: loop {} // c
/* a /* nested */ b */ '\n' 1..2 1.5e3`

	type tok struct {
		Kind TokenKind
		Text string
	}

	want := []tok{
		{TokIdent, "let"}, {TokIdent, "r#type"}, {TokPunct, "="}, {TokIdent, "t"},
		{TokPunct, "."}, {TokInt, "0"}, {TokPunct, "."}, {TokInt, "1"},
		{TokPunct, ">>="}, {TokInt, "0x1F_u8"}, {TokPunct, ";"}, {TokLifetime, "'outer"},
		{TokPunct, ":"}, {TokIdent, "loop"}, {TokPunct, "{"}, {TokPunct, "}"},
		{TokChar, `'\n'`}, {TokInt, "1"}, {TokPunct, ".."}, {TokInt, "2"},
		{TokFloat, "1.5e3"}, {TokEOF, ""},
	}

	toks, err := Tokenize([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	got := make([]tok, 0, len(toks))
	for _, t := range toks {
		got = append(got, tok{t.Kind, t.Text})
	}

	qt.Assert(t, qt.DeepEquals(got, want))

	char := toks[16]
	qt.Check(t, qt.Equals(char.Pos.Line, 2))
	qt.Check(t, qt.Equals(char.Pos.Column, 24))
}

func TestTokenizeComments(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize([]byte("a // one\r\n/* two */ b /// three\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(toks, 3))

	qt.Check(t, qt.HasLen(toks[0].Comments, 0))
	qt.Check(t, qt.DeepEquals(toks[1].Comments, []Comment{
		{Pos: Pos{Offset: 2, Line: 1, Column: 3}, Text: "// one", Trailing: true},
		{Pos: Pos{Offset: 10, Line: 2, Column: 1}, Text: "/* two */"},
	}))
	qt.Check(t, qt.DeepEquals(toks[2].Comments, []Comment{
		{Pos: Pos{Offset: 22, Line: 2, Column: 13}, Text: "/// three", Trailing: true},
	}))

	qt.Check(t, qt.IsTrue(toks[1].Comments[0].Line()))
	qt.Check(t, qt.IsFalse(toks[1].Comments[1].Line()))
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{"string", `x = "abc`, `1:5: string literal not terminated`},
		{"comment", "x /* y", `1:3: comment not terminated`},
		{"raw_string", `r#"abc"`, `1:1: raw string literal not terminated`},
		{"illegal", "a §", `1:3: illegal character U\+00A7 '§'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Tokenize([]byte(tt.src))
			qt.Assert(t, qt.ErrorMatches(err, tt.want))

			var serr *Error
			qt.Check(t, qt.ErrorAs(err, &serr))
		})
	}
}

func TestIsIdent(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		want bool
	}{
		{"a", true},
		{"_a1", true},
		{"r#type", true},
		{"ünïcode", true},
		{"", false},
		{"_", false},
		{"type", false},
		{"1a", false},
		{"a-b", false},
		{"a.clone()", false},
	}

	for _, tt := range tests {
		qt.Check(t, qt.Equals(IsIdent(tt.name), tt.want), qt.Commentf("IsIdent(%q)", tt.name))
	}
}

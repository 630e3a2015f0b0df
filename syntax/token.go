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

package syntax

import (
	"fmt"
	"unicode"
)

// Pos is a source position. Line and Column are 1-based, a zero Pos is invalid.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenKind classifies tokens.
type TokenKind uint8

//go:generate go tool stringer -type TokenKind -trimprefix Tok

const (
	TokEOF TokenKind = iota
	TokIdent
	TokLifetime
	TokInt
	TokFloat
	TokStr
	TokChar
	TokPunct
)

// Token is a lexical token. Text is the verbatim source text.
type Token struct {
	Kind     TokenKind
	Text     string
	Pos      Pos
	End      int       // offset after the token
	Comments []Comment // comments between the previous token and this one
}

// Comment is a line or block comment, doc comments included. Text is the
// verbatim source text without the line terminator.
type Comment struct {
	Pos      Pos
	Text     string
	Trailing bool // starts on the line the previous token ends on
}

// Line reports whether c is a // comment, which ends its line.
func (c Comment) Line() bool {
	return len(c.Text) > 1 && c.Text[1] == '/'
}

var keywords = map[string]struct{}{
	// keep-sorted start
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {},
	"crate": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {}, "super": {},
	"trait": {}, "true": {}, "try": {}, "type": {}, "unsafe": {}, "use": {},
	"where": {}, "while": {}, "yield": {},
	// keep-sorted end
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// IsIdent reports whether name is a valid, non-reserved identifier.
// Raw identifiers (r#name) are accepted.
func IsIdent(name string) bool {
	raw := false
	if len(name) > 2 && name[:2] == "r#" {
		name, raw = name[2:], true
	}

	if name == "" || name == "_" {
		return false
	}

	for i, r := range name {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}

	return raw || !IsKeyword(name)
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_', unicode.IsLetter(r):
		return true
	case first:
		return false
	default:
		return unicode.IsDigit(r)
	}
}

func isIdentStart(r rune) bool { return r >= 0 && isIdentRune(r, true) }

func isIdentPart(r rune) bool { return r >= 0 && isIdentRune(r, false) }

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

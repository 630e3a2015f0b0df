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
	"strings"
	"unicode/utf8"
)

// puncts holds multi-character punctuation, longest first when matching.
var puncts = map[string]struct{}{
	// keep-sorted start
	"!=": {}, "%=": {}, "&&": {}, "&=": {}, "*=": {}, "+=": {}, "-=": {}, "->": {},
	"..": {}, "...": {}, "..=": {}, "/=": {}, "::": {}, "<<": {}, "<<=": {}, "<=": {},
	"==": {}, "=>": {}, ">=": {}, ">>": {}, ">>=": {}, "^=": {}, "|=": {}, "||": {},
	// keep-sorted end
}

const singlePuncts = "+-*/%^!&|=<>@.,;:#$?~()[]{}"

// A scanner holds the scanner's internal state while tokenizing source text.
type scanner struct {
	src []byte

	ch         rune // current character, -1 at end of file
	offset     int  // character offset
	rdOffset   int  // reading offset (position after current character)
	line       int  // current line
	lineOffset int  // offset of the current line
	afterDot   bool // previous token was "."
	endLine    int  // line the previous token ends on, 0 before the first token

	comments []Comment // comments before the next token
}

// Tokenize splits src into tokens. The last token is always [TokEOF].
func Tokenize(src []byte) ([]Token, error) {
	var s scanner
	s.init(src)

	var toks []Token
	for {
		tok, err := s.scan()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)

		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (s *scanner) init(src []byte) {
	s.src = src
	s.ch = ' '
	s.offset, s.rdOffset = 0, 0
	s.line, s.lineOffset = 1, 0
	s.afterDot = false
	s.endLine = 0
	s.comments = nil

	s.next()
}

// next reads the next Unicode character into s.ch.
func (s *scanner) next() {
	if s.ch == '\n' {
		s.line++
		s.lineOffset = s.rdOffset
	}

	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		s.ch = -1

		return
	}

	s.offset = s.rdOffset

	r, w := rune(s.src[s.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.rdOffset:])
	}

	s.rdOffset += w
	s.ch = r
}

// peek returns the byte n positions after the current character, or 0.
func (s *scanner) peek(n int) byte {
	if i := s.rdOffset + n; i < len(s.src) {
		return s.src[i]
	}

	return 0
}

func (s *scanner) pos() Pos {
	return Pos{Offset: s.offset, Line: s.line, Column: s.offset - s.lineOffset + 1}
}

func (s *scanner) scan() (Token, error) {
	if err := s.skipSpace(); err != nil {
		return Token{}, err
	}

	pos := s.pos()

	var (
		kind = TokPunct
		err  *Error
	)

	comments := s.comments
	s.comments = nil

	switch ch := s.ch; {
	case ch < 0:
		return Token{Kind: TokEOF, Pos: pos, End: s.offset, Comments: comments}, nil

	case ch == 'r' && (s.peek(0) == '"' || s.peek(0) == '#' && (s.peek(1) == '"' || s.peek(1) == '#')):
		kind, err = TokStr, s.rawString()

	case ch == 'r' && s.peek(0) == '#' && isIdentStart(rune(s.peek(1))):
		s.next()
		s.next()
		kind = TokIdent
		s.ident()

	case (ch == 'b' || ch == 'c') && s.peek(0) == '"':
		s.next()
		kind, err = TokStr, s.string()

	case ch == 'b' && s.peek(0) == 'r' && (s.peek(1) == '"' || s.peek(1) == '#'):
		s.next()
		kind, err = TokStr, s.rawString()

	case ch == 'b' && s.peek(0) == '\'':
		s.next()
		kind, err = TokChar, s.char()

	case isIdentStart(ch):
		kind = TokIdent
		s.ident()

	case isDigit(ch):
		kind = s.number()

	case ch == '"':
		kind, err = TokStr, s.string()

	case ch == '\'':
		kind, err = s.quote()

	default:
		err = s.punct()
	}

	if err != nil {
		return Token{}, err
	}

	text := string(s.src[pos.Offset:s.offset])
	s.afterDot = text == "."
	s.endLine = s.line

	return Token{Kind: kind, Text: text, Pos: pos, End: s.offset, Comments: comments}, nil
}

// comment records the comment starting at pos and ending at the current offset.
func (s *scanner) comment(pos Pos) {
	text := strings.TrimSuffix(string(s.src[pos.Offset:s.offset]), "\r")
	s.comments = append(s.comments, Comment{Pos: pos, Text: text, Trailing: pos.Line == s.endLine})
}

func (s *scanner) skipSpace() *Error {
	for {
		switch {
		case s.ch == ' ', s.ch == '\t', s.ch == '\n', s.ch == '\r':
			s.next()

		case s.ch == '/' && s.peek(0) == '/':
			pos := s.pos()
			for s.ch != '\n' && s.ch >= 0 {
				s.next()
			}

			s.comment(pos)

		case s.ch == '/' && s.peek(0) == '*':
			pos := s.pos()
			s.next()
			s.next()

			for depth := 1; depth > 0; {
				switch {
				case s.ch < 0:
					return errorf(pos, "comment not terminated")

				case s.ch == '*' && s.peek(0) == '/':
					depth--
					s.next()
					s.next()

				case s.ch == '/' && s.peek(0) == '*':
					depth++
					s.next()
					s.next()

				default:
					s.next()
				}
			}

			s.comment(pos)

		default:
			return nil
		}
	}
}

func (s *scanner) ident() {
	for isIdentPart(s.ch) {
		s.next()
	}
}

func (s *scanner) digits(hex bool) {
	for isDigit(s.ch) || s.ch == '_' || hex && isHex(s.ch) {
		s.next()
	}
}

func isHex(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func (s *scanner) number() TokenKind {
	kind := TokInt

	if s.ch == '0' {
		if p := s.peek(0); p == 'x' || p == 'o' || p == 'b' {
			s.next()
			s.next()
			s.digits(p == 'x')
			s.ident() // suffix

			return kind
		}
	}

	s.digits(false)

	// x.0.1 is a nested tuple access, not a float
	if !s.afterDot && s.ch == '.' {
		if p := s.peek(0); p != '.' && !isIdentStart(rune(p)) {
			kind = TokFloat

			s.next()
			s.digits(false)
		}
	}

	if s.ch == 'e' || s.ch == 'E' {
		if p := s.peek(0); isDigit(rune(p)) || (p == '+' || p == '-') && isDigit(rune(s.peek(1))) {
			kind = TokFloat

			s.next()
			if s.ch == '+' || s.ch == '-' {
				s.next()
			}

			s.digits(false)
		}
	}

	s.ident() // suffix like u32 or f64

	return kind
}

func (s *scanner) string() *Error {
	pos := s.pos()
	s.next() // opening quote

	for {
		switch s.ch {
		case -1:
			return errorf(pos, "string literal not terminated")

		case '\\':
			s.next()
			if s.ch >= 0 {
				s.next()
			}

		case '"':
			s.next()
			return nil

		default:
			s.next()
		}
	}
}

func (s *scanner) rawString() *Error {
	pos := s.pos()
	s.next() // 'r'

	hashes := 0
	for s.ch == '#' {
		hashes++
		s.next()
	}

	if s.ch != '"' {
		return errorf(pos, "malformed raw string literal")
	}

	s.next()

	for {
		switch s.ch {
		case -1:
			return errorf(pos, "raw string literal not terminated")

		case '"':
			s.next()

			n := 0
			for n < hashes && s.ch == '#' {
				n++
				s.next()
			}

			if n == hashes {
				return nil
			}

		default:
			s.next()
		}
	}
}

func (s *scanner) char() *Error {
	pos := s.pos()
	s.next() // opening quote

	for s.ch != '\'' {
		if s.ch < 0 || s.ch == '\n' {
			return errorf(pos, "character literal not terminated")
		}

		if s.ch == '\\' {
			s.next()
		}

		s.next()
	}

	s.next()

	return nil
}

// quote scans a character literal or a lifetime.
func (s *scanner) quote() (TokenKind, *Error) {
	if s.peek(0) == '\\' {
		return TokChar, s.char()
	}

	if s.rdOffset < len(s.src) {
		_, w := utf8.DecodeRune(s.src[s.rdOffset:])
		if s.peek(w) == '\'' {
			return TokChar, s.char()
		}
	}

	pos := s.pos()
	s.next()

	if !isIdentStart(s.ch) {
		return TokLifetime, errorf(pos, "malformed lifetime or character literal")
	}

	s.ident()

	return TokLifetime, nil
}

func (s *scanner) punct() *Error {
	rest := s.src[s.offset:]
	for _, n := range [...]int{3, 2} {
		if len(rest) < n {
			continue
		}

		if _, ok := puncts[string(rest[:n])]; ok {
			for range n {
				s.next()
			}

			return nil
		}
	}

	for _, r := range singlePuncts {
		if r == s.ch {
			s.next()
			return nil
		}
	}

	return errorf(s.pos(), "illegal character %#U", s.ch)
}

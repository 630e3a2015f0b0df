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

package rewrite

import (
	"fmt"
	"strings"

	"fillmore-labs.com/clonecapture/syntax"
)

// ParseArgs parses the arguments of a #[clone_on_capture(...)] attribute.
//
// The arguments are a comma-separated list of meta items: a path (`debug`),
// a path with a parenthesized list (`name(...)`) or a name-value pair
// (`name = "value"`). Only the path `debug` has a meaning and enables the
// trace; other well-formed items are ignored.
func ParseArgs(src string) (Options, error) {
	toks, err := syntax.Tokenize([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	a := argParser{toks: toks}

	var opts Options
	for !a.eof() {
		path, ok := a.path()
		if !ok {
			return nil, a.errorf("expected path")
		}

		plain := true

		switch {
		case a.got("("):
			if !a.skipGroup(")") {
				return nil, a.errorf("unbalanced parentheses")
			}

			plain = false

		case a.got("="):
			if !a.literal() {
				return nil, a.errorf("expected literal")
			}

			plain = false
		}

		if plain && strings.EqualFold(path, "debug") {
			opts = append(opts, WithTrace(true))
		}

		if !a.eof() && !a.got(",") {
			return nil, a.errorf("expected \",\"")
		}
	}

	return opts, nil
}

type argParser struct {
	toks []syntax.Token
	idx  int
}

func (a *argParser) tok() syntax.Token { return a.toks[a.idx] }

func (a *argParser) eof() bool { return a.tok().Kind == syntax.TokEOF }

func (a *argParser) next() {
	if !a.eof() {
		a.idx++
	}
}

func (a *argParser) got(punct string) bool {
	if t := a.tok(); t.Kind == syntax.TokPunct && t.Text == punct {
		a.next()

		return true
	}

	return false
}

func (a *argParser) errorf(msg string) error {
	t := a.tok()

	found := t.Text
	if t.Kind == syntax.TokEOF {
		found = "end of input"
	}

	return fmt.Errorf("%w: %s: %s, found %q", ErrConfigParse, t.Pos, msg, found)
}

// path parses a :: separated path and returns its text.
func (a *argParser) path() (string, bool) {
	var b strings.Builder

	if a.got("::") {
		b.WriteString("::")
	}

	for {
		t := a.tok()
		if t.Kind != syntax.TokIdent {
			return "", false
		}

		b.WriteString(t.Text)
		a.next()

		if !a.got("::") {
			return b.String(), true
		}

		b.WriteString("::")
	}
}

func (a *argParser) literal() bool {
	switch t := a.tok(); {
	case t.Kind == syntax.TokStr, t.Kind == syntax.TokChar,
		t.Kind == syntax.TokInt, t.Kind == syntax.TokFloat,
		t.Kind == syntax.TokIdent && (t.Text == "true" || t.Text == "false"):
		a.next()

		return true

	default:
		return false
	}
}

// skipGroup skips to the matching closing delimiter.
func (a *argParser) skipGroup(closing string) bool {
	stack := []string{closing}

	for ; !a.eof(); a.next() {
		t := a.tok()
		if t.Kind != syntax.TokPunct {
			continue
		}

		switch t.Text {
		case "(":
			stack = append(stack, ")")

		case "[":
			stack = append(stack, "]")

		case "{":
			stack = append(stack, "}")

		case ")", "]", "}":
			if stack[len(stack)-1] != t.Text {
				return false
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				a.next()

				return true
			}
		}
	}

	return false
}

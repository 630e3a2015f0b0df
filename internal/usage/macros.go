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

package usage

import (
	"iter"
	"regexp"
	"strings"

	"fillmore-labs.com/clonecapture/syntax"
)

// macro records a usage for every identifier in the macro input. The body of
// a macro is not parsed, so any identifier may be an expression.
func (c *collector) macro(m *syntax.Macro) {
	for name := range macroIdents(m, c.formatArgs) {
		c.use(name)
	}
}

// macroIdents returns the non-keyword identifiers inside the delimiters of m.
// With formatArgs, named arguments inlined in string literals ("{name}",
// "{:>width$}") are included.
func macroIdents(m *syntax.Macro, formatArgs bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range m.Tokens {
			switch tok.Kind {
			case syntax.TokIdent:
				if syntax.IsKeyword(tok.Text) {
					continue
				}

				if !yield(tok.Text) {
					return
				}

			case syntax.TokStr:
				if !formatArgs {
					continue
				}

				for name := range inlineArgs(tok.Text) {
					if !yield(name) {
						return
					}
				}

			default:
			}
		}
	}
}

var countArg = regexp.MustCompile(`([\pL_][\pL\pN_]*)\$`)

// inlineArgs returns the named arguments of a format string literal.
func inlineArgs(lit string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := unquote(lit)

		for {
			i := strings.IndexByte(s, '{')
			if i < 0 {
				return
			}

			s = s[i+1:]
			if strings.HasPrefix(s, "{") { // escaped brace
				s = s[1:]

				continue
			}

			j := strings.IndexByte(s, '}')
			if j < 0 {
				return
			}

			arg, spec, _ := strings.Cut(s[:j], ":")
			s = s[j+1:]

			if arg = strings.TrimSpace(arg); syntax.IsIdent(arg) && !yield(arg) {
				return
			}

			for _, m := range countArg.FindAllStringSubmatch(spec, -1) {
				if syntax.IsIdent(m[1]) && !yield(m[1]) {
					return
				}
			}
		}
	}
}

// unquote returns the contents of a string literal without escapes processed.
func unquote(lit string) string {
	i, j := strings.IndexByte(lit, '"'), strings.LastIndexByte(lit, '"')
	if i < 0 || j <= i {
		return ""
	}

	return lit[i+1 : j]
}

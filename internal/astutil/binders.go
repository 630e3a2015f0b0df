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

package astutil

import (
	"iter"

	"fillmore-labs.com/clonecapture/syntax"
)

// BoundNames returns an iterator over the names a pattern binds for duplication.
//
// Bindings declared mut and names matching exempt are skipped. Only identifier,
// struct, tuple, tuple-struct and type-annotated patterns contribute names;
// alternatives, references, slices and parenthesized patterns contribute none.
func BoundNames(pat syntax.Pat, exempt func(string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		b := binder{exempt: exempt, yield: yield}
		b.pat(pat)
	}
}

type binder struct {
	exempt func(string) bool
	yield  func(string) bool
}

// pat reports whether iteration should continue.
func (b binder) pat(pat syntax.Pat) bool {
	switch p := pat.(type) {
	// keep-sorted start newline_separated=yes
	case *syntax.IdentPat:
		if !p.Mut && !b.exempted(p.Name) && !b.yield(p.Name) {
			return false
		}

		if p.Sub != nil {
			return b.pat(p.Sub)
		}

	case *syntax.StructPat:
		for _, f := range p.Fields {
			if !b.pat(f.Pat) {
				return false
			}
		}

	case *syntax.TuplePat:
		return b.pats(p.Elems)

	case *syntax.TupleStructPat:
		return b.pats(p.Elems)

	case *syntax.TypePat:
		return b.pat(p.Pat)
		// keep-sorted end
	}

	return true
}

func (b binder) pats(pats []syntax.Pat) bool {
	for _, p := range pats {
		if !b.pat(p) {
			return false
		}
	}

	return true
}

func (b binder) exempted(name string) bool {
	return b.exempt != nil && b.exempt(name)
}

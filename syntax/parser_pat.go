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

// ----------------------------------------------------------------------------
// Patterns

// parsePat parses a pattern with or-alternatives and an optional leading '|'.
func (p *parser) parsePat() Pat {
	start := p.tok.Pos
	p.got("|")

	first := p.parsePatNoTop()
	if !p.is("|") {
		return first
	}

	or := &OrPat{Start: start, Cases: []Pat{first}}
	for p.got("|") {
		or.Cases = append(or.Cases, p.parsePatNoTop())
	}

	return or
}

// parsePatNoTop parses a pattern without top-level alternatives.
func (p *parser) parsePatNoTop() Pat {
	start := p.tok.Pos
	t := p.tok

	switch {
	case p.is("_"):
		p.next()
		return &WildPat{Start: start}

	case p.is(".."):
		p.next()
		return &RestPat{Start: start}

	case p.is("..="):
		p.next()
		return &RangePat{Start: start, Hi: p.parseRangeEnd(), Closed: true}

	case p.is("&"), p.is("&&"):
		double := p.is("&&")
		p.next()

		mut := p.got("mut")
		ref := &RefPat{Start: start, Mut: mut, Pat: p.parsePatNoTop()}

		if double {
			inner := Pos{Offset: start.Offset + 1, Line: start.Line, Column: start.Column + 1}
			ref.Start = inner

			return &RefPat{Start: start, Pat: ref}
		}

		return ref

	case p.is("("):
		return p.parseTuplePat()

	case p.is("["):
		p.next()
		elems := p.parsePatList("]")

		return &SlicePat{Start: start, Elems: elems}

	case p.is("-"), t.Kind == TokInt, t.Kind == TokFloat, t.Kind == TokStr, t.Kind == TokChar,
		p.is("true"), p.is("false"):
		return p.parseLitPat()

	case p.is("ref"), p.is("mut"):
		return p.parseIdentPat()

	case t.Kind == TokIdent && isPathIdent(t) && p.isBindingIdent():
		return p.parseIdentPat()

	case isPathIdent(t), p.is("::"), p.is("<"), p.is("<<"):
		return p.parsePathPat()
	}

	p.errorExpected("pattern")

	return nil
}

// isBindingIdent reports whether the current identifier is a binding rather
// than the start of a path pattern.
func (p *parser) isBindingIdent() bool {
	switch t := p.tok.Text; t {
	case "self", "Self", "super", "crate":
		return false
	}

	next := p.peek(1)
	if next.Kind != TokPunct {
		return true
	}

	switch next.Text {
	case "::", "(", "{", "!", "..", "..=", "...":
		return false
	}

	return true
}

func (p *parser) parseIdentPat() Pat {
	id := &IdentPat{Start: p.tok.Pos}

	id.ByRef = p.got("ref")
	id.Mut = p.got("mut")
	id.Name = p.ident()

	if p.got("@") {
		id.Sub = p.parsePatNoTop()
	}

	return id
}

func (p *parser) parseTuplePat() Pat {
	start := p.expect("(")

	var (
		elems []Pat
		comma bool
	)

	for !p.is(")") {
		elems = append(elems, p.parsePat())

		if comma = p.got(","); !comma {
			break
		}
	}

	p.expect(")")

	if len(elems) == 1 && !comma {
		if _, rest := elems[0].(*RestPat); !rest {
			return &ParenPat{Start: start, Pat: elems[0]}
		}
	}

	return &TuplePat{Start: start, Elems: elems}
}

// parsePatList parses comma-separated patterns up to the closing delimiter.
func (p *parser) parsePatList(closing string) []Pat {
	var elems []Pat

	for !p.is(closing) {
		elems = append(elems, p.parsePat())

		if !p.got(",") {
			break
		}
	}

	p.expect(closing)

	return elems
}

func (p *parser) parseLitPat() Pat {
	start := p.tok.Pos
	lo := p.parseLitValue()

	if r := p.parseRangeRest(start, lo); r != nil {
		return r
	}

	return &LitPat{Start: start, X: lo}
}

// parseLitValue parses a possibly negated literal.
func (p *parser) parseLitValue() Expr {
	start := p.tok.Pos

	if p.got("-") {
		return &UnaryExpr{Start: start, Op: "-", X: p.parseLitValue()}
	}

	switch t := p.tok; t.Kind {
	case TokInt, TokFloat, TokStr, TokChar:
		return p.parsePrimary()

	case TokIdent:
		if t.Text == "true" || t.Text == "false" {
			return p.parsePrimary()
		}
	}

	p.errorExpected("literal")

	return nil
}

// parseRangeRest parses the rest of a range pattern after its lower bound,
// or returns nil.
func (p *parser) parseRangeRest(start Pos, lo Expr) Pat {
	if !p.is("..") && !p.is("..=") && !p.is("...") {
		return nil
	}

	closed := !p.is("..")
	p.next()

	return &RangePat{Start: start, Lo: lo, Hi: p.parseRangeEnd(), Closed: closed}
}

// parseRangeEnd parses the optional upper bound of a range pattern.
func (p *parser) parseRangeEnd() Expr {
	switch t := p.tok; {
	case p.is("-"), t.Kind == TokInt, t.Kind == TokFloat, t.Kind == TokChar:
		return p.parseLitValue()

	case isPathIdent(t), p.is("::"):
		return &PathExpr{Path: p.parsePath()}
	}

	return nil
}

func (p *parser) parsePathPat() Pat {
	path := p.parsePath()

	switch {
	case p.is("("):
		p.next()
		return &TupleStructPat{Path: path, Elems: p.parsePatList(")")}

	case p.is("{"):
		return p.parseStructPat(path)

	case p.is("!"):
		p.errorf(p.tok.Pos, "macro invocations in patterns are not supported")
	}

	if r := p.parseRangeRest(path.Start, &PathExpr{Path: path}); r != nil {
		return r
	}

	return &PathPat{Path: path}
}

func (p *parser) parseStructPat(path *Path) Pat {
	p.expect("{")

	s := &StructPat{Path: path}

	for !p.is("}") {
		p.parseAttrs()
		start := p.tok.Pos

		if p.got("..") {
			s.Rest = true
			break
		}

		var f *FieldPat

		switch t := p.tok; {
		case p.is("ref"), p.is("mut"), t.Kind == TokIdent && !isTok(p.peek(1), ":"):
			id := &IdentPat{Start: start}
			id.ByRef = p.got("ref")
			id.Mut = p.got("mut")
			id.Name = p.ident()

			f = &FieldPat{Start: start, Name: id.Name, Pat: id, Shorthand: true}

		case t.Kind == TokIdent, t.Kind == TokInt:
			p.next()
			p.expect(":")

			f = &FieldPat{Start: start, Name: t.Text, Pat: p.parsePat()}

		default:
			p.errorExpected("field pattern")
		}

		s.Fields = append(s.Fields, f)

		if !p.got(",") {
			break
		}
	}

	p.expect("}")

	return s
}

// ----------------------------------------------------------------------------
// Types

// parseType parses a type, including bounds of impl and dyn types.
func (p *parser) parseType() *Type { return p.typeText(true) }

// parseTypeNoBounds parses a type where '+' is not part of the type, as in
// casts and return types of closures.
func (p *parser) parseTypeNoBounds() *Type { return p.typeText(false) }

func (p *parser) typeText(bounds bool) *Type {
	start := p.tok.Pos

	var toks []Token
	stop := p.recordStart(&toks)
	p.typ(bounds)
	stop()

	return &Type{Start: start, Text: joinTokens(toks)}
}

func (p *parser) typ(bounds bool) {
	switch t := p.tok; {
	case p.is("&"), p.is("&&"):
		p.next()

		if p.tok.Kind == TokLifetime {
			p.next()
		}

		p.got("mut")
		p.typ(false)

	case p.is("*"):
		p.next()

		if !p.got("const") {
			p.expect("mut")
		}

		p.typ(false)

	case p.is("("):
		p.next()

		for !p.is(")") {
			p.typ(true)

			if !p.got(",") {
				break
			}
		}

		p.expect(")")

	case p.is("["):
		p.next()
		p.typ(true)

		if p.got(";") {
			for !p.is("]") {
				switch {
				case p.tok.Kind == TokEOF:
					p.errorExpected(`"]"`)

				case p.isOpenDelim():
					p.skipGroup()

				default:
					p.next()
				}
			}
		}

		p.expect("]")

	case p.is("!"), p.is("_"):
		p.next()

	case p.is("impl"), p.is("dyn"):
		p.next()
		p.bounds(bounds)

	case p.is("for"):
		p.next()
		p.skipGenerics()

		if p.is("fn") || p.is("unsafe") || p.is("extern") {
			p.fnPointer()
		} else {
			p.bounds(bounds)
		}

	case p.is("fn"), p.is("unsafe"), p.is("extern"):
		p.fnPointer()

	case isPathIdent(t), p.is("::"), p.is("<"), p.is("<<"):
		p.typePath()

	default:
		p.errorExpected("type")
	}
}

func (p *parser) fnPointer() {
	p.got("unsafe")

	if p.got("extern") && p.tok.Kind == TokStr {
		p.next()
	}

	p.expect("fn")
	p.expect("(")

	for !p.is(")") {
		p.parseAttrs()

		if (p.tok.Kind == TokIdent || p.is("_")) && isTok(p.peek(1), ":") {
			p.next()
			p.next()
		}

		if p.is("...") {
			p.next()
		} else {
			p.typ(true)
		}

		if !p.got(",") {
			break
		}
	}

	p.expect(")")

	if p.got("->") {
		p.typ(false)
	}
}

func (p *parser) bounds(plus bool) {
	for {
		p.bound()

		if !plus || !p.got("+") {
			return
		}
	}
}

func (p *parser) bound() {
	switch {
	case p.tok.Kind == TokLifetime:
		p.next()

	case p.is("("):
		p.next()
		p.bound()
		p.expect(")")

	default:
		p.got("?")
		p.got("~")

		if p.is("for") {
			p.next()
			p.skipGenerics()
		}

		p.typePath()
	}
}

func (p *parser) typePath() {
	p.got("::")

	if p.is("<") || p.is("<<") {
		p.parseGenericArgs()
		p.expect("::")
	}

	for {
		if !isPathIdent(p.tok) {
			p.errorExpected("type")
		}

		p.next()

		switch {
		case p.is("<"), p.is("<<"):
			p.parseGenericArgs()

		case p.is("::") && (isTok(p.peek(1), "<") || isTok(p.peek(1), "<<")):
			p.next()
			p.parseGenericArgs()

		case p.is("("):
			// Fn(A, B) -> C
			p.next()

			for !p.is(")") {
				p.typ(true)

				if !p.got(",") {
					break
				}
			}

			p.expect(")")

			if p.got("->") {
				p.typ(false)
			}
		}

		if !p.is("::") || !isPathIdent(p.peek(1)) {
			return
		}

		p.next()
	}
}

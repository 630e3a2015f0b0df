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

import "strings"

// ----------------------------------------------------------------------------
// Expressions

func (p *parser) parseExpr() Expr {
	start := p.tok.Pos
	x := p.parseRange()

	if p.tok.Kind == TokPunct {
		switch op := p.tok.Text; op {
		case "=", "+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<=", ">>=":
			p.next()
			return &AssignExpr{Start: start, Op: op, Left: x, Right: p.parseExpr()}
		}
	}

	return x
}

// parseExprNoStruct parses an expression in a position where a struct
// literal is not allowed.
func (p *parser) parseExprNoStruct() Expr {
	noStruct := p.noStruct
	p.noStruct = true
	x := p.parseExpr()
	p.noStruct = noStruct

	return x
}

// parseExprStruct parses an expression inside delimiters, where struct
// literals are allowed again.
func (p *parser) parseExprStruct() Expr {
	noStruct := p.noStruct
	p.noStruct = false
	x := p.parseExpr()
	p.noStruct = noStruct

	return x
}

func (p *parser) isRangeOp() bool { return p.is("..") || p.is("..=") }

func (p *parser) parseRange() Expr {
	start := p.tok.Pos

	var from Expr
	if !p.isRangeOp() {
		from = p.parseBinary(1)

		if !p.isRangeOp() {
			return from
		}
	}

	r := &RangeExpr{Start: start, From: from, Closed: p.is("..=")}
	p.next()

	if p.canStartExpr() {
		r.To = p.parseBinary(1)
	}

	return r
}

// canStartExpr reports whether the current token can start an expression.
func (p *parser) canStartExpr() bool {
	t := p.tok

	switch t.Kind {
	case TokIdent:
		switch t.Text {
		case "as", "else", "in":
			return false
		}

		return true

	case TokLifetime, TokInt, TokFloat, TokStr, TokChar:
		return true

	case TokPunct:
		switch t.Text {
		case "(", "[", "-", "!", "*", "&", "&&", "|", "||", "<", "<<", "::", "#", "..", "..=":
			return true

		case "{":
			return !p.noStruct
		}
	}

	return false
}

func binaryPrec(t Token) int {
	switch t.Kind {
	case TokIdent:
		if t.Text == "as" {
			return 10
		}

	case TokPunct:
		switch t.Text {
		case "||":
			return 1
		case "&&":
			return 2
		case "==", "!=", "<", ">", "<=", ">=":
			return 3
		case "|":
			return 4
		case "^":
			return 5
		case "&":
			return 6
		case "<<", ">>":
			return 7
		case "+", "-":
			return 8
		case "*", "/", "%":
			return 9
		}
	}

	return 0
}

func (p *parser) parseBinary(prec1 int) Expr {
	start := p.tok.Pos
	x := p.parseUnary()

	for {
		prec := binaryPrec(p.tok)
		if prec < prec1 || prec == 0 {
			return x
		}

		op := p.tok.Text
		p.next()

		if op == "as" {
			x = &CastExpr{Start: start, X: x, Type: p.parseTypeNoBounds()}
			continue
		}

		x = &BinaryExpr{Start: start, Op: op, X: x, Y: p.parseBinary(prec + 1)}
	}
}

func (p *parser) parseUnary() Expr {
	start := p.tok.Pos

	switch {
	case p.is("-"), p.is("!"), p.is("*"):
		op := p.tok.Text
		p.next()

		return &UnaryExpr{Start: start, Op: op, X: p.parseUnary()}

	case p.is("&"):
		p.next()
		mut := p.got("mut")

		return &RefExpr{Start: start, Mut: mut, X: p.parseUnary()}

	case p.is("&&"):
		p.next()
		inner := Pos{Offset: start.Offset + 1, Line: start.Line, Column: start.Column + 1}
		mut := p.got("mut")

		return &RefExpr{Start: start, X: &RefExpr{Start: inner, Mut: mut, X: p.parseUnary()}}
	}

	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(x Expr) Expr {
	start := x.Pos()

	for {
		switch {
		case p.is("?"):
			p.next()
			x = &TryExpr{Start: start, X: x}

		case p.is("."):
			p.next()
			x = p.parseDotted(start, x)

		case p.is("("):
			x = &CallExpr{Start: start, Fun: x, Args: p.parseExprList("(", ")")}

		case p.is("["):
			p.next()
			index := p.parseExprStruct()
			p.expect("]")

			x = &IndexExpr{Start: start, X: x, Index: index}

		default:
			return x
		}
	}
}

// parseDotted parses the part after a dot: await, a field, a tuple index or
// a method call.
func (p *parser) parseDotted(start Pos, x Expr) Expr {
	switch t := p.tok; t.Kind {
	case TokInt:
		p.next()
		return &FieldExpr{Start: start, X: x, Name: t.Text}

	case TokFloat:
		// x.1.2 scanned as float
		p.next()

		first, second, _ := strings.Cut(t.Text, ".")
		x = &FieldExpr{Start: start, X: x, Name: first}

		return &FieldExpr{Start: start, X: x, Name: second}

	case TokIdent:
		if t.Text == "await" {
			p.next()
			return &AwaitExpr{Start: start, X: x}
		}

		name := t.Text
		p.next()

		var args string
		if p.is("::") {
			p.next()
			args = p.parseGenericArgs()
		}

		if p.is("(") {
			return &MethodCallExpr{Start: start, Recv: x, Method: name, Args: args, Params: p.parseExprList("(", ")")}
		}

		if args != "" {
			p.errorExpected(`"("`)
		}

		return &FieldExpr{Start: start, X: x, Name: name}
	}

	p.errorExpected("field or method name")

	return nil
}

// parseExprList parses a comma-separated expression list between delimiters.
func (p *parser) parseExprList(open, closing string) []Expr {
	p.expect(open)

	var list []Expr
	for !p.is(closing) {
		list = append(list, p.parseExprStruct())

		if !p.got(",") {
			break
		}
	}

	p.expect(closing)

	return list
}

func (p *parser) parsePrimary() Expr {
	start := p.tok.Pos

	switch t := p.tok; t.Kind {
	case TokInt:
		p.next()
		return &LitExpr{Start: start, Kind: LitInt, Value: t.Text}

	case TokFloat:
		p.next()
		return &LitExpr{Start: start, Kind: LitFloat, Value: t.Text}

	case TokStr:
		p.next()
		return &LitExpr{Start: start, Kind: LitStr, Value: t.Text}

	case TokChar:
		p.next()
		return &LitExpr{Start: start, Kind: LitChar, Value: t.Text}

	case TokLifetime:
		return p.parseLabeled()

	case TokIdent:
		if x := p.parseKeywordExpr(); x != nil {
			return x
		}

		return p.parsePathExpr()

	case TokPunct:
		switch t.Text {
		case "|", "||":
			return p.parseClosure(start)

		case "(":
			return p.parseParen()

		case "[":
			return p.parseArray()

		case "{":
			return &BlockExpr{Start: start, Block: p.parseBlock()}

		case "::", "<", "<<":
			return p.parsePathExpr()
		}
	}

	p.errorExpected("expression")

	return nil
}

// parseKeywordExpr parses expressions introduced by a keyword, or returns nil.
func (p *parser) parseKeywordExpr() Expr {
	start := p.tok.Pos
	next := p.peek(1)

	switch p.tok.Text {
	case "true", "false":
		v := p.tok.Text
		p.next()

		return &LitExpr{Start: start, Kind: LitBool, Value: v}

	case "if":
		return p.parseIf()

	case "match":
		return p.parseMatch()

	case "loop":
		p.next()
		return &LoopExpr{Start: start, Body: p.parseBlock()}

	case "while":
		p.next()
		cond := p.parseExprNoStruct()

		return &WhileExpr{Start: start, Cond: cond, Body: p.parseBlock()}

	case "for":
		return p.parseFor(start, "")

	case "unsafe":
		if isTok(next, "{") {
			p.next()
			return &UnsafeExpr{Start: start, Block: p.parseBlock()}
		}

	case "try":
		if isTok(next, "{") {
			p.next()
			return &TryBlockExpr{Start: start, Block: p.parseBlock()}
		}

	case "async":
		switch {
		case isTok(next, "{"):
			p.next()
			return &AsyncExpr{Start: start, Block: p.parseBlock()}

		case isTok(next, "move") && isTok(p.peek(2), "{"):
			p.next()
			p.next()

			return &AsyncExpr{Start: start, Move: true, Block: p.parseBlock()}
		}

		return p.parseClosure(start)

	case "move", "static":
		return p.parseClosure(start)

	case "return":
		p.next()
		r := &ReturnExpr{Start: start}

		if p.canStartExpr() {
			r.Value = p.parseExpr()
		}

		return r

	case "yield":
		p.next()
		y := &YieldExpr{Start: start}

		if p.canStartExpr() {
			y.Value = p.parseExpr()
		}

		return y

	case "break":
		p.next()
		b := &BreakExpr{Start: start}

		if p.tok.Kind == TokLifetime {
			b.Label = p.tok.Text
			p.next()
		}

		if p.canStartExpr() {
			b.Value = p.parseExpr()
		}

		return b

	case "continue":
		p.next()
		c := &ContinueExpr{Start: start}

		if p.tok.Kind == TokLifetime {
			c.Label = p.tok.Text
			p.next()
		}

		return c

	case "let":
		p.next()
		pat := p.parsePat()
		p.expect("=")

		return &LetExpr{Start: start, Pat: pat, X: p.parseBinary(3)}

	case "_":
		p.next()
		return &InferExpr{Start: start}
	}

	return nil
}

// parseLabeled parses a labeled loop or block.
func (p *parser) parseLabeled() Expr {
	start := p.tok.Pos
	label := p.tok.Text
	p.next()
	p.expect(":")

	switch {
	case p.is("{"):
		return &BlockExpr{Start: start, Label: label, Block: p.parseBlock()}

	case p.is("loop"):
		p.next()
		return &LoopExpr{Start: start, Label: label, Body: p.parseBlock()}

	case p.is("while"):
		p.next()
		cond := p.parseExprNoStruct()

		return &WhileExpr{Start: start, Label: label, Cond: cond, Body: p.parseBlock()}

	case p.is("for"):
		return p.parseFor(start, label)
	}

	p.errorExpected("loop or block after label")

	return nil
}

func (p *parser) parseIf() Expr {
	start := p.expect("if")
	cond := p.parseExprNoStruct()

	x := &IfExpr{Start: start, Cond: cond, Then: p.parseBlock()}

	if p.got("else") {
		if p.is("if") {
			x.Else = p.parseIf()
		} else {
			pos := p.tok.Pos
			x.Else = &BlockExpr{Start: pos, Block: p.parseBlock()}
		}
	}

	return x
}

func (p *parser) parseFor(start Pos, label string) Expr {
	p.expect("for")
	pat := p.parsePat()
	p.expect("in")
	iter := p.parseExprNoStruct()

	return &ForExpr{Start: start, Label: label, Pat: pat, Iter: iter, Body: p.parseBlock()}
}

func (p *parser) parseMatch() Expr {
	start := p.expect("match")
	x := p.parseExprNoStruct()

	p.expect("{")

	noStruct := p.noStruct
	p.noStruct = false

	m := &MatchExpr{Start: start, X: x}

	for !p.is("}") {
		leading := p.leading()
		attrs := p.parseAttrs()
		leading = append(leading, p.leading()...)

		a := p.parseArm()
		a.Attrs = attrs
		attach(a, leading, p.trailing())

		m.Arms = append(m.Arms, a)
	}

	p.noStruct = noStruct
	p.next()

	return m
}

func (p *parser) parseArm() *Arm {
	a := &Arm{Start: p.tok.Pos, Pat: p.parsePat()}

	if p.got("if") {
		a.Guard = p.parseExpr()
	}

	p.expect("=>")

	if p.blockLikeStart() {
		m := p.mark()
		a.Body = p.parsePrimary()

		if p.is(".") || p.is("?") {
			p.reset(m)
			a.Body = p.parseExpr()
		}

		p.got(",")

		return a
	}

	a.Body = p.parseExpr()

	if !p.got(",") && !p.is("}") {
		p.errorExpected(`"," or "}"`)
	}

	return a
}

func (p *parser) parseClosure(start Pos) Expr {
	c := &ClosureExpr{Start: start}

	p.got("static")
	c.Async = p.got("async")
	c.Move = p.got("move")

	switch {
	case p.got("||"):

	case p.got("|"):
		for !p.is("|") {
			c.Params = append(c.Params, p.parseClosureParam())

			if !p.got(",") {
				break
			}
		}

		p.expect("|")

	default:
		p.errorExpected("closure parameters")
	}

	if p.got("->") {
		c.Result = p.parseTypeNoBounds()

		pos := p.tok.Pos
		c.Body = &BlockExpr{Start: pos, Block: p.parseBlock()}

		return c
	}

	c.Body = p.parseExpr()

	return c
}

func (p *parser) parseClosureParam() *Param {
	start := p.tok.Pos
	p.parseAttrs()

	param := &Param{Start: start, Pat: p.parsePatNoTop()}
	if p.got(":") {
		param.Type = p.parseType()
	}

	return param
}

func (p *parser) parseParen() Expr {
	start := p.expect("(")

	var (
		elems []Expr
		comma bool
	)

	for !p.is(")") {
		elems = append(elems, p.parseExprStruct())

		if comma = p.got(","); !comma {
			break
		}
	}

	p.expect(")")

	if len(elems) == 1 && !comma {
		return &ParenExpr{Start: start, X: elems[0]}
	}

	return &TupleExpr{Start: start, Elems: elems}
}

func (p *parser) parseArray() Expr {
	start := p.expect("[")

	if p.got("]") {
		return &ArrayExpr{Start: start}
	}

	first := p.parseExprStruct()

	if p.got(";") {
		n := p.parseExprStruct()
		p.expect("]")

		return &RepeatExpr{Start: start, Elem: first, Len: n}
	}

	elems := []Expr{first}

	for p.got(",") && !p.is("]") {
		elems = append(elems, p.parseExprStruct())
	}

	p.expect("]")

	return &ArrayExpr{Start: start, Elems: elems}
}

// parsePathExpr parses a path, a macro invocation or a struct literal.
func (p *parser) parsePathExpr() Expr {
	if p.macroStart() {
		return &MacroExpr{Mac: p.parseMacro()}
	}

	path := p.parsePath()

	if p.is("{") && !p.noStruct {
		return p.parseStruct(path)
	}

	return &PathExpr{Path: path}
}

// parsePath parses an expression or pattern path, with turbofish generics.
func (p *parser) parsePath() *Path {
	path := &Path{Start: p.tok.Pos, Global: p.got("::")}

	if !path.Global && (p.is("<") || p.is("<<")) {
		path.Segments = append(path.Segments, PathSegment{Args: p.parseGenericArgs()})

		if !p.is("::") {
			p.errorExpected(`"::"`)
		}

		p.next()
	}

	for {
		if !isPathIdent(p.tok) {
			p.errorExpected("identifier")
		}

		seg := PathSegment{Name: p.tok.Text}
		p.next()

		for p.is("::") && (isTok(p.peek(1), "<") || isTok(p.peek(1), "<<")) {
			p.next()
			seg.Args += p.parseGenericArgs()
		}

		path.Segments = append(path.Segments, seg)

		if !p.is("::") || p.peek(1).Kind != TokIdent {
			return path
		}

		p.next()
	}
}

// parseGenericArgs consumes <...> and returns its normalized text.
func (p *parser) parseGenericArgs() string {
	var toks []Token
	stop := p.recordStart(&toks)

	p.expectLt()

	depth := 1
	for depth > 0 {
		switch t := p.tok; {
		case t.Kind == TokEOF, p.is(";"):
			p.errorExpected(`">"`)

		case p.is("<"):
			depth++
			p.next()

		case p.is("<<"):
			depth += 2
			p.next()

		case t.Kind == TokPunct && t.Text[0] == '>':
			p.expectGt()
			depth--

		case p.isOpenDelim():
			p.skipGroup()

		default:
			p.next()
		}
	}

	stop()

	return joinTokens(toks)
}

func (p *parser) parseStruct(path *Path) Expr {
	p.expect("{")

	s := &StructExpr{Start: path.Start, Path: path}

	noStruct := p.noStruct
	p.noStruct = false

	for !p.is("}") {
		start := p.tok.Pos

		if p.got("..") {
			if !p.is("}") {
				s.Rest = p.parseExpr()
			}

			break
		}

		var name string

		switch p.tok.Kind {
		case TokIdent, TokInt:
			name = p.tok.Text
			p.next()

		default:
			p.errorExpected("field name")
		}

		f := &FieldValue{Start: start, Name: name}

		if p.got(":") {
			f.Value = p.parseExpr()
		} else {
			f.Shorthand = true
			f.Value = &PathExpr{Path: &Path{Start: start, Segments: []PathSegment{{Name: name}}}}
		}

		s.Fields = append(s.Fields, f)

		if !p.got(",") {
			break
		}
	}

	p.noStruct = noStruct
	p.expect("}")

	return s
}

// isPathIdent reports whether t can be a path segment.
func isPathIdent(t Token) bool {
	if t.Kind != TokIdent {
		return false
	}

	switch t.Text {
	case "self", "Self", "super", "crate":
		return true
	}

	return t.Text != "_" && !IsKeyword(t.Text)
}

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
	"slices"
	"strings"
)

// ParseFile parses a source file.
func ParseFile(src []byte) (*File, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	var f *File
	if err := p.run(func() { f = p.parseFile() }); err != nil {
		return nil, err
	}

	return f, nil
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (Expr, error) {
	p, err := newParser([]byte(src))
	if err != nil {
		return nil, err
	}

	var x Expr
	if err := p.run(func() {
		x = p.parseExpr()
		p.expectEOF()
	}); err != nil {
		return nil, err
	}

	return x, nil
}

// ParseStmts parses a statement list as it appears inside a block.
func ParseStmts(src string) ([]Stmt, error) {
	p, err := newParser([]byte(src))
	if err != nil {
		return nil, err
	}

	var stmts []Stmt
	if err := p.run(func() {
		stmts = p.parseStmtList(TokEOF, "")
	}); err != nil {
		return nil, err
	}

	return stmts, nil
}

// parser holds the parser's internal state.
type parser struct {
	src  []byte
	toks []Token

	idx int   // index of the current token
	tok Token // current token, may be the remainder of a split token

	lastEnd  int        // end offset of the previously consumed token
	noStruct bool       // struct literals are not allowed (if, while, match and for heads)
	recs     []*[]Token // active token recorders

	comments []Comment // comments up to the current token not attached to a node yet
}

// bailout is used to unwind the parser on the first error.
type bailout struct{ err *Error }

// marker is a saved parser position for backtracking.
type marker struct {
	idx      int
	tok      Token
	lastEnd  int
	comments []Comment
}

func newParser(src []byte) (*parser, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return &parser{src: src, toks: toks, tok: toks[0], comments: toks[0].Comments}, nil
}

func (p *parser) run(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}

			err = b.err
		}
	}()

	f()

	return nil
}

func (p *parser) errorf(pos Pos, format string, args ...any) {
	panic(bailout{errorf(pos, format, args...)})
}

func (p *parser) errorExpected(what string) {
	found := p.tok.Text
	if p.tok.Kind == TokEOF {
		found = "end of file"
	}

	p.errorf(p.tok.Pos, "expected %s, found %q", what, found)
}

// ----------------------------------------------------------------------------
// Token handling

func (p *parser) next() {
	p.record(p.tok)
	p.lastEnd = p.tok.End

	if p.idx < len(p.toks)-1 {
		p.idx++
		p.comments = append(p.comments, p.toks[p.idx].Comments...)
	}

	p.tok = p.toks[p.idx]
}

func (p *parser) record(tok Token) {
	for _, r := range p.recs {
		*r = append(*r, tok)
	}
}

// recordStart starts recording consumed tokens into buf; the returned
// function stops recording.
func (p *parser) recordStart(buf *[]Token) func() {
	p.recs = append(p.recs, buf)

	return func() { p.recs = p.recs[:len(p.recs)-1] }
}

func (p *parser) mark() marker {
	return marker{idx: p.idx, tok: p.tok, lastEnd: p.lastEnd, comments: slices.Clone(p.comments)}
}

func (p *parser) reset(m marker) {
	p.idx, p.tok, p.lastEnd, p.comments = m.idx, m.tok, m.lastEnd, m.comments
}

// ----------------------------------------------------------------------------
// Comments

// leading takes the pending comments, which precede the node starting at the
// current token.
func (p *parser) leading() []Comment {
	c := p.comments
	p.comments = nil

	return c
}

// trailing takes the pending comments inside the node just consumed and the
// ones on its last line.
func (p *parser) trailing() []Comment {
	n := 0
	for n < len(p.comments) && (p.comments[n].Pos.Offset < p.lastEnd || p.comments[n].Trailing) {
		n++
	}

	c := p.comments[:n:n]
	p.comments = p.comments[n:]

	if len(c) == 0 {
		return nil
	}

	return c
}

// drop discards the pending comments between two offsets, which are part of
// verbatim source text.
func (p *parser) drop(from, to int) {
	p.comments = slices.DeleteFunc(p.comments, func(c Comment) bool {
		return from <= c.Pos.Offset && c.Pos.Offset < to
	})
}

// attach sets the comments of a statement, item or match arm.
func attach(n Node, leading, trailing []Comment) {
	if c := CommentsOf(n); c != nil {
		c.Leading = append(leading, c.Leading...)
		c.Trailing = append(c.Trailing, trailing...)
	}
}

// peek returns the token n positions after the current one.
func (p *parser) peek(n int) Token {
	if i := p.idx + n; i < len(p.toks) {
		return p.toks[i]
	}

	return p.toks[len(p.toks)-1]
}

// is reports whether the current token is the punctuation or keyword text.
func (p *parser) is(text string) bool {
	return isTok(p.tok, text)
}

func isTok(tok Token, text string) bool {
	return (tok.Kind == TokPunct || tok.Kind == TokIdent) && tok.Text == text
}

func (p *parser) got(text string) bool {
	if !p.is(text) {
		return false
	}

	p.next()

	return true
}

func (p *parser) expect(text string) Pos {
	pos := p.tok.Pos
	if !p.got(text) {
		p.errorExpected(fmt.Sprintf("%q", text))
	}

	return pos
}

func (p *parser) expectEOF() {
	if p.tok.Kind != TokEOF {
		p.errorExpected("end of input")
	}
}

// ident consumes an identifier that is not a reserved word.
func (p *parser) ident() string {
	if p.tok.Kind != TokIdent || IsKeyword(p.tok.Text) || p.tok.Text == "_" {
		p.errorExpected("identifier")
	}

	name := p.tok.Text
	p.next()

	return name
}

// split consumes the first character of a compound punctuation token,
// leaving the remainder as current token.
func (p *parser) split() {
	t := p.tok
	first := Token{Kind: TokPunct, Text: t.Text[:1], Pos: t.Pos, End: t.Pos.Offset + 1}
	p.record(first)
	p.lastEnd = first.End

	p.tok = Token{
		Kind: TokPunct,
		Text: t.Text[1:],
		Pos:  Pos{Offset: t.Pos.Offset + 1, Line: t.Pos.Line, Column: t.Pos.Column + 1},
		End:  t.End,
	}
}

// expectGt consumes a single '>', splitting '>>', '>=' and '>>='.
func (p *parser) expectGt() {
	switch t := p.tok; {
	case t.Kind != TokPunct || t.Text == "" || t.Text[0] != '>':
		p.errorExpected(`">"`)

	case t.Text == ">":
		p.next()

	default:
		p.split()
	}
}

// expectLt consumes a single '<', splitting '<<'.
func (p *parser) expectLt() {
	switch {
	case p.is("<"):
		p.next()

	case p.is("<<"):
		p.split()

	default:
		p.errorExpected(`"<"`)
	}
}

func (p *parser) isOpenDelim() bool {
	return p.is("(") || p.is("[") || p.is("{")
}

// skipGroup consumes a balanced delimited group and returns the closing token.
func (p *parser) skipGroup() Token {
	var stack []string

	for {
		t := p.tok
		if t.Kind == TokEOF {
			p.errorf(t.Pos, "unbalanced delimiter")
		}

		if t.Kind == TokPunct {
			switch t.Text {
			case "(":
				stack = append(stack, ")")
			case "[":
				stack = append(stack, "]")
			case "{":
				stack = append(stack, "}")
			case ")", "]", "}":
				if len(stack) == 0 || stack[len(stack)-1] != t.Text {
					p.errorf(t.Pos, "mismatched %q", t.Text)
				}

				stack = stack[:len(stack)-1]
			}
		}

		p.next()

		if len(stack) == 0 {
			return t
		}
	}
}

// text returns the verbatim source between two offsets.
func (p *parser) text(from, to int) string {
	return string(p.src[from:to])
}

// ----------------------------------------------------------------------------
// Files and items

func (p *parser) parseFile() *File {
	f := &File{}

	for p.tok.Kind != TokEOF {
		f.Items = append(f.Items, p.parseCommentedItem())
	}

	f.End = p.leading()

	return f
}

// parseCommentedItem parses an item or inner attribute together with its
// comments.
func (p *parser) parseCommentedItem() Item {
	leading := p.leading()

	item := p.parseInnerAttr()
	if item == nil {
		attrs := p.parseAttrs()
		leading = append(leading, p.leading()...)
		item = p.parseItem(attrs)
	}

	attach(item, leading, p.trailing())

	return item
}

// parseInnerAttr parses #![...] as a raw item.
func (p *parser) parseInnerAttr() Item {
	if !p.is("#") || !isTok(p.peek(1), "!") {
		return nil
	}

	start := p.tok.Pos
	p.next()
	p.next()

	if !p.is("[") {
		p.errorExpected(`"["`)
	}

	p.skipGroup()
	p.drop(start.Offset, p.lastEnd)

	return &RawItem{Start: start, Text: p.text(start.Offset, p.lastEnd)}
}

func (p *parser) parseAttrs() []*Attr {
	var attrs []*Attr

	for p.is("#") && !isTok(p.peek(1), "!") {
		attrs = append(attrs, p.parseAttr())
	}

	return attrs
}

func (p *parser) parseAttr() *Attr {
	start := p.expect("#")
	p.expect("[")

	var name strings.Builder

	for p.is("::") || p.tok.Kind == TokIdent {
		name.WriteString(p.tok.Text)
		p.next()
	}

	a := &Attr{Start: start, Name: name.String()}

	switch {
	case p.is("("):
		open := p.tok
		closing := p.skipGroup()
		a.Args = p.text(open.End, closing.Pos.Offset)

	case p.is("="):
		for !p.is("]") && p.tok.Kind != TokEOF {
			if p.isOpenDelim() {
				p.skipGroup()
			} else {
				p.next()
			}
		}
	}

	p.expect("]")

	a.Text = p.text(start.Offset, p.lastEnd)
	p.drop(start.Offset, p.lastEnd)

	return a
}

// itemStart reports whether the current token starts an item.
func (p *parser) itemStart() bool {
	if p.tok.Kind != TokIdent {
		return false
	}

	next := p.peek(1)

	switch p.tok.Text {
	case "fn", "pub", "struct", "enum", "trait", "impl", "type", "use", "mod", "extern":
		return true

	case "const":
		return next.Kind == TokIdent && next.Text != "move" && next.Text != "async" ||
			isTok(next, "_")

	case "static":
		return next.Kind == TokIdent && next.Text != "move" && !isTok(next, "async")

	case "async":
		return isTok(next, "fn") || isTok(next, "unsafe") && isTok(p.peek(2), "fn")

	case "unsafe":
		return isTok(next, "fn") || isTok(next, "impl") || isTok(next, "trait") || isTok(next, "extern")

	case "union", "auto", "default":
		return next.Kind == TokIdent

	case "macro_rules":
		return isTok(next, "!")
	}

	return false
}

func (p *parser) parseItem(attrs []*Attr) Item {
	start := p.tok.Pos

	// qualifiers
	m := p.mark()

	var vis []Token
	stop := p.recordStart(&vis)

	if p.got("pub") && p.is("(") {
		switch inner := p.peek(1); {
		case isTok(inner, "crate"), isTok(inner, "self"), isTok(inner, "super"), isTok(inner, "in"):
			p.skipGroup()
		}
	}

	stop()

	for {
		switch {
		case p.is("async"), p.is("unsafe"), p.is("default"), p.is("auto"):
			p.next()
			continue

		case p.is("const") && (isTok(p.peek(1), "fn") || isTok(p.peek(1), "unsafe") || isTok(p.peek(1), "async") || isTok(p.peek(1), "extern")):
			p.next()
			continue

		case p.is("extern") && p.peek(1).Kind == TokStr && !isTok(p.peek(2), "{"):
			p.next()
			p.next()
			continue

		case p.is("extern") && isTok(p.peek(1), "fn"):
			p.next()
			continue
		}

		break
	}

	switch {
	case p.is("fn"):
		p.reset(m)
		return p.parseFn(start, attrs)

	case p.is("const") || p.is("static"):
		return p.parseConst(start, attrs, joinTokens(vis))

	case p.is("impl"), p.is("trait"), p.is("mod") && isTok(p.peek(2), "{"), p.is("extern") && p.opensBlock():
		p.reset(m)
		return p.parseBlockItem(start, attrs)
	}

	p.reset(m)

	return p.parseRawItem(start, attrs)
}

// opensBlock reports whether an extern block follows.
func (p *parser) opensBlock() bool {
	next := p.peek(1)
	return isTok(next, "{") || next.Kind == TokStr && isTok(p.peek(2), "{")
}

func (p *parser) parseFn(start Pos, attrs []*Attr) Item {
	var sig []Token
	stop := p.recordStart(&sig)

	for !p.is("fn") {
		if p.is("(") {
			p.skipGroup()
		} else {
			p.next()
		}
	}

	p.expect("fn")
	name := p.ident()

	if p.is("<") {
		p.skipGenerics()
	}

	params := p.parseFnParams()

	if p.got("->") {
		p.parseType()
	}

	if p.is("where") {
		for !p.is("{") && !p.is(";") && p.tok.Kind != TokEOF {
			if p.is("(") || p.is("[") {
				p.skipGroup()
			} else {
				p.next()
			}
		}
	}

	stop()

	if p.is(";") {
		p.next()
		return p.rawItem(start, attrs)
	}

	body := p.parseBlock()

	return &FnItem{Start: start, Attrs: attrs, Sig: joinTokens(sig), Name: name, Params: params, Body: body}
}

// skipGenerics consumes a generic parameter list.
func (p *parser) skipGenerics() {
	depth := 0

	for {
		switch t := p.tok; {
		case t.Kind == TokEOF:
			p.errorExpected(`">"`)

		case p.is("<"):
			depth++
			p.next()

		case p.is("<<"):
			depth += 2
			p.next()

		case t.Kind == TokPunct && strings.HasPrefix(t.Text, ">"):
			p.expectGt()
			depth--

		case p.isOpenDelim():
			p.skipGroup()

		default:
			p.next()
		}

		if depth == 0 {
			return
		}
	}
}

func (p *parser) parseFnParams() []*Param {
	p.expect("(")

	var params []*Param

	for !p.is(")") {
		p.parseAttrs()

		if p.is("...") {
			p.next()
		} else {
			params = append(params, p.parseFnParam())
		}

		if !p.got(",") {
			break
		}
	}

	p.expect(")")

	return params
}

func (p *parser) parseFnParam() *Param {
	start := p.tok.Pos

	if p.isReceiver() {
		var recv []Token
		stop := p.recordStart(&recv)

		for !p.is("self") {
			p.next()
		}

		p.next()

		if p.got(":") {
			p.parseType()
		}

		stop()

		return &Param{Start: start, Receiver: joinTokens(recv)}
	}

	pat := p.parsePatNoTop()
	p.expect(":")
	typ := p.parseType()

	return &Param{Start: start, Pat: pat, Type: typ}
}

// isReceiver reports whether a self parameter follows.
func (p *parser) isReceiver() bool {
	i := 0
	if isTok(p.peek(i), "&") {
		i++
		if p.peek(i).Kind == TokLifetime {
			i++
		}
	}

	if isTok(p.peek(i), "mut") {
		i++
	}

	return isTok(p.peek(i), "self") && !isTok(p.peek(i+1), "::")
}

func (p *parser) parseConst(start Pos, attrs []*Attr, vis string) Item {
	c := &ConstItem{Start: start, Attrs: attrs, Vis: vis, Static: p.is("static")}
	p.next()

	if c.Static && p.got("mut") {
		c.Mut = true
	}

	if p.got("_") {
		c.Name = "_"
	} else {
		c.Name = p.ident()
	}

	if p.got(":") {
		c.Type = p.parseType()
	}

	if p.got("=") {
		c.Value = p.parseExpr()
	}

	p.expect(";")

	return c
}

func (p *parser) parseBlockItem(start Pos, attrs []*Attr) Item {
	var header []Token
	stop := p.recordStart(&header)

	for !p.is("{") {
		switch {
		case p.tok.Kind == TokEOF, p.is(";"):
			p.errorExpected(`"{"`)

		case p.is("("), p.is("["):
			p.skipGroup()

		default:
			p.next()
		}
	}

	stop()
	p.expect("{")

	b := &BlockItem{Start: start, Attrs: attrs, Header: joinTokens(header)}

	for !p.is("}") {
		if p.tok.Kind == TokEOF {
			p.errorExpected(`"}"`)
		}

		b.Items = append(b.Items, p.parseCommentedItem())
	}

	b.End = p.leading()
	p.next()

	return b
}

// rawItem keeps the source text from start up to the last consumed token.
func (p *parser) rawItem(start Pos, attrs []*Attr) *RawItem {
	p.drop(start.Offset, p.lastEnd)

	return &RawItem{Start: start, Attrs: attrs, Text: p.text(start.Offset, p.lastEnd)}
}

// parseRawItem consumes an item up to its terminating semicolon or closing
// brace and keeps its source text.
func (p *parser) parseRawItem(start Pos, attrs []*Attr) Item {
	if p.tok.Kind == TokEOF {
		p.errorExpected("item")
	}

	for {
		switch {
		case p.tok.Kind == TokEOF:
			p.errorExpected(`";" or "}"`)

		case p.is(";"):
			p.next()
			return p.rawItem(start, attrs)

		case p.is("{"):
			p.skipGroup()

			if p.is(";") {
				p.next()
			}

			return p.rawItem(start, attrs)

		case p.is("("), p.is("["):
			p.skipGroup()

		case p.is(")"), p.is("]"), p.is("}"):
			p.errorf(p.tok.Pos, "unexpected %q", p.tok.Text)

		default:
			p.next()
		}
	}
}

// ----------------------------------------------------------------------------
// Blocks and statements

func (p *parser) parseBlock() *Block {
	start := p.expect("{")

	noStruct := p.noStruct
	p.noStruct = false

	stmts := p.parseStmtList(TokPunct, "}")
	end := p.leading()

	p.noStruct = noStruct
	p.expect("}")

	return &Block{Start: start, Stmts: stmts, End: end}
}

// parseStmtList parses statements up to a closing token of the given kind
// and text.
func (p *parser) parseStmtList(kind TokenKind, closing string) []Stmt {
	var stmts []Stmt

	for !(p.tok.Kind == kind && (kind == TokEOF || p.tok.Text == closing)) {
		if p.tok.Kind == TokEOF {
			p.errorExpected(fmt.Sprintf("%q", closing))
		}

		if p.got(";") {
			continue
		}

		leading := p.leading()
		attrs := p.parseAttrs()
		leading = append(leading, p.leading()...)

		s := p.parseStmt(attrs)
		attach(s, leading, p.trailing())

		stmts = append(stmts, s)
	}

	return stmts
}

func (p *parser) parseStmt(attrs []*Attr) Stmt {
	switch {
	case p.is("let"):
		return p.parseLocal(attrs)

	case p.itemStart():
		return &ItemStmt{Item: p.parseItem(attrs)}
	}

	if p.macroStart() {
		m := p.mark()
		mac := p.parseMacro()

		switch {
		case p.got(";"):
			return &MacroStmt{Attrs: attrs, Mac: mac, Semi: true}

		case mac.Delim == '{':
			return &MacroStmt{Attrs: attrs, Mac: mac}
		}

		p.reset(m)
	}

	if p.blockLikeStart() {
		m := p.mark()
		x := p.parsePrimary()

		if p.is(".") || p.is("?") {
			p.reset(m)
			x = p.parseExpr()
		}

		return &ExprStmt{Attrs: attrs, X: x, Semi: p.got(";")}
	}

	x := p.parseExpr()

	switch {
	case p.got(";"):
		return &ExprStmt{Attrs: attrs, X: x, Semi: true}

	case p.is("}"), p.tok.Kind == TokEOF:
		return &ExprStmt{Attrs: attrs, X: x}
	}

	p.errorExpected(`";" or "}"`)

	return nil
}

func (p *parser) parseLocal(attrs []*Attr) Stmt {
	start := p.expect("let")

	s := &LocalStmt{Start: start, Attrs: attrs, Pat: p.parsePat()}

	if p.got(":") {
		s.Pat = &TypePat{Pat: s.Pat, Type: p.parseType()}
	}

	if p.got("=") {
		s.Init = p.parseExpr()

		if p.got("else") {
			s.Else = p.parseBlock()
		}
	}

	p.expect(";")

	return s
}

// macroStart reports whether a macro invocation path! follows.
func (p *parser) macroStart() bool {
	i := 0
	if isTok(p.peek(i), "::") {
		i++
	}

	for {
		t := p.peek(i)
		if t.Kind != TokIdent || IsKeyword(t.Text) && t.Text != "self" && t.Text != "super" && t.Text != "crate" {
			return false
		}

		i++

		if !isTok(p.peek(i), "::") {
			break
		}

		i++
	}

	if !isTok(p.peek(i), "!") {
		return false
	}

	d := p.peek(i + 1)

	return isTok(d, "(") || isTok(d, "[") || isTok(d, "{")
}

func (p *parser) parseMacro() *Macro {
	start := p.tok.Pos

	path := &Path{Start: start, Global: p.got("::")}
	for {
		path.Segments = append(path.Segments, PathSegment{Name: p.tok.Text})
		p.next()

		if !p.got("::") {
			break
		}
	}

	p.expect("!")

	open := p.tok
	first := p.idx + 1
	closing := p.skipGroup()

	toks := make([]Token, p.idx-1-first)
	copy(toks, p.toks[first:p.idx-1])
	p.drop(open.End, closing.Pos.Offset)

	return &Macro{
		Start:  start,
		Path:   path,
		Delim:  open.Text[0],
		Text:   p.text(open.End, closing.Pos.Offset),
		Tokens: toks,
	}
}

// blockLikeStart reports whether an expression that ends a statement
// without semicolon follows.
func (p *parser) blockLikeStart() bool {
	next := p.peek(1)

	switch {
	case p.is("{"), p.is("if"), p.is("match"), p.is("loop"), p.is("while"), p.is("for"):
		return true

	case p.is("unsafe"), p.is("try"):
		return isTok(next, "{")

	case p.is("async"):
		return isTok(next, "{") || isTok(next, "move") && isTok(p.peek(2), "{")

	case p.tok.Kind == TokLifetime:
		return isTok(next, ":")
	}

	return false
}

// ----------------------------------------------------------------------------
// Token text

// joinTokens renders tokens as normalized source text.
func joinTokens(toks []Token) string {
	var b strings.Builder

	for i, t := range toks {
		if i > 0 && spaceBetween(toks[i-1], t) {
			b.WriteByte(' ')
		}

		b.WriteString(t.Text)
	}

	return b.String()
}

func isWord(t Token) bool { return t.Kind != TokPunct && t.Kind != TokEOF }

func spaceBetween(prev, next Token) bool {
	if next.Kind == TokPunct {
		switch next.Text {
		case ",", ";", ")", "]", ">", ":", "::", ".":
			return false
		case "->", "=", "+", "=>", "{", "}":
			return true
		}
	}

	if prev.Kind == TokPunct {
		switch prev.Text {
		case ",", ";", ":", "->", "=", "+", "=>", "{":
			return true
		case ">", ")", "]":
			return isWord(next)
		}

		return false
	}

	if isWord(next) {
		return true
	}

	switch prev.Text {
	case "mut", "dyn", "const", "as", "where", "impl":
		return next.Text != "<" || prev.Text != "impl"
	}

	return false
}

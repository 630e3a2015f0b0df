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
	"bytes"
	"fmt"
	"io"
	"strings"
)

const indentWidth = 4

// Format returns the source form of node, which must be a *File, a *Block,
// an [Item], a [Stmt], an [Expr] or a [Pat]. Comments are kept, the original
// layout is not; items kept as source text are printed verbatim.
func Format(node any) ([]byte, error) {
	var buf bytes.Buffer
	if err := Fprint(&buf, node); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Fprint writes the source form of node to w. See [Format].
func Fprint(w io.Writer, node any) error {
	var p printer

	switch n := node.(type) {
	case *File:
		p.file(n)
	case *Block:
		p.block(n)
	case Item:
		p.item(n)
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n)
	case Pat:
		p.pat(n)
	default:
		return fmt.Errorf("syntax: unsupported node type %T", node)
	}

	_, err := io.WriteString(w, p.String())

	return err
}

// printer accumulates formatted output.
type printer struct {
	strings.Builder
	indent int
}

func (p *printer) newline() {
	p.WriteByte('\n')

	for range p.indent * indentWidth {
		p.WriteByte(' ')
	}
}

func (p *printer) file(f *File) {
	for i, item := range f.Items {
		if i > 0 {
			p.WriteString("\n\n")
		}

		p.item(item)
	}

	for i, c := range f.End {
		switch {
		case i > 0:
			p.WriteByte('\n')
		case len(f.Items) > 0:
			p.WriteString("\n\n")
		}

		p.WriteString(c.Text)
	}

	if len(f.Items) > 0 || len(f.End) > 0 {
		p.WriteByte('\n')
	}
}

func (p *printer) attrs(attrs []*Attr) {
	for _, a := range attrs {
		p.WriteString(a.Text)
		p.newline()
	}
}

// leading prints comments on their own lines before a node.
func (p *printer) leading(c *Comments) {
	if c == nil {
		return
	}

	for _, comment := range c.Leading {
		p.WriteString(comment.Text)
		p.newline()
	}
}

// trailing prints comments after a node on its last line. A line comment
// ends the line.
func (p *printer) trailing(c *Comments) {
	if c == nil {
		return
	}

	for i, comment := range c.Trailing {
		if i > 0 && c.Trailing[i-1].Line() {
			p.newline()
		} else {
			p.WriteByte(' ')
		}

		p.WriteString(comment.Text)
	}
}

// end prints the comments before a closing brace, one per line.
func (p *printer) end(list []Comment) {
	for _, c := range list {
		p.newline()
		p.WriteString(c.Text)
	}
}

func (p *printer) item(item Item) {
	c := CommentsOf(item)
	p.leading(c)
	p.itemNode(item)
	p.trailing(c)
}

func (p *printer) itemNode(item Item) {
	switch n := item.(type) {
	// keep-sorted start
	case *BlockItem:
		p.attrs(n.Attrs)
		p.WriteString(n.Header)

		if len(n.Items) == 0 && len(n.End) == 0 {
			p.WriteString(" {}")
			return
		}

		p.WriteString(" {")
		p.indent++

		for i, item := range n.Items {
			if i > 0 {
				p.WriteByte('\n')
			}

			p.newline()
			p.item(item)
		}

		p.end(n.End)
		p.indent--
		p.newline()
		p.WriteByte('}')

	case *ConstItem:
		p.attrs(n.Attrs)

		if n.Vis != "" {
			p.WriteString(n.Vis)
			p.WriteByte(' ')
		}

		switch {
		case n.Static && n.Mut:
			p.WriteString("static mut ")
		case n.Static:
			p.WriteString("static ")
		default:
			p.WriteString("const ")
		}

		p.WriteString(n.Name)

		if n.Type != nil {
			p.WriteString(": ")
			p.WriteString(n.Type.Text)
		}

		if n.Value != nil {
			p.WriteString(" = ")
			p.expr(n.Value)
		}

		p.WriteByte(';')

	case *FnItem:
		p.attrs(n.Attrs)
		p.WriteString(n.Sig)
		p.WriteByte(' ')
		p.block(n.Body)

	case *RawItem:
		p.attrs(n.Attrs)
		p.WriteString(n.Text)
		// keep-sorted end
	}
}

func (p *printer) block(b *Block) {
	if len(b.Stmts) == 0 && len(b.End) == 0 {
		p.WriteString("{}")
		return
	}

	p.WriteByte('{')
	p.indent++

	for _, s := range b.Stmts {
		p.newline()
		p.stmt(s)
	}

	p.end(b.End)
	p.indent--
	p.newline()
	p.WriteByte('}')
}

func (p *printer) stmt(s Stmt) {
	if n, ok := s.(*ItemStmt); ok {
		p.item(n.Item)
		return
	}

	c := CommentsOf(s)
	p.leading(c)
	p.stmtNode(s)
	p.trailing(c)
}

func (p *printer) stmtNode(s Stmt) {
	switch n := s.(type) {
	// keep-sorted start
	case *ExprStmt:
		p.attrs(n.Attrs)
		p.expr(n.X)

		if n.Semi {
			p.WriteByte(';')
		}

	case *LocalStmt:
		p.attrs(n.Attrs)
		p.WriteString("let ")
		p.pat(n.Pat)

		if n.Init != nil {
			p.WriteString(" = ")
			p.expr(n.Init)
		}

		if n.Else != nil {
			p.WriteString(" else ")
			p.block(n.Else)
		}

		p.WriteByte(';')

	case *MacroStmt:
		p.attrs(n.Attrs)
		p.macro(n.Mac)

		if n.Semi {
			p.WriteByte(';')
		}
		// keep-sorted end
	}
}

func (p *printer) macro(m *Macro) {
	p.path(m.Path)
	p.WriteByte('!')

	switch m.Delim {
	case '(':
		p.WriteString("(" + m.Text + ")")
	case '[':
		p.WriteString("[" + m.Text + "]")
	default:
		p.WriteString("{" + m.Text + "}")
	}
}

func (p *printer) path(path *Path) {
	if path.Global {
		p.WriteString("::")
	}

	for i, seg := range path.Segments {
		if i > 0 {
			p.WriteString("::")
		}

		p.WriteString(seg.Name)

		if seg.Args != "" {
			if seg.Name != "" {
				p.WriteString("::")
			}

			p.WriteString(seg.Args)
		}
	}
}

func (p *printer) label(label string) {
	if label != "" {
		p.WriteString(label)
		p.WriteString(": ")
	}
}

// operand prints an expression in receiver or left operand position. Blocks
// are parenthesized so they do not end a statement.
func (p *printer) operand(x Expr) {
	if _, ok := x.(*BlockExpr); ok {
		p.WriteByte('(')
		p.expr(x)
		p.WriteByte(')')

		return
	}

	p.expr(x)
}

func (p *printer) exprList(list []Expr) {
	for i, x := range list {
		if i > 0 {
			p.WriteString(", ")
		}

		p.expr(x)
	}
}

func (p *printer) expr(x Expr) {
	switch n := x.(type) {
	// keep-sorted start
	case *ArrayExpr:
		p.WriteByte('[')
		p.exprList(n.Elems)
		p.WriteByte(']')

	case *AssignExpr:
		p.operand(n.Left)
		p.WriteString(" " + n.Op + " ")
		p.expr(n.Right)

	case *AsyncExpr:
		p.WriteString("async ")

		if n.Move {
			p.WriteString("move ")
		}

		p.block(n.Block)

	case *AwaitExpr:
		p.operand(n.X)
		p.WriteString(".await")

	case *BinaryExpr:
		p.operand(n.X)
		p.WriteString(" " + n.Op + " ")
		p.expr(n.Y)

	case *BlockExpr:
		p.label(n.Label)
		p.block(n.Block)

	case *BreakExpr:
		p.WriteString("break")

		if n.Label != "" {
			p.WriteString(" " + n.Label)
		}

		if n.Value != nil {
			p.WriteByte(' ')
			p.expr(n.Value)
		}

	case *CallExpr:
		p.operand(n.Fun)
		p.WriteByte('(')
		p.exprList(n.Args)
		p.WriteByte(')')

	case *CastExpr:
		p.operand(n.X)
		p.WriteString(" as ")
		p.WriteString(n.Type.Text)

	case *ClosureExpr:
		p.closure(n)

	case *ContinueExpr:
		p.WriteString("continue")

		if n.Label != "" {
			p.WriteString(" " + n.Label)
		}

	case *FieldExpr:
		p.operand(n.X)
		p.WriteString("." + n.Name)

	case *ForExpr:
		p.label(n.Label)
		p.WriteString("for ")
		p.pat(n.Pat)
		p.WriteString(" in ")
		p.expr(n.Iter)
		p.WriteByte(' ')
		p.block(n.Body)

	case *IfExpr:
		p.WriteString("if ")
		p.expr(n.Cond)
		p.WriteByte(' ')
		p.block(n.Then)

		if n.Else != nil {
			p.WriteString(" else ")
			p.expr(n.Else)
		}

	case *IndexExpr:
		p.operand(n.X)
		p.WriteByte('[')
		p.expr(n.Index)
		p.WriteByte(']')

	case *InferExpr:
		p.WriteByte('_')

	case *LetExpr:
		p.WriteString("let ")
		p.pat(n.Pat)
		p.WriteString(" = ")
		p.expr(n.X)

	case *LitExpr:
		p.WriteString(n.Value)

	case *LoopExpr:
		p.label(n.Label)
		p.WriteString("loop ")
		p.block(n.Body)

	case *MacroExpr:
		p.macro(n.Mac)

	case *MatchExpr:
		p.match(n)

	case *MethodCallExpr:
		p.operand(n.Recv)
		p.WriteString("." + n.Method)

		if n.Args != "" {
			p.WriteString("::" + n.Args)
		}

		p.WriteByte('(')
		p.exprList(n.Params)
		p.WriteByte(')')

	case *ParenExpr:
		p.WriteByte('(')
		p.expr(n.X)
		p.WriteByte(')')

	case *PathExpr:
		p.path(n.Path)

	case *RangeExpr:
		if n.From != nil {
			p.operand(n.From)
		}

		if n.Closed {
			p.WriteString("..=")
		} else {
			p.WriteString("..")
		}

		if n.To != nil {
			p.expr(n.To)
		}

	case *RefExpr:
		p.WriteByte('&')

		if n.Mut {
			p.WriteString("mut ")
		}

		p.expr(n.X)

	case *RepeatExpr:
		p.WriteByte('[')
		p.expr(n.Elem)
		p.WriteString("; ")
		p.expr(n.Len)
		p.WriteByte(']')

	case *ReturnExpr:
		p.WriteString("return")

		if n.Value != nil {
			p.WriteByte(' ')
			p.expr(n.Value)
		}

	case *StructExpr:
		p.structExpr(n)

	case *TryBlockExpr:
		p.WriteString("try ")
		p.block(n.Block)

	case *TryExpr:
		p.operand(n.X)
		p.WriteByte('?')

	case *TupleExpr:
		p.WriteByte('(')
		p.exprList(n.Elems)

		if len(n.Elems) == 1 {
			p.WriteByte(',')
		}

		p.WriteByte(')')

	case *UnaryExpr:
		p.WriteString(n.Op)
		p.expr(n.X)

	case *UnsafeExpr:
		p.WriteString("unsafe ")
		p.block(n.Block)

	case *WhileExpr:
		p.label(n.Label)
		p.WriteString("while ")
		p.expr(n.Cond)
		p.WriteByte(' ')
		p.block(n.Body)

	case *YieldExpr:
		p.WriteString("yield")

		if n.Value != nil {
			p.WriteByte(' ')
			p.expr(n.Value)
		}
		// keep-sorted end
	}
}

func (p *printer) closure(c *ClosureExpr) {
	if c.Async {
		p.WriteString("async ")
	}

	if c.Move {
		p.WriteString("move ")
	}

	if len(c.Params) == 0 {
		p.WriteString("||")
	} else {
		p.WriteByte('|')

		for i, param := range c.Params {
			if i > 0 {
				p.WriteString(", ")
			}

			p.pat(param.Pat)

			if param.Type != nil {
				p.WriteString(": ")
				p.WriteString(param.Type.Text)
			}
		}

		p.WriteByte('|')
	}

	if c.Result != nil {
		p.WriteString(" -> ")
		p.WriteString(c.Result.Text)
	}

	p.WriteByte(' ')
	p.expr(c.Body)
}

func (p *printer) match(m *MatchExpr) {
	p.WriteString("match ")
	p.expr(m.X)

	if len(m.Arms) == 0 {
		p.WriteString(" {}")
		return
	}

	p.WriteString(" {")
	p.indent++

	for _, arm := range m.Arms {
		p.newline()
		p.leading(&arm.Comments)
		p.attrs(arm.Attrs)
		p.pat(arm.Pat)

		if arm.Guard != nil {
			p.WriteString(" if ")
			p.expr(arm.Guard)
		}

		p.WriteString(" => ")
		p.expr(arm.Body)

		if _, ok := arm.Body.(*BlockExpr); !ok {
			p.WriteByte(',')
		}

		p.trailing(&arm.Comments)
	}

	p.indent--
	p.newline()
	p.WriteByte('}')
}

func (p *printer) structExpr(s *StructExpr) {
	p.path(s.Path)

	if len(s.Fields) == 0 && s.Rest == nil {
		p.WriteString(" {}")
		return
	}

	p.WriteString(" { ")

	for i, f := range s.Fields {
		if i > 0 {
			p.WriteString(", ")
		}

		if f.Shorthand {
			p.WriteString(f.Name)
			continue
		}

		p.WriteString(f.Name + ": ")
		p.expr(f.Value)
	}

	if s.Rest != nil {
		if len(s.Fields) > 0 {
			p.WriteString(", ")
		}

		p.WriteString("..")
		p.expr(s.Rest)
	}

	p.WriteString(" }")
}

func (p *printer) patList(list []Pat) {
	for i, x := range list {
		if i > 0 {
			p.WriteString(", ")
		}

		p.pat(x)
	}
}

func (p *printer) pat(pat Pat) {
	switch n := pat.(type) {
	// keep-sorted start
	case *IdentPat:
		if n.ByRef {
			p.WriteString("ref ")
		}

		if n.Mut {
			p.WriteString("mut ")
		}

		p.WriteString(n.Name)

		if n.Sub != nil {
			p.WriteString(" @ ")
			p.pat(n.Sub)
		}

	case *LitPat:
		p.expr(n.X)

	case *OrPat:
		for i, c := range n.Cases {
			if i > 0 {
				p.WriteString(" | ")
			}

			p.pat(c)
		}

	case *ParenPat:
		p.WriteByte('(')
		p.pat(n.Pat)
		p.WriteByte(')')

	case *PathPat:
		p.path(n.Path)

	case *RangePat:
		if n.Lo != nil {
			p.expr(n.Lo)
		}

		if n.Closed {
			p.WriteString("..=")
		} else {
			p.WriteString("..")
		}

		if n.Hi != nil {
			p.expr(n.Hi)
		}

	case *RefPat:
		p.WriteByte('&')

		if n.Mut {
			p.WriteString("mut ")
		}

		p.pat(n.Pat)

	case *RestPat:
		p.WriteString("..")

	case *SlicePat:
		p.WriteByte('[')
		p.patList(n.Elems)
		p.WriteByte(']')

	case *StructPat:
		p.structPat(n)

	case *TuplePat:
		p.WriteByte('(')
		p.patList(n.Elems)

		if len(n.Elems) == 1 {
			if _, rest := n.Elems[0].(*RestPat); !rest {
				p.WriteByte(',')
			}
		}

		p.WriteByte(')')

	case *TupleStructPat:
		p.path(n.Path)
		p.WriteByte('(')
		p.patList(n.Elems)
		p.WriteByte(')')

	case *TypePat:
		p.pat(n.Pat)
		p.WriteString(": ")
		p.WriteString(n.Type.Text)

	case *WildPat:
		p.WriteByte('_')
		// keep-sorted end
	}
}

func (p *printer) structPat(s *StructPat) {
	p.path(s.Path)

	if len(s.Fields) == 0 && !s.Rest {
		p.WriteString(" {}")
		return
	}

	p.WriteString(" { ")

	for i, f := range s.Fields {
		if i > 0 {
			p.WriteString(", ")
		}

		if !f.Shorthand {
			p.WriteString(f.Name + ": ")
		}

		p.pat(f.Pat)
	}

	if s.Rest {
		if len(s.Fields) > 0 {
			p.WriteString(", ")
		}

		p.WriteString("..")
	}

	p.WriteString(" }")
}

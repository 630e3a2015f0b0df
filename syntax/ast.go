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

// Package syntax defines a syntax tree for a subset of Rust, together with a
// scanner, a parser and a printer.
//
// The tree is a closed set of node types: expressions ([Expr]), statements
// ([Stmt]), patterns ([Pat]) and items ([Item]). Types, attributes, macro
// bodies and items other than functions, constants and statics are kept as
// source text and printed verbatim.
package syntax

// Node is implemented by all syntax tree nodes.
type Node interface {
	Pos() Pos
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pat is a pattern node.
type Pat interface {
	Node
	patNode()
}

// Item is an item declaration.
type Item interface {
	Node
	itemNode()
}

// ----------------------------------------------------------------------------
// Shared pieces

// File is a parsed source file. End holds the comments after the last item.
type File struct {
	Items []Item
	End   []Comment
}

// Block is a brace-delimited statement list. A final [ExprStmt] without
// semicolon is the block's value. End holds the comments before the closing
// brace.
type Block struct {
	Start Pos
	Stmts []Stmt
	End   []Comment
}

// Comments are the comments attached to a statement, an item or a match arm.
// Leading comments precede the node, trailing comments follow it on its last
// line. Comments inside expressions are attached to the enclosing statement.
type Comments struct {
	Leading  []Comment
	Trailing []Comment
}

// CommentsOf returns the comments attached to n, or nil when n can't carry
// comments.
func CommentsOf(n Node) *Comments {
	switch n := n.(type) {
	// keep-sorted start
	case *Arm:
		return &n.Comments
	case *BlockItem:
		return &n.Comments
	case *ConstItem:
		return &n.Comments
	case *ExprStmt:
		return &n.Comments
	case *FnItem:
		return &n.Comments
	case *ItemStmt:
		return CommentsOf(n.Item)
	case *LocalStmt:
		return &n.Comments
	case *MacroStmt:
		return &n.Comments
	case *RawItem:
		return &n.Comments
		// keep-sorted end
	}

	return nil
}

// Path is an expression or pattern path like a::b::<T>::c.
type Path struct {
	Start    Pos
	Global   bool // leading ::
	Segments []PathSegment
}

// PathSegment is one element of a [Path]. Args holds generic arguments
// including angle brackets, e.g. "<String>".
type PathSegment struct {
	Name string
	Args string
}

// Ident returns the name of a single-segment path without leading colons or
// generic arguments.
func (p *Path) Ident() (string, bool) {
	if p.Global || len(p.Segments) != 1 || p.Segments[0].Args != "" {
		return "", false
	}

	return p.Segments[0].Name, true
}

// Type is a type, kept as normalized source text.
type Type struct {
	Start Pos
	Text  string
}

// Attr is an outer attribute like #[name(args)].
type Attr struct {
	Start Pos
	Text  string // complete source text
	Name  string // attribute path
	Args  string // text between the parentheses, if any
}

// Param is a function or closure parameter. Receiver holds the text of a
// self parameter, in which case Pat is nil.
type Param struct {
	Start    Pos
	Receiver string
	Pat      Pat
	Type     *Type // optional for closures
}

// Macro is a macro invocation. Text is the verbatim source between the
// delimiters, Tokens its tokens.
type Macro struct {
	Start  Pos
	Path   *Path
	Delim  byte // '(', '[' or '{'
	Text   string
	Tokens []Token
}

// ----------------------------------------------------------------------------
// Expressions

type (
	// ArrayExpr is [a, b, c].
	ArrayExpr struct {
		Start Pos
		Elems []Expr
	}

	// AssignExpr is a plain or compound assignment.
	AssignExpr struct {
		Start       Pos
		Op          string // "=", "+=", ...
		Left, Right Expr
	}

	// AsyncExpr is an async block.
	AsyncExpr struct {
		Start Pos
		Move  bool
		Block *Block
	}

	// AwaitExpr is x.await.
	AwaitExpr struct {
		Start Pos
		X     Expr
	}

	// BinaryExpr is a binary operation.
	BinaryExpr struct {
		Start Pos
		Op    string
		X, Y  Expr
	}

	// BlockExpr is a (possibly labeled) block.
	BlockExpr struct {
		Start Pos
		Label string
		Block *Block
	}

	// BreakExpr is break with optional label and value.
	BreakExpr struct {
		Start Pos
		Label string
		Value Expr
	}

	// CallExpr is a function call.
	CallExpr struct {
		Start Pos
		Fun   Expr
		Args  []Expr
	}

	// CastExpr is x as T.
	CastExpr struct {
		Start Pos
		X     Expr
		Type  *Type
	}

	// ClosureExpr is a closure. Result is only set with a block body.
	ClosureExpr struct {
		Start  Pos
		Async  bool
		Move   bool
		Params []*Param
		Result *Type
		Body   Expr
	}

	// ContinueExpr is continue with optional label.
	ContinueExpr struct {
		Start Pos
		Label string
	}

	// FieldExpr is x.name or x.0.
	FieldExpr struct {
		Start Pos
		X     Expr
		Name  string
	}

	// ForExpr is a for loop.
	ForExpr struct {
		Start Pos
		Label string
		Pat   Pat
		Iter  Expr
		Body  *Block
	}

	// IfExpr is an if expression. Else is nil, an *IfExpr or a *BlockExpr.
	IfExpr struct {
		Start Pos
		Cond  Expr
		Then  *Block
		Else  Expr
	}

	// IndexExpr is x[i].
	IndexExpr struct {
		Start Pos
		X     Expr
		Index Expr
	}

	// InferExpr is the placeholder _ in destructuring assignments.
	InferExpr struct {
		Start Pos
	}

	// LetExpr is a let guard in an if or while condition.
	LetExpr struct {
		Start Pos
		Pat   Pat
		X     Expr
	}

	// LitExpr is a literal.
	LitExpr struct {
		Start Pos
		Kind  LitKind
		Value string
	}

	// LoopExpr is an infinite loop.
	LoopExpr struct {
		Start Pos
		Label string
		Body  *Block
	}

	// MacroExpr is a macro invocation in expression position.
	MacroExpr struct {
		Mac *Macro
	}

	// MatchExpr is a match expression.
	MatchExpr struct {
		Start Pos
		X     Expr
		Arms  []*Arm
	}

	// MethodCallExpr is recv.method::<T>(args).
	MethodCallExpr struct {
		Start  Pos
		Recv   Expr
		Method string
		Args   string // turbofish generic arguments, e.g. "<u32>"
		Params []Expr
	}

	// ParenExpr is a parenthesized expression.
	ParenExpr struct {
		Start Pos
		X     Expr
	}

	// PathExpr is a path used as an expression, usually a variable reference.
	PathExpr struct {
		Path *Path
	}

	// RangeExpr is from..to or from..=to, both ends optional.
	RangeExpr struct {
		Start    Pos
		From, To Expr
		Closed   bool
	}

	// RefExpr is &x or &mut x.
	RefExpr struct {
		Start Pos
		Mut   bool
		X     Expr
	}

	// RepeatExpr is [elem; len].
	RepeatExpr struct {
		Start Pos
		Elem  Expr
		Len   Expr
	}

	// ReturnExpr is return with optional value.
	ReturnExpr struct {
		Start Pos
		Value Expr
	}

	// StructExpr is a struct literal Path { field: value, ..rest }.
	StructExpr struct {
		Start  Pos
		Path   *Path
		Fields []*FieldValue
		Rest   Expr
	}

	// TryExpr is x?.
	TryExpr struct {
		Start Pos
		X     Expr
	}

	// TryBlockExpr is try { ... }.
	TryBlockExpr struct {
		Start Pos
		Block *Block
	}

	// TupleExpr is (a, b) or the unit value ().
	TupleExpr struct {
		Start Pos
		Elems []Expr
	}

	// UnaryExpr is -x, !x or *x.
	UnaryExpr struct {
		Start Pos
		Op    string
		X     Expr
	}

	// UnsafeExpr is unsafe { ... }.
	UnsafeExpr struct {
		Start Pos
		Block *Block
	}

	// WhileExpr is a while or while let loop.
	WhileExpr struct {
		Start Pos
		Label string
		Cond  Expr
		Body  *Block
	}

	// YieldExpr is yield with optional value.
	YieldExpr struct {
		Start Pos
		Value Expr
	}
)

// Arm is a match arm.
type Arm struct {
	Start    Pos
	Comments Comments
	Attrs    []*Attr
	Pat      Pat
	Guard    Expr
	Body     Expr
}

// Pos returns the position of the arm's pattern.
func (a *Arm) Pos() Pos { return a.Start }

// FieldValue is a field initializer in a struct literal.
type FieldValue struct {
	Start     Pos
	Name      string
	Value     Expr
	Shorthand bool
}

// LitKind classifies literals.
type LitKind uint8

//go:generate go tool stringer -type LitKind -trimprefix Lit

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitChar
	LitBool
)

func (x *ArrayExpr) Pos() Pos      { return x.Start }
func (x *AssignExpr) Pos() Pos     { return x.Start }
func (x *AsyncExpr) Pos() Pos      { return x.Start }
func (x *AwaitExpr) Pos() Pos      { return x.Start }
func (x *BinaryExpr) Pos() Pos     { return x.Start }
func (x *BlockExpr) Pos() Pos      { return x.Start }
func (x *BreakExpr) Pos() Pos      { return x.Start }
func (x *CallExpr) Pos() Pos       { return x.Start }
func (x *CastExpr) Pos() Pos       { return x.Start }
func (x *ClosureExpr) Pos() Pos    { return x.Start }
func (x *ContinueExpr) Pos() Pos   { return x.Start }
func (x *FieldExpr) Pos() Pos      { return x.Start }
func (x *ForExpr) Pos() Pos        { return x.Start }
func (x *IfExpr) Pos() Pos         { return x.Start }
func (x *IndexExpr) Pos() Pos      { return x.Start }
func (x *InferExpr) Pos() Pos      { return x.Start }
func (x *LetExpr) Pos() Pos        { return x.Start }
func (x *LitExpr) Pos() Pos        { return x.Start }
func (x *LoopExpr) Pos() Pos       { return x.Start }
func (x *MacroExpr) Pos() Pos      { return x.Mac.Start }
func (x *MatchExpr) Pos() Pos      { return x.Start }
func (x *MethodCallExpr) Pos() Pos { return x.Start }
func (x *ParenExpr) Pos() Pos      { return x.Start }
func (x *PathExpr) Pos() Pos       { return x.Path.Start }
func (x *RangeExpr) Pos() Pos      { return x.Start }
func (x *RefExpr) Pos() Pos        { return x.Start }
func (x *RepeatExpr) Pos() Pos     { return x.Start }
func (x *ReturnExpr) Pos() Pos     { return x.Start }
func (x *StructExpr) Pos() Pos     { return x.Start }
func (x *TryExpr) Pos() Pos        { return x.Start }
func (x *TryBlockExpr) Pos() Pos   { return x.Start }
func (x *TupleExpr) Pos() Pos      { return x.Start }
func (x *UnaryExpr) Pos() Pos      { return x.Start }
func (x *UnsafeExpr) Pos() Pos     { return x.Start }
func (x *WhileExpr) Pos() Pos      { return x.Start }
func (x *YieldExpr) Pos() Pos      { return x.Start }

func (*ArrayExpr) exprNode()      {}
func (*AssignExpr) exprNode()     {}
func (*AsyncExpr) exprNode()      {}
func (*AwaitExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*BlockExpr) exprNode()      {}
func (*BreakExpr) exprNode()      {}
func (*CallExpr) exprNode()       {}
func (*CastExpr) exprNode()       {}
func (*ClosureExpr) exprNode()    {}
func (*ContinueExpr) exprNode()   {}
func (*FieldExpr) exprNode()      {}
func (*ForExpr) exprNode()        {}
func (*IfExpr) exprNode()         {}
func (*IndexExpr) exprNode()      {}
func (*InferExpr) exprNode()      {}
func (*LetExpr) exprNode()        {}
func (*LitExpr) exprNode()        {}
func (*LoopExpr) exprNode()       {}
func (*MacroExpr) exprNode()      {}
func (*MatchExpr) exprNode()      {}
func (*MethodCallExpr) exprNode() {}
func (*ParenExpr) exprNode()      {}
func (*PathExpr) exprNode()       {}
func (*RangeExpr) exprNode()      {}
func (*RefExpr) exprNode()        {}
func (*RepeatExpr) exprNode()     {}
func (*ReturnExpr) exprNode()     {}
func (*StructExpr) exprNode()     {}
func (*TryExpr) exprNode()        {}
func (*TryBlockExpr) exprNode()   {}
func (*TupleExpr) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*UnsafeExpr) exprNode()     {}
func (*WhileExpr) exprNode()      {}
func (*YieldExpr) exprNode()      {}

// ----------------------------------------------------------------------------
// Statements

type (
	// LocalStmt is a let binding. A type annotation is part of Pat as a [TypePat].
	LocalStmt struct {
		Start    Pos
		Comments Comments
		Attrs    []*Attr
		Pat      Pat
		Init     Expr   // optional
		Else     *Block // let-else, optional
	}

	// ItemStmt is an item declared inside a block.
	ItemStmt struct {
		Item Item
	}

	// ExprStmt is an expression statement.
	ExprStmt struct {
		Comments Comments
		Attrs    []*Attr
		X        Expr
		Semi     bool
	}

	// MacroStmt is a macro invocation in statement position.
	MacroStmt struct {
		Comments Comments
		Attrs    []*Attr
		Mac      *Macro
		Semi     bool
	}
)

func (s *LocalStmt) Pos() Pos { return s.Start }
func (s *ItemStmt) Pos() Pos  { return s.Item.Pos() }
func (s *ExprStmt) Pos() Pos {
	if len(s.Attrs) > 0 {
		return s.Attrs[0].Start
	}

	return s.X.Pos()
}

func (s *MacroStmt) Pos() Pos {
	if len(s.Attrs) > 0 {
		return s.Attrs[0].Start
	}

	return s.Mac.Start
}

func (*LocalStmt) stmtNode() {}
func (*ItemStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()  {}
func (*MacroStmt) stmtNode() {}

// ----------------------------------------------------------------------------
// Patterns

type (
	// IdentPat binds a name: ref mut name @ sub.
	IdentPat struct {
		Start Pos
		ByRef bool
		Mut   bool
		Name  string
		Sub   Pat
	}

	// WildPat is _.
	WildPat struct {
		Start Pos
	}

	// RestPat is .. inside tuple, slice and tuple-struct patterns.
	RestPat struct {
		Start Pos
	}

	// LitPat is a literal pattern, possibly negated.
	LitPat struct {
		Start Pos
		X     Expr
	}

	// RangePat is lo..=hi or lo..hi.
	RangePat struct {
		Start  Pos
		Lo, Hi Expr
		Closed bool
	}

	// PathPat is a path like Ordering::Less.
	PathPat struct {
		Path *Path
	}

	// TuplePat is (a, b).
	TuplePat struct {
		Start Pos
		Elems []Pat
	}

	// TupleStructPat is Some(x).
	TupleStructPat struct {
		Path  *Path
		Elems []Pat
	}

	// StructPat is Point { x, y: b, .. }.
	StructPat struct {
		Path   *Path
		Fields []*FieldPat
		Rest   bool
	}

	// RefPat is &p or &mut p.
	RefPat struct {
		Start Pos
		Mut   bool
		Pat   Pat
	}

	// OrPat is a | b.
	OrPat struct {
		Start Pos
		Cases []Pat
	}

	// TypePat is a pattern with type annotation, as in let x: T.
	TypePat struct {
		Pat  Pat
		Type *Type
	}

	// SlicePat is [a, .., b].
	SlicePat struct {
		Start Pos
		Elems []Pat
	}

	// ParenPat is (p).
	ParenPat struct {
		Start Pos
		Pat   Pat
	}
)

// FieldPat is a field in a struct pattern.
type FieldPat struct {
	Start     Pos
	Name      string
	Pat       Pat
	Shorthand bool
}

func (p *IdentPat) Pos() Pos       { return p.Start }
func (p *WildPat) Pos() Pos        { return p.Start }
func (p *RestPat) Pos() Pos        { return p.Start }
func (p *LitPat) Pos() Pos         { return p.Start }
func (p *RangePat) Pos() Pos       { return p.Start }
func (p *PathPat) Pos() Pos        { return p.Path.Start }
func (p *TuplePat) Pos() Pos       { return p.Start }
func (p *TupleStructPat) Pos() Pos { return p.Path.Start }
func (p *StructPat) Pos() Pos      { return p.Path.Start }
func (p *RefPat) Pos() Pos         { return p.Start }
func (p *OrPat) Pos() Pos          { return p.Start }
func (p *TypePat) Pos() Pos        { return p.Pat.Pos() }
func (p *SlicePat) Pos() Pos       { return p.Start }
func (p *ParenPat) Pos() Pos       { return p.Start }

func (*IdentPat) patNode()       {}
func (*WildPat) patNode()        {}
func (*RestPat) patNode()        {}
func (*LitPat) patNode()         {}
func (*RangePat) patNode()       {}
func (*PathPat) patNode()        {}
func (*TuplePat) patNode()       {}
func (*TupleStructPat) patNode() {}
func (*StructPat) patNode()      {}
func (*RefPat) patNode()         {}
func (*OrPat) patNode()          {}
func (*TypePat) patNode()        {}
func (*SlicePat) patNode()       {}
func (*ParenPat) patNode()       {}

// ----------------------------------------------------------------------------
// Items

type (
	// FnItem is a function. Sig is the normalized signature text up to the body.
	FnItem struct {
		Start    Pos
		Comments Comments
		Attrs    []*Attr
		Sig      string
		Name     string
		Params   []*Param
		Body     *Block
	}

	// ConstItem is a const or static item.
	ConstItem struct {
		Start    Pos
		Comments Comments
		Attrs    []*Attr
		Vis      string
		Static   bool
		Mut      bool
		Name     string
		Type     *Type
		Value    Expr
	}

	// RawItem is any other item, kept as source text.
	RawItem struct {
		Start    Pos
		Comments Comments
		Attrs    []*Attr
		Text     string
	}

	// BlockItem is an impl, trait, extern block or inline module. Header is
	// the normalized text before the opening brace.
	BlockItem struct {
		Start    Pos
		Comments Comments
		Attrs    []*Attr
		Header   string
		Items    []Item
		End      []Comment
	}
)

func (i *FnItem) Pos() Pos    { return i.Start }
func (i *ConstItem) Pos() Pos { return i.Start }
func (i *RawItem) Pos() Pos   { return i.Start }
func (i *BlockItem) Pos() Pos { return i.Start }

func (*FnItem) itemNode()    {}
func (*ConstItem) itemNode() {}
func (*RawItem) itemNode()   {}
func (*BlockItem) itemNode() {}

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

import "fillmore-labs.com/clonecapture/syntax"

func (c *collector) expr(x syntax.Expr) syntax.Expr {
	if x == nil {
		return nil
	}

	c.visit(x)

	switch n := x.(type) {
	// keep-sorted start newline_separated=yes
	case *syntax.ArrayExpr:
		r := *n
		r.Elems = c.exprs(n.Elems)

		return &r

	case *syntax.AssignExpr:
		r := *n
		r.Left = c.expr(n.Left)
		r.Right = c.expr(n.Right)

		return &r

	case *syntax.AsyncExpr:
		return c.async(n)

	case *syntax.AwaitExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.BinaryExpr:
		r := *n
		r.X = c.expr(n.X)
		r.Y = c.expr(n.Y)

		return &r

	case *syntax.BlockExpr:
		r := *n
		r.Block = c.block(n, n.Block)

		return &r

	case *syntax.BreakExpr:
		r := *n
		r.Value = c.expr(n.Value)

		return &r

	case *syntax.CallExpr:
		r := *n
		r.Fun = c.expr(n.Fun)
		r.Args = c.exprs(n.Args)

		return &r

	case *syntax.CastExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.ClosureExpr:
		return c.closure(n)

	case *syntax.ContinueExpr, *syntax.InferExpr, *syntax.LitExpr:
		return x

	case *syntax.FieldExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.ForExpr:
		return c.forExpr(n)

	case *syntax.IfExpr:
		return c.ifExpr(n)

	case *syntax.IndexExpr:
		r := *n
		r.X = c.expr(n.X)
		r.Index = c.expr(n.Index)

		return &r

	case *syntax.LetExpr:
		// binds into the frame of the enclosing if or while
		r := *n
		r.X = c.expr(n.X)
		c.bind(n.Pat)

		return &r

	case *syntax.LoopExpr:
		r := *n
		r.Body = c.block(n, n.Body)

		return &r

	case *syntax.MacroExpr:
		c.macro(n.Mac)

		return x

	case *syntax.MatchExpr:
		return c.match(n)

	case *syntax.MethodCallExpr:
		r := *n
		r.Recv = c.expr(n.Recv)
		r.Params = c.exprs(n.Params)

		return &r

	case *syntax.ParenExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.PathExpr:
		c.path(n.Path)

		return x

	case *syntax.RangeExpr:
		r := *n
		r.From = c.expr(n.From)
		r.To = c.expr(n.To)

		return &r

	case *syntax.RefExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.RepeatExpr:
		r := *n
		r.Elem = c.expr(n.Elem)
		r.Len = c.expr(n.Len)

		return &r

	case *syntax.ReturnExpr:
		r := *n
		r.Value = c.expr(n.Value)

		return &r

	case *syntax.StructExpr:
		return c.structExpr(n)

	case *syntax.TryBlockExpr:
		r := *n
		r.Block = c.block(n, n.Block)

		return &r

	case *syntax.TryExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.TupleExpr:
		r := *n
		r.Elems = c.exprs(n.Elems)

		return &r

	case *syntax.UnaryExpr:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.UnsafeExpr:
		r := *n
		r.Block = c.block(n, n.Block)

		return &r

	case *syntax.WhileExpr:
		return c.whileExpr(n)

	case *syntax.YieldExpr:
		r := *n
		r.Value = c.expr(n.Value)

		return &r
		// keep-sorted end
	}

	c.unhandled(x)

	return x
}

func (c *collector) exprs(list []syntax.Expr) []syntax.Expr {
	if list == nil {
		return nil
	}

	r := make([]syntax.Expr, len(list))
	for i, x := range list {
		r[i] = c.expr(x)
	}

	return r
}

// closure walks a closure in its own frame, capturing for move closures.
// Parameters are bound in the closure frame.
func (c *collector) closure(n *syntax.ClosureExpr) syntax.Expr {
	c.enter(n, n.Move)

	for _, param := range n.Params {
		c.bind(param.Pat)
	}

	r := *n
	r.Body = c.expr(n.Body)

	return c.boundary(n, &r)
}

// async walks an async block in its own frame, capturing for async move blocks.
func (c *collector) async(n *syntax.AsyncExpr) syntax.Expr {
	c.enter(n, n.Move)

	r := *n
	r.Block = c.stmtsOf(n.Block)

	return c.boundary(n, &r)
}

// ifExpr walks condition and then branch in one frame, so if let bindings
// are visible in the then branch only.
func (c *collector) ifExpr(n *syntax.IfExpr) syntax.Expr {
	r := *n

	c.enter(n, false)
	r.Cond = c.expr(n.Cond)
	r.Then = c.stmtsOf(n.Then)
	c.exit(n)

	r.Else = c.expr(n.Else)

	return &r
}

func (c *collector) whileExpr(n *syntax.WhileExpr) syntax.Expr {
	r := *n

	c.enter(n, false)
	r.Cond = c.expr(n.Cond)
	r.Body = c.stmtsOf(n.Body)
	c.exit(n)

	return &r
}

// forExpr evaluates the iterator outside the loop frame.
func (c *collector) forExpr(n *syntax.ForExpr) syntax.Expr {
	r := *n
	r.Iter = c.expr(n.Iter)

	c.enter(n, false)
	c.bind(n.Pat)
	r.Body = c.stmtsOf(n.Body)
	c.exit(n)

	return &r
}

// match walks every arm in its own frame.
func (c *collector) match(n *syntax.MatchExpr) syntax.Expr {
	r := *n
	r.X = c.expr(n.X)
	r.Arms = make([]*syntax.Arm, len(n.Arms))

	for i, arm := range n.Arms {
		a := *arm

		c.enter(arm, false)
		c.bind(arm.Pat)
		a.Guard = c.expr(arm.Guard)
		a.Body = c.expr(arm.Body)
		c.exit(arm)

		r.Arms[i] = &a
	}

	return &r
}

func (c *collector) structExpr(n *syntax.StructExpr) syntax.Expr {
	r := *n
	r.Fields = make([]*syntax.FieldValue, len(n.Fields))

	for i, field := range n.Fields {
		f := *field
		f.Value = c.expr(field.Value)
		r.Fields[i] = &f
	}

	r.Rest = c.expr(n.Rest)

	return &r
}

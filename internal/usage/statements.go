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

// block walks b in a new non-capturing frame opened for n.
func (c *collector) block(n syntax.Node, b *syntax.Block) *syntax.Block {
	c.enter(n, false)
	r := c.stmtsOf(b)
	c.exit(n)

	return r
}

// stmtsOf walks b in the current frame.
func (c *collector) stmtsOf(b *syntax.Block) *syntax.Block {
	r := *b
	r.Stmts = c.stmts(b.Stmts)

	return &r
}

func (c *collector) stmts(list []syntax.Stmt) []syntax.Stmt {
	r := make([]syntax.Stmt, 0, len(list))
	for _, s := range list {
		r = append(r, c.stmt(s))
	}

	return r
}

func (c *collector) stmt(s syntax.Stmt) syntax.Stmt {
	c.visit(s)

	switch n := s.(type) {
	// keep-sorted start newline_separated=yes
	case *syntax.ExprStmt:
		r := *n
		r.X = c.expr(n.X)

		return &r

	case *syntax.ItemStmt:
		return &syntax.ItemStmt{Item: c.item(n.Item)}

	case *syntax.LocalStmt:
		return c.local(n)

	case *syntax.MacroStmt:
		c.macro(n.Mac)

		return n
		// keep-sorted end
	}

	c.unhandled(s)

	return s
}

// local walks a let statement. The pattern binds after the initializer and
// the else block, so `let x = x;` refers to the outer x.
func (c *collector) local(n *syntax.LocalStmt) syntax.Stmt {
	r := *n
	r.Init = c.expr(n.Init)

	if n.Else != nil {
		r.Else = c.block(n, n.Else)
	}

	c.bind(n.Pat)

	return &r
}

// item walks an item declared inside a function body.
func (c *collector) item(it syntax.Item) syntax.Item {
	switch n := it.(type) {
	// keep-sorted start newline_separated=yes
	case *syntax.BlockItem, *syntax.RawItem:
		return it

	case *syntax.ConstItem:
		r := *n
		r.Value = c.expr(n.Value)

		return &r

	case *syntax.FnItem:
		// Inner functions can't refer to the outer bindings.
		body, err := c.stage.Rewrite(c.ctx, n)
		if err != nil {
			c.fail(err)

			return n
		}

		r := *n
		r.Body = body

		return &r
		// keep-sorted end
	}

	c.unhandled(it)

	return it
}

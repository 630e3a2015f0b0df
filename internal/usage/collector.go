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
	"context"
	"log/slog"

	"fillmore-labs.com/clonecapture/internal/astutil"
	"fillmore-labs.com/clonecapture/internal/fix"
	"fillmore-labs.com/clonecapture/internal/scope"
	"fillmore-labs.com/clonecapture/syntax"
)

// collector walks a function body, tracks bindings and usages per frame and
// rebuilds the tree with duplicated captures.
type collector struct {
	// ctx is the context of the current [Stage.Rewrite] call, used for nested functions.
	ctx context.Context

	// stage is the configuration nested functions are rewritten with.
	stage Stage

	// scope tracks bound and used names of the enclosing frames.
	scope *scope.Tracker

	log        *slog.Logger
	exempt     func(string) bool
	formatArgs bool

	// err is the first error encountered; the walk continues but the result is discarded.
	err error
}

func (c *collector) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *collector) unhandled(n syntax.Node) {
	c.fail(astutil.InternalError(n.Pos(), scope.Name(n), "%w", ErrUnhandled))
}

// visit traces a visited node.
func (c *collector) visit(n syntax.Node) {
	c.log.LogAttrs(c.ctx, slog.LevelDebug, "visit",
		slog.String("node", scope.Name(n)),
		slog.String("pos", n.Pos().String()),
		slog.Any("src", source{n}))
}

// enter opens a frame for node.
func (c *collector) enter(n syntax.Node, capturing bool) {
	c.scope.Enter(capturing)
	c.log.LogAttrs(c.ctx, slog.LevelDebug, "enter",
		slog.String("scope", scope.Name(n)),
		slog.Int("depth", c.scope.Depth()),
		slog.Bool("capturing", capturing))
}

// exit closes the frame opened for node.
func (c *collector) exit(n syntax.Node) *scope.Frame {
	f, err := c.scope.Exit()
	if err != nil {
		c.fail(astutil.InternalError(n.Pos(), scope.Name(n), "%w", err))

		return &scope.Frame{}
	}

	return f
}

// boundary closes the frame of a closure or async block and duplicates the
// captured names in front of the rebuilt expression x.
func (c *collector) boundary(n syntax.Node, x syntax.Expr) syntax.Expr {
	f := c.exit(n)
	if !f.Capturing || len(f.Used) == 0 {
		return x
	}

	c.log.LogAttrs(c.ctx, slog.LevelDebug, "capture",
		slog.String("scope", scope.Name(n)),
		slog.String("pos", n.Pos().String()),
		slog.Any("names", f.Used))

	wrapped, err := fix.Wrap(f.Used.All(), x)
	if err != nil {
		c.fail(astutil.InternalError(n.Pos(), scope.Name(n), "%w", err))

		return x
	}

	return wrapped
}

func (c *collector) bind(pat syntax.Pat) {
	c.scope.Bind(astutil.BoundNames(pat, c.exempt))
}

func (c *collector) use(name string) {
	c.scope.RecordUsage(name)
}

// path records a usage for plain identifier paths.
func (c *collector) path(p *syntax.Path) {
	if name, ok := p.Ident(); ok {
		c.use(name)
	}
}

// source formats a node lazily for the trace.
type source struct{ node syntax.Node }

func (s source) LogValue() slog.Value {
	b, err := syntax.Format(s.node)
	if err != nil {
		return slog.StringValue(err.Error())
	}

	return slog.StringValue(string(b))
}

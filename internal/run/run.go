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

package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/clonecapture/internal/astutil"
	"fillmore-labs.com/clonecapture/internal/usage"
	"fillmore-labs.com/clonecapture/syntax"
)

// ErrNoBody is returned for function declarations without a body.
var ErrNoBody = errors.New("function without body")

// Error is a failure to rewrite a single function.
type Error struct {
	Func string
	Pos  syntax.Pos
	Err  error
}

func newError(fn *syntax.FnItem, err error) *Error {
	pos := fn.Start

	var nodeErr *astutil.NodeError
	if errors.As(err, &nodeErr) && nodeErr.Pos.IsValid() {
		pos = nodeErr.Pos
	}

	return &Error{Func: fn.Name, Pos: pos, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: fn %s: %v", e.Pos, e.Func, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run rewrites a single function, duplicating the values captured by its
// move closures and async move blocks. fn is not modified.
func (r *Options) Run(ctx context.Context, fn *syntax.FnItem) (*syntax.FnItem, error) {
	ctx, task := trace.NewTask(ctx, "CloneOnCapture")
	defer task.End()

	trace.Log(ctx, "function", fn.Name)

	if fn.Body == nil {
		return nil, newError(fn, ErrNoBody)
	}

	logger := r.logger().With(slog.String("fn", fn.Name))
	logger.LogAttrs(ctx, slog.LevelDebug, "rewrite",
		slog.String("pos", fn.Start.String()),
		slog.Any("flags", r.Behavior.Bits()))

	us := usage.Stage{
		Exempt:   r.Exempt,
		Behavior: r.Behavior,
		Logger:   logger,
	}

	// Stage 1: Track bindings and usages, wrapping every capturing boundary
	body, err := us.Rewrite(ctx, fn)
	if err != nil {
		return nil, newError(fn, err)
	}

	// Stage 2: Assemble the rewritten function
	rewritten := *fn
	rewritten.Body = body

	return &rewritten, nil
}

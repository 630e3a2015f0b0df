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
	"errors"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/internal/scope"
	"fillmore-labs.com/clonecapture/syntax"
)

// ErrUnhandled is returned for syntax nodes the rewriter does not know how to traverse.
var ErrUnhandled = errors.New("unhandled syntax form")

// Stage configures and runs the capture rewriting stage.
type Stage struct {
	// Exempt selects bindings that are never duplicated.
	Exempt config.Exempt

	// Behavior selects optional behavior; only [config.BindParams] and [config.FormatArgs] are used here.
	Behavior config.Behavior

	// Logger receives the trace at debug level. nil disables tracing.
	Logger *slog.Logger
}

// Rewrite returns a copy of the body of fn where every move closure and
// async move block is preceded by clones of the outer bindings it refers to.
//
// The input tree is not modified. On failure no tree is returned.
func (us Stage) Rewrite(ctx context.Context, fn *syntax.FnItem) (*syntax.Block, error) {
	defer trace.StartRegion(ctx, "Usage").End()

	c := us.newCollector(ctx)

	if us.Behavior.Enabled(config.BindParams) {
		for _, param := range fn.Params {
			c.bind(param.Pat)
		}
	}

	body := c.stmtsOf(fn.Body)
	if c.err != nil {
		return nil, c.err
	}

	return body, nil
}

// newCollector creates a collector with a fresh scope tracker.
func (us Stage) newCollector(ctx context.Context) *collector {
	logger := us.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &collector{
		ctx:        ctx,
		stage:      us,
		scope:      scope.NewTracker(logger),
		log:        logger,
		exempt:     us.Exempt,
		formatArgs: us.Behavior.Enabled(config.FormatArgs),
	}
}

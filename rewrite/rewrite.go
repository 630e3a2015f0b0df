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

package rewrite

import (
	"context"
	"errors"
	"strings"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/internal/run"
	"fillmore-labs.com/clonecapture/syntax"
)

// Attribute is the name of the attribute selecting functions in [Rewriter.File].
const Attribute = "clone_on_capture"

// Rewriter duplicates values captured by move closures and async move blocks.
// It is immutable and safe for concurrent use.
type Rewriter struct {
	opts run.Options
}

// New creates a [Rewriter] with the given options applied over the defaults.
func New(opts ...Option) *Rewriter {
	r := run.DefaultOptions()
	Options(opts).apply(r)

	return &Rewriter{opts: *r}
}

// Func rewrites a single function regardless of its attributes. fn is not modified.
func (r *Rewriter) Func(ctx context.Context, fn *syntax.FnItem) (*syntax.FnItem, error) {
	return r.opts.Run(ctx, fn)
}

// File rewrites every function carrying the #[clone_on_capture] attribute,
// or every function when [WithAll] is set, including methods in impl and
// trait blocks and inline modules. The attribute is removed and its
// arguments apply to that function only.
//
// All failing functions are reported; on failure no tree is returned.
func (r *Rewriter) File(ctx context.Context, f *syntax.File) (*syntax.File, error) {
	var errs []error

	items := r.items(ctx, f.Items, &errs)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	rewritten := *f
	rewritten.Items = items

	return &rewritten, nil
}

func (r *Rewriter) items(ctx context.Context, items []syntax.Item, errs *[]error) []syntax.Item {
	out := make([]syntax.Item, len(items))

	for i, it := range items {
		switch n := it.(type) {
		case *syntax.FnItem:
			out[i] = r.fn(ctx, n, errs)

		case *syntax.BlockItem:
			b := *n
			b.Items = r.items(ctx, n.Items, errs)
			out[i] = &b

		default:
			out[i] = it
		}
	}

	return out
}

func (r *Rewriter) fn(ctx context.Context, fn *syntax.FnItem, errs *[]error) *syntax.FnItem {
	idx := attrIndex(fn.Attrs)
	if idx < 0 && !r.opts.Behavior.Enabled(config.RewriteAll) {
		return fn
	}

	opts := r.opts
	target := fn

	if idx >= 0 {
		args, err := ParseArgs(fn.Attrs[idx].Args)
		if err != nil {
			*errs = append(*errs, &Error{Func: fn.Name, Pos: fn.Attrs[idx].Start, Err: err})

			return fn
		}

		args.apply(&opts)

		stripped := *fn
		stripped.Attrs = make([]*syntax.Attr, 0, len(fn.Attrs)-1)
		stripped.Attrs = append(stripped.Attrs, fn.Attrs[:idx]...)
		stripped.Attrs = append(stripped.Attrs, fn.Attrs[idx+1:]...)
		target = &stripped
	}

	rewritten, err := opts.Run(ctx, target)
	if err != nil {
		*errs = append(*errs, err)

		return fn
	}

	return rewritten
}

// attrIndex returns the index of the first #[clone_on_capture] attribute, or -1.
func attrIndex(attrs []*syntax.Attr) int {
	for i, a := range attrs {
		if a.Name == Attribute || strings.HasSuffix(a.Name, "::"+Attribute) {
			return i
		}
	}

	return -1
}

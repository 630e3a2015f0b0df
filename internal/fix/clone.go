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

// Package fix synthesizes the duplication statements placed in front of a capturing boundary.
package fix

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"fillmore-labs.com/clonecapture/syntax"
)

// ErrSynthesis is returned when a duplication statement can't be built for a name.
var ErrSynthesis = errors.New("can't synthesize duplication")

// Wrap returns a block expression binding a clone of every name before evaluating boundary:
//
//	{ let a = a.clone(); let b = b.clone(); boundary }
//
// Names are emitted in lexicographic order. With no names the boundary is returned unchanged.
func Wrap(names iter.Seq[string], boundary syntax.Expr) (syntax.Expr, error) {
	sorted := slices.Sorted(names)
	if len(sorted) == 0 {
		return boundary, nil
	}

	pos := boundary.Pos()
	stmts := make([]syntax.Stmt, 0, len(sorted)+1)

	for _, name := range sorted {
		stmt, err := Clone(pos, name)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	stmts = append(stmts, &syntax.ExprStmt{X: boundary})

	return &syntax.BlockExpr{Start: pos, Block: &syntax.Block{Start: pos, Stmts: stmts}}, nil
}

// Clone builds the statement `let name = name.clone();`.
func Clone(pos syntax.Pos, name string) (*syntax.LocalStmt, error) {
	if !syntax.IsIdent(name) {
		return nil, fmt.Errorf("%w: invalid identifier %q", ErrSynthesis, name)
	}

	recv := &syntax.PathExpr{Path: &syntax.Path{
		Start:    pos,
		Segments: []syntax.PathSegment{{Name: name}},
	}}

	return &syntax.LocalStmt{
		Start: pos,
		Pat:   &syntax.IdentPat{Start: pos, Name: name},
		Init:  &syntax.MethodCallExpr{Start: pos, Recv: recv, Method: "clone"},
	}, nil
}

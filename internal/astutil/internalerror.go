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

package astutil

import (
	"fmt"

	"fillmore-labs.com/clonecapture/syntax"
)

// NodeError is an error attributed to a syntax node.
// These errors indicate forms the rewriter does not handle or bugs in the
// traversal rather than issues in the user's code.
type NodeError struct {
	Pos  syntax.Pos
	Node string
	Err  error
}

// InternalError creates a [NodeError] for node. format may use %w.
func InternalError(pos syntax.Pos, node string, format string, args ...any) error {
	return &NodeError{Pos: pos, Node: node, Err: fmt.Errorf(format, args...)}
}

func (e *NodeError) Error() string {
	msg := []byte("Internal Error: ")
	if e.Node != "" {
		msg = fmt.Appendf(msg, "%s: ", e.Node)
	}

	msg = append(msg, e.Err.Error()...)

	return string(msg)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

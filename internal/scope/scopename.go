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

package scope

import (
	"fmt"
	"strings"

	"fillmore-labs.com/clonecapture/syntax"
)

// Name returns a human-readable name for the construct opening a frame.
func Name(node syntax.Node) string {
	switch n := node.(type) {
	// keep-sorted start newline_separated=yes
	case *syntax.Arm:
		return "match arm"

	case *syntax.AsyncExpr:
		if n.Move {
			return "async move block"
		}

		return "async block"

	case *syntax.BlockExpr:
		return "block"

	case *syntax.ClosureExpr:
		if n.Move {
			return "move closure"
		}

		return "closure"

	case *syntax.ForExpr:
		return "for"

	case *syntax.IfExpr:
		return "if"

	case *syntax.LocalStmt:
		if n.Else != nil {
			return "let else"
		}

		return "let"

	case *syntax.LoopExpr:
		return "loop"

	case *syntax.TryBlockExpr:
		return "try block"

	case *syntax.UnsafeExpr:
		return "unsafe block"

	case *syntax.WhileExpr:
		return "while"

	case nil:
		return "<nil>"

	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", node), "*syntax.")
		// keep-sorted end
	}
}

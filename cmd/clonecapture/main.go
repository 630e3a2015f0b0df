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

// Command clonecapture duplicates values captured by move closures and async move blocks in Rust source files.
//
// Usage:
//
//	clonecapture rewrite [flags] [file.rs ...]
//
// Without files, the source is read from standard input and written to
// standard output. Only functions annotated with #[clone_on_capture] are
// rewritten unless --all is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the clonecapture tool and returns the code for passing to os.Exit.
func Main() int {
	if err := mainErr(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, errPrintedError) {
			fmt.Fprintln(os.Stderr, err)
		}

		return 1
	}

	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

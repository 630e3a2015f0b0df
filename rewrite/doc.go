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

// Package rewrite duplicates values captured by move closures and async move blocks in Rust source.
//
// # Overview
//
// A move closure takes ownership of every outer binding it refers to, so the
// binding can't be used after the closure is created. The rewriter inserts a
// clone of each captured binding in front of the closure, leaving the
// original usable.
//
// # Example
//
// Before:
//
//	#[clone_on_capture]
//	fn run(user: &User) {
//	    let name = user.name.clone();
//	    let greet = move || println!("hello {}", name);
//	    greet();
//	    println!("bye {}", name);
//	}
//
// After:
//
//	fn run(user: &User) {
//	    let name = user.name.clone();
//	    let greet = {
//	        let name = name.clone();
//	        move || println!("hello {}", name)
//	    };
//	    greet();
//	    println!("bye {}", name);
//	}
//
// # Opting out
//
// Bindings declared mut and bindings whose name starts with the exempt prefix
// (default "dc_", see [WithExemptPrefix]) are never duplicated. Function
// parameters are moved unless [WithParams] is set.
//
// # Comments
//
// Comments are kept. Comments inside an expression move to the end of the
// enclosing statement.
//
// # Attribute arguments
//
// #[clone_on_capture(debug)] enables the trace for a single function.
package rewrite

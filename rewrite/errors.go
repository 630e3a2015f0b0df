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
	"errors"

	"fillmore-labs.com/clonecapture/internal/fix"
	"fillmore-labs.com/clonecapture/internal/run"
	"fillmore-labs.com/clonecapture/internal/scope"
	"fillmore-labs.com/clonecapture/internal/usage"
)

// ErrConfigParse is returned for malformed attribute arguments.
var ErrConfigParse = errors.New("malformed attribute arguments")

// Errors wrapped by [Error] when a function can't be rewritten.
var (
	// ErrUnhandled indicates a syntax form the rewriter can't traverse.
	ErrUnhandled = usage.ErrUnhandled

	// ErrUnderflow indicates unbalanced scope tracking.
	ErrUnderflow = scope.ErrUnderflow

	// ErrSynthesis indicates a duplication statement could not be built.
	ErrSynthesis = fix.ErrSynthesis
)

// Error is a failure to rewrite a single function, carrying its name and position.
type Error = run.Error

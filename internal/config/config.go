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

package config

import (
	"log/slog"
	"strings"
)

// Flags selects optional behavior of the capture rewriter.
type Flags uint8

const (
	// Trace emits a line for every visited node and every change of a bound or used set.
	Trace Flags = 1 << iota

	// BindParams binds the function parameters in the root scope, so captured
	// parameters are duplicated like body bindings.
	BindParams

	// FormatArgs records inline format arguments ("{name}") in macro string literals as usages.
	FormatArgs

	// RewriteAll rewrites every function of a file, not only annotated ones.
	RewriteAll
)

// Behavior is the set of enabled [Flags].
type Behavior = BitMask[Flags]

// DefaultBehavior returns the flags enabled when no option overrides them.
// Parameters are moved into capturing boundaries unless [BindParams] is set.
func DefaultBehavior() Behavior {
	return NewBitMask(FormatArgs)
}

// DefaultExemptPrefix marks bindings that are never duplicated.
const DefaultExemptPrefix = "dc_"

// Exempt reports whether a binding should never be duplicated.
type Exempt func(name string) bool

// PrefixExempt exempts every name starting with prefix. An empty prefix exempts nothing.
func PrefixExempt(prefix string) Exempt {
	if prefix == "" {
		return func(string) bool { return false }
	}

	return func(name string) bool {
		return strings.HasPrefix(strings.TrimPrefix(name, "r#"), prefix)
	}
}

// DefaultExempt is the exemption predicate using [DefaultExemptPrefix].
func DefaultExempt() Exempt {
	return PrefixExempt(DefaultExemptPrefix)
}

// LogValue implements [slog.LogValuer].
func (f Flags) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 4)
	for _, flag := range []struct {
		name string
		flag Flags
	}{
		{"trace", Trace},
		{"params", BindParams},
		{"format-args", FormatArgs},
		{"all", RewriteAll},
	} {
		attrs = append(attrs, slog.Bool(flag.name, f&flag.flag != 0))
	}

	return slog.GroupValue(attrs...)
}

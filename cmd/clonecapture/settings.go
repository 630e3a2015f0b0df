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

package main

import (
	"github.com/spf13/pflag"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/rewrite"
)

// Settings are the rewriter options given on the command line. Unset values keep the defaults.
type Settings struct {
	// All rewrites every function, not only annotated ones.
	All *bool
	// Trace enables the trace, written to standard error by the command.
	Trace *bool
	// ExemptPrefix sets the prefix of bindings that are never duplicated.
	ExemptPrefix *string
	// Params duplicates function parameters.
	Params *bool
	// FormatArgs counts inline format arguments as usages.
	FormatArgs *bool
}

// settingsFromFlags returns the [Settings] for every flag changed on the command line.
func settingsFromFlags(fs *pflag.FlagSet, behavior config.Behavior, exemptPrefix string) Settings {
	var s Settings

	flag := func(name string, f config.Flags) *bool {
		if !fs.Changed(name) {
			return nil
		}

		v := behavior.Enabled(f)

		return &v
	}

	s.All = flag("all", config.RewriteAll)
	s.Trace = flag("trace", config.Trace)
	s.Params = flag("params", config.BindParams)
	s.FormatArgs = flag("format-args", config.FormatArgs)

	if fs.Changed("exempt-prefix") {
		s.ExemptPrefix = &exemptPrefix
	}

	return s
}

// Options converts [Settings] into a list of [rewrite.Option].
// It applies settings only when explicitly set (non-nil).
func (s Settings) Options() []rewrite.Option {
	var opts []rewrite.Option

	opts = appendOption(opts, s.All, rewrite.WithAll)
	opts = appendOption(opts, s.Trace, rewrite.WithTrace)
	opts = appendOption(opts, s.ExemptPrefix, rewrite.WithExemptPrefix)
	opts = appendOption(opts, s.Params, rewrite.WithParams)
	opts = appendOption(opts, s.FormatArgs, rewrite.WithFormatArgs)

	return opts
}

// appendOption appends a non-nil setting to a [rewrite.Option] list.
func appendOption[T any](opts []rewrite.Option, value *T, constructor func(T) rewrite.Option) []rewrite.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

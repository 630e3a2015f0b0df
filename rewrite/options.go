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
	"fmt"
	"io"
	"log/slog"

	"fillmore-labs.com/clonecapture/internal/config"
	"fillmore-labs.com/clonecapture/internal/run"
)

// Option configures specific behavior of a [New] rewriter.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithTrace is an [Option] to emit a trace of visited nodes and bound or used names.
func WithTrace(trace bool) Option { return traceOption{trace: trace} }

type traceOption struct{ trace bool }

func (o traceOption) apply(r *run.Options) {
	r.Behavior.Set(config.Trace, o.trace)
}

func (o traceOption) LogAttr() slog.Attr {
	return slog.Bool("trace", o.trace)
}

// WithTraceOutput is an [Option] to redirect the trace, which defaults to [os.Stdout].
func WithTraceOutput(w io.Writer) Option { return traceOutputOption{w: w} }

type traceOutputOption struct{ w io.Writer }

func (o traceOutputOption) apply(r *run.Options) {
	r.TraceOutput = o.w
}

func (o traceOutputOption) LogAttr() slog.Attr {
	return slog.String("trace-output", fmt.Sprintf("%T", o.w))
}

// WithExemptPrefix is an [Option] to never duplicate bindings starting with prefix.
// An empty prefix disables the exemption.
func WithExemptPrefix(prefix string) Option { return exemptPrefixOption{prefix: prefix} }

type exemptPrefixOption struct{ prefix string }

func (o exemptPrefixOption) apply(r *run.Options) {
	r.Exempt = config.PrefixExempt(o.prefix)
}

func (o exemptPrefixOption) LogAttr() slog.Attr {
	return slog.String("exempt-prefix", o.prefix)
}

// WithExempt is an [Option] to select bindings that are never duplicated.
func WithExempt(exempt func(name string) bool) Option { return exemptOption{exempt: exempt} }

type exemptOption struct{ exempt func(string) bool }

func (o exemptOption) apply(r *run.Options) {
	r.Exempt = o.exempt
}

func (o exemptOption) LogAttr() slog.Attr {
	return slog.Bool("exempt", o.exempt != nil)
}

// WithAll is an [Option] to rewrite every function of a file, not only the annotated ones.
func WithAll(all bool) Option { return allOption{all: all} }

type allOption struct{ all bool }

func (o allOption) apply(r *run.Options) {
	r.Behavior.Set(config.RewriteAll, o.all)
}

func (o allOption) LogAttr() slog.Attr {
	return slog.Bool("all", o.all)
}

// WithParams is an [Option] to configure whether function parameters are duplicated.
// Without it, captured parameters are moved.
func WithParams(params bool) Option { return paramsOption{params: params} }

type paramsOption struct{ params bool }

func (o paramsOption) apply(r *run.Options) {
	r.Behavior.Set(config.BindParams, o.params)
}

func (o paramsOption) LogAttr() slog.Attr {
	return slog.Bool("params", o.params)
}

// WithFormatArgs is an [Option] to configure whether inline format arguments
// in macro string literals count as usages.
func WithFormatArgs(formatArgs bool) Option { return formatArgsOption{formatArgs: formatArgs} }

type formatArgsOption struct{ formatArgs bool }

func (o formatArgsOption) apply(r *run.Options) {
	r.Behavior.Set(config.FormatArgs, o.formatArgs)
}

func (o formatArgsOption) LogAttr() slog.Attr {
	return slog.Bool("format-args", o.formatArgs)
}

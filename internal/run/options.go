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

package run

import (
	"io"
	"log/slog"
	"os"

	"fillmore-labs.com/clonecapture/internal/config"
)

// Options represent the configuration of the capture rewriter.
type Options struct {
	// Behavior holds the enabled behavior flags.
	Behavior config.Behavior

	// Exempt selects bindings that are never duplicated.
	Exempt config.Exempt

	// TraceOutput receives trace lines when [config.Trace] is enabled.
	TraceOutput io.Writer
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior:    config.DefaultBehavior(),
		Exempt:      config.DefaultExempt(),
		TraceOutput: os.Stdout,
	}
}

// logger returns the trace logger, discarding everything when tracing is disabled.
func (r *Options) logger() *slog.Logger {
	if !r.Behavior.Enabled(config.Trace) || r.TraceOutput == nil {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewTextHandler(r.TraceOutput, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

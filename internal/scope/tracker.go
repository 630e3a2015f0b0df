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
	"errors"
	"iter"
	"log/slog"
)

// ErrUnderflow is returned when a frame is exited that was never entered.
var ErrUnderflow = errors.New("scope underflow")

// Frame records the names bound inside one lexical region and the outer
// names it refers to.
type Frame struct {
	Bound     Names
	Used      Names
	Capturing bool
}

// Tracker is a stack of frames over a root set holding the function-level bindings.
//
// A Tracker is used for a single function and is not safe for concurrent use.
type Tracker struct {
	root   Names
	frames []*Frame
	log    *slog.Logger
}

// NewTracker creates an empty [Tracker]. Changes are logged at debug level to logger.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Tracker{root: make(Names), log: logger}
}

// Enter pushes a new frame.
func (t *Tracker) Enter(capturing bool) {
	t.frames = append(t.frames, &Frame{Bound: make(Names), Used: make(Names), Capturing: capturing})
}

// Exit pops the innermost frame and returns it.
func (t *Tracker) Exit() (*Frame, error) {
	n := len(t.frames)
	if n == 0 {
		return nil, ErrUnderflow
	}

	f := t.frames[n-1]
	t.frames[n-1] = nil
	t.frames = t.frames[:n-1]

	return f, nil
}

// Depth returns the number of active frames.
func (t *Tracker) Depth() int {
	return len(t.frames)
}

// Bind adds names to the innermost frame, or to the root set when no frame is active.
func (t *Tracker) Bind(names iter.Seq[string]) {
	set, level := t.root, 0
	if n := len(t.frames); n > 0 {
		set, level = t.frames[n-1].Bound, n
	}

	grown := false
	for name := range names {
		if set.Add(name) {
			grown = true
		}
	}

	if grown {
		t.log.Debug("bound", slog.Int("depth", level), slog.Any("names", set))
	}
}

// RecordUsage attributes a reference to name.
//
// When the innermost binding of name is in frame d, the usage is recorded in
// every capturing frame deeper than d. Names bound only in the root are
// recorded in every active frame. Unknown names are ignored.
func (t *Tracker) RecordUsage(name string) {
	d := t.lookup(name)

	switch {
	case d >= 0:
		for i := d + 1; i < len(t.frames); i++ {
			if t.frames[i].Capturing {
				t.use(i, name)
			}
		}

	case t.root.Has(name):
		for i := range t.frames {
			t.use(i, name)
		}
	}
}

// lookup returns the index of the innermost frame binding name, or -1.
func (t *Tracker) lookup(name string) int {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if t.frames[i].Bound.Has(name) {
			return i
		}
	}

	return -1
}

func (t *Tracker) use(i int, name string) {
	f := t.frames[i]
	if f.Used.Add(name) {
		t.log.Debug("used", slog.Int("depth", i+1), slog.Any("names", f.Used))
	}
}

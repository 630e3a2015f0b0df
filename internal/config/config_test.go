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

package config_test

import (
	"testing"

	. "fillmore-labs.com/clonecapture/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(Trace, FormatArgs)

	if !b.Enabled(Trace) || !b.Enabled(FormatArgs) {
		t.Errorf("NewBitMask(Trace, FormatArgs) = %08b, want both enabled", b.Bits())
	}

	if b.Enabled(BindParams) {
		t.Error("BindParams enabled, want disabled")
	}

	b.Set(Trace, false)
	b.Set(BindParams, true)

	if got, want := b.Bits(), BindParams|FormatArgs; got != want {
		t.Errorf("Bits() = %08b, want %08b", got, want)
	}

	if b.Enabled(BindParams | Trace) {
		t.Error("Enabled(BindParams|Trace) = true, want false")
	}
}

func TestDefaultBehavior(t *testing.T) {
	t.Parallel()

	b := DefaultBehavior()

	if got, want := b.Bits(), FormatArgs; got != want {
		t.Errorf("DefaultBehavior() = %08b, want %08b", got, want)
	}

	if b.Enabled(BindParams) {
		t.Error("BindParams enabled by default, want opt-in")
	}
}

func TestPrefixExempt(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name, prefix, ident string
		want                bool
	}{
		{"default", DefaultExemptPrefix, "dc_a", true},
		{"plain", DefaultExemptPrefix, "a", false},
		{"raw", DefaultExemptPrefix, "r#dc_type", true},
		{"inner", DefaultExemptPrefix, "a_dc_b", false},
		{"custom", "keep_", "keep_x", true},
		{"empty", "", "dc_a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PrefixExempt(tt.prefix)(tt.ident); got != tt.want {
				t.Errorf("PrefixExempt(%q)(%q) = %t, want %t", tt.prefix, tt.ident, got, tt.want)
			}
		})
	}
}

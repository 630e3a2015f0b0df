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
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Names is a set of identifiers.
type Names map[string]struct{}

// Add inserts name and reports whether it was not already present.
func (n Names) Add(name string) bool {
	if _, ok := n[name]; ok {
		return false
	}

	n[name] = struct{}{}

	return true
}

// Has reports whether name is in the set.
func (n Names) Has(name string) bool {
	_, ok := n[name]

	return ok
}

// All returns an iterator over the names in unspecified order.
func (n Names) All() iter.Seq[string] {
	return maps.Keys(n)
}

// Sorted returns the names in lexicographic order.
func (n Names) Sorted() []string {
	return slices.Sorted(maps.Keys(n))
}

// LogValue implements [slog.LogValuer].
func (n Names) LogValue() slog.Value {
	return slog.AnyValue(n.Sorted())
}

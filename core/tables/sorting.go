/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"sort"

	"github.com/google/datatable/core/columns"
	"github.com/google/datatable/core/datatable"
)

// sortableColumn holds a resolved value path and its sort direction
type sortableColumn struct {
	path       string
	descending bool
}

// compare compares two rows on the sort column.
// Returns negative if a < b, zero if equal, positive if a > b.
func (sc sortableColumn) compare(a, b any) int {
	cmp := columns.Compare(datatable.Resolve(a, sc.path), datatable.Resolve(b, sc.path))
	if sc.descending {
		return -cmp // Reverse for descending
	}
	return cmp
}

// SortRows returns a copy of rows ordered by the sort state. The sort key is
// mapped to a value path through paths; keys without an entry are used as
// paths directly. An empty sort key returns the rows in their original
// order. The sort is stable, so equal rows keep their relative order.
func SortRows[T any](rows []T, s datatable.Sort, paths map[string]string) []T {
	out := make([]T, len(rows))
	copy(out, rows)

	key := s.Key()
	if key == "" {
		return out
	}
	sc := sortableColumn{path: pathFor(key, paths), descending: s.Descending()}

	sort.SliceStable(out, func(i, j int) bool {
		return sc.compare(out[i], out[j]) < 0
	})
	return out
}

// Limit returns the first n rows; n <= 0 returns all of them.
func Limit[T any](rows []T, n int) []T {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func pathFor(key string, paths map[string]string) string {
	if p, ok := paths[key]; ok && p != "" {
		return p
	}
	return key
}

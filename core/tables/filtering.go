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

// Package tables holds the row operations an application performs on its own
// data before handing it to a datatable: filtering and sorting driven by the
// filter and sort state the table requested.
package tables

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/google/datatable/core/datatable"
)

// Matcher reports whether a resolved cell value satisfies one filter.
type Matcher func(value any) bool

// NewMatcher builds the matcher for a filter value. Text containing glob
// meta characters (* ? [ {) is matched as a case-insensitive glob against the
// whole cell text; other text matches as a case-insensitive substring.
// Non-text filter values match cells whose text equals theirs.
func NewMatcher(filter any) (Matcher, error) {
	text, isText := filter.(string)
	if !isText {
		want := fmt.Sprint(filter)
		return func(v any) bool { return cellText(v) == want }, nil
	}
	text = strings.ToLower(text)
	if strings.ContainsAny(text, "*?[{") {
		g, err := glob.Compile(text)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", text, err)
		}
		return func(v any) bool { return g.Match(strings.ToLower(cellText(v))) }, nil
	}
	return func(v any) bool {
		return strings.Contains(strings.ToLower(cellText(v)), text)
	}, nil
}

func cellText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FilterRows keeps the rows matching every set filter. Unset (falsy) filter
// values are ignored. Filter keys map to value paths through paths, falling
// back to the key itself. Invalid patterns are reported as an error together
// with the rows filtered by the remaining valid filters.
func FilterRows[T any](rows []T, filter datatable.FilterMap, paths map[string]string) ([]T, error) {
	type check struct {
		path  string
		match Matcher
	}
	var checks []check
	var errs []string
	for key, value := range filter {
		if !datatable.Truthy(value) {
			continue
		}
		m, err := NewMatcher(value)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		checks = append(checks, check{path: pathFor(key, paths), match: m})
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, c := range checks {
			if !c.match(datatable.Resolve(row, c.path)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}

	if len(errs) > 0 {
		return out, fmt.Errorf("filter: %s", strings.Join(errs, "; "))
	}
	return out, nil
}

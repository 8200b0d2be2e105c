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

package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/google/datatable/core/datatable"
)

// filterPrefix marks filter parameters (format: filter:key=value).
const filterPrefix = "filter:"

// Query represents the parsed state of a table view URL. The URL is the
// owner of the table's sort and filter state: every change the table
// requests becomes a new URL.
type Query struct {
	// Base path (e.g., "/")
	Path string

	// Core parameters
	Source  string            // The data source being viewed
	Sort    string            // Sort key, "-" prefixed for descending
	Filters map[string]string // Filter values (filterKey -> value)
	Limit   int               // Number of rows to display (0 = show all)
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	// The URL is already parsed and safe to use since it comes from http.Request
	state := &Query{
		Path:    u.Path,
		Filters: make(map[string]string),
		Limit:   25, // Default limit
	}

	q := u.Query()

	state.Source = q.Get("source")
	state.Sort = q.Get("sort")

	// Extract limit parameter
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	// Extract filter parameters (format: filter:key=value)
	for key, values := range q {
		if strings.HasPrefix(key, filterPrefix) && len(values) > 0 && values[0] != "" {
			state.Filters[strings.TrimPrefix(key, filterPrefix)] = values[0]
		}
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:    s.Path,
		Source:  s.Source,
		Sort:    s.Sort,
		Filters: make(map[string]string, len(s.Filters)),
		Limit:   s.Limit,
	}
	for key, value := range s.Filters {
		clone.Filters[key] = value
	}
	return clone
}

// SortState returns the sort state to hand to the table. Sorting is always
// enabled for URL-driven tables, so the result is never nil.
func (s *Query) SortState() *datatable.Sort {
	return datatable.Sort(s.Sort).Ptr()
}

// FilterMap returns the filter state to hand to the table.
func (s *Query) FilterMap() datatable.FilterMap {
	f := make(datatable.FilterMap, len(s.Filters))
	for key, value := range s.Filters {
		f[key] = value
	}
	return f
}

// WithSort returns a URL with the sort replaced
func (s *Query) WithSort(sort datatable.Sort) safehtml.URL {
	newState := s.Clone()
	newState.Sort = string(sort)
	return newState.ToSafeURL()
}

// WithFilters returns a URL with the filters replaced by f. Unset values
// are dropped from the URL.
func (s *Query) WithFilters(f datatable.FilterMap) safehtml.URL {
	newState := s.Clone()
	newState.Filters = make(map[string]string, len(f))
	for key, value := range f {
		if datatable.Truthy(value) {
			newState.Filters[key] = datatable.FilterText(value)
		}
	}
	return newState.ToSafeURL()
}

// WithLimit returns a URL with a different row limit
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Source != "" {
		q.Set("source", s.Source)
	}
	if s.Sort != "" {
		q.Set("sort", s.Sort)
	}

	// Add filter parameters in key order so equal states give equal URLs
	keys := make([]string, 0, len(s.Filters))
	for key := range s.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if value := s.Filters[key]; value != "" {
			q.Set(filterPrefix+key, value)
		}
	}

	// Add limit parameter (always included in URL)
	q.Set("limit", strconv.Itoa(s.Limit))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(s.ToURL())
}

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

package datatable

import "strings"

// Sort is the caller-held sort state: the active sort key, prefixed with "-"
// for descending order.
type Sort string

// SortOn builds a Sort for key.
func SortOn(key string, descending bool) Sort {
	if descending {
		return Sort("-" + key)
	}
	return Sort(key)
}

// Key returns the sort key without its direction marker.
func (s Sort) Key() string {
	return strings.TrimPrefix(string(s), "-")
}

// Descending reports whether the sort is descending.
func (s Sort) Descending() bool {
	return strings.HasPrefix(string(s), "-")
}

// Direction returns -1 for descending and 1 for ascending.
func (s Sort) Direction() int {
	if s.Descending() {
		return -1
	}
	return 1
}

// Ptr returns a pointer to a copy of s, for use as Props.Sort.
func (s Sort) Ptr() *Sort {
	return &s
}

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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/datatable/core/datatable"
)

type row = map[string]any

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, datatable.Resolve(r, "customer.name").(string))
	}
	return out
}

func sampleRows() []row {
	return []row{
		{"id": 1, "amount": 30.0, "status": "open", "customer": row{"name": "Ann"}},
		{"id": 2, "amount": 10.0, "status": "shipped", "customer": row{"name": "Bo"}},
		{"id": 3, "amount": 20.0, "status": "open", "customer": row{"name": "Cy"}},
		{"id": 4, "amount": 10.0, "status": "cancelled", "customer": row{"name": "Di"}},
	}
}

func TestSortRows(t *testing.T) {
	rows := sampleRows()
	paths := map[string]string{"customer": "customer.name"}

	tests := []struct {
		name string
		sort datatable.Sort
		want []string
	}{
		{"no sort keeps order", "", []string{"Ann", "Bo", "Cy", "Di"}},
		{"ascending stable", "amount", []string{"Bo", "Di", "Cy", "Ann"}},
		{"descending", "-amount", []string{"Ann", "Cy", "Bo", "Di"}},
		{"mapped key", "-customer", []string{"Di", "Cy", "Bo", "Ann"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(SortRows(rows, tt.sort, paths))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortRows mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if names(rows)[0] != "Ann" {
		t.Errorf("Expected SortRows not to reorder its input")
	}
}

func TestFilterRows(t *testing.T) {
	rows := sampleRows()
	paths := map[string]string{"customer": "customer.name"}

	tests := []struct {
		name   string
		filter datatable.FilterMap
		want   []string
	}{
		{"nil filter", nil, []string{"Ann", "Bo", "Cy", "Di"}},
		{"unset values ignored", datatable.FilterMap{"status": "", "customer": nil}, []string{"Ann", "Bo", "Cy", "Di"}},
		{"substring case-insensitive", datatable.FilterMap{"status": "OPE"}, []string{"Ann", "Cy"}},
		{"glob", datatable.FilterMap{"customer": "[ab]*"}, []string{"Ann", "Bo"}},
		{"combined", datatable.FilterMap{"status": "open", "customer": "c*"}, []string{"Cy"}},
		{"non-text equality", datatable.FilterMap{"id": 3}, []string{"Cy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterRows(rows, tt.filter, paths)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("FilterRows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterRows_InvalidPattern(t *testing.T) {
	got, err := FilterRows(sampleRows(), datatable.FilterMap{"status": "[open", "customer": "a*"}, map[string]string{"customer": "customer.name"})
	if err == nil {
		t.Fatalf("Expected an error for an invalid pattern")
	}
	if diff := cmp.Diff([]string{"Ann"}, names(got)); diff != "" {
		t.Errorf("Expected valid filters to still apply (-want +got):\n%s", diff)
	}
}

func TestLimit(t *testing.T) {
	rows := sampleRows()
	if len(Limit(rows, 2)) != 2 || len(Limit(rows, 0)) != 4 || len(Limit(rows, 10)) != 4 {
		t.Errorf("Unexpected Limit behavior")
	}
}

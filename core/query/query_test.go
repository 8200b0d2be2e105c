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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/datatable/core/datatable"
)

func parse(t *testing.T, raw string) *Query {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", raw, err)
	}
	return NewQuery(u)
}

// TestNewQuery tests URL parsing of sort, filter and limit parameters
func TestNewQuery(t *testing.T) {
	q := parse(t, "/?source=orders&sort=-amount&filter:status=open&filter:empty=&limit=10")

	if q.Source != "orders" || q.Sort != "-amount" || q.Limit != 10 {
		t.Errorf("Unexpected query %+v", q)
	}
	if diff := cmp.Diff(map[string]string{"status": "open"}, q.Filters); diff != "" {
		t.Errorf("Filters mismatch (-want +got):\n%s", diff)
	}

	defaults := parse(t, "/?limit=-3")
	if defaults.Limit != 25 || defaults.Sort != "" {
		t.Errorf("Expected defaults, got %+v", defaults)
	}
	if s := defaults.SortState(); s == nil || *s != "" {
		t.Errorf("Expected a non-nil empty sort state, got %v", s)
	}
}

// TestQueryTransitions tests that requested table changes round trip through URLs
func TestQueryTransitions(t *testing.T) {
	q := parse(t, "/?source=orders&filter:status=open&limit=25")

	t.Run("Sort", func(t *testing.T) {
		next := parse(t, q.WithSort(datatable.Sort("-amount")).String())
		if next.Sort != "-amount" || next.Filters["status"] != "open" {
			t.Errorf("Expected sort applied and filters kept, got %+v", next)
		}
	})

	t.Run("Filter change", func(t *testing.T) {
		f := q.FilterMap().With("customer", "a*")
		next := parse(t, q.WithFilters(f).String())
		want := map[string]string{"status": "open", "customer": "a*"}
		if diff := cmp.Diff(want, next.Filters); diff != "" {
			t.Errorf("Filters mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Column clear drops the key", func(t *testing.T) {
		f := q.FilterMap().With("status", nil)
		next := parse(t, q.WithFilters(f).String())
		if len(next.Filters) != 0 {
			t.Errorf("Expected no filters, got %v", next.Filters)
		}
	})

	t.Run("Clear all", func(t *testing.T) {
		next := parse(t, q.WithFilters(datatable.FilterMap{}).String())
		if len(next.Filters) != 0 || next.Source != "orders" {
			t.Errorf("Expected filters cleared and source kept, got %+v", next)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		next := parse(t, q.WithLimit(0).String())
		if next.Limit != 0 {
			t.Errorf("Expected limit 0, got %d", next.Limit)
		}
	})

	if q.Filters["status"] != "open" {
		t.Errorf("Expected transitions not to modify the query")
	}
}

func TestToURL_Deterministic(t *testing.T) {
	q := &Query{Path: "/", Filters: map[string]string{"b": "2", "a": "1"}, Limit: 5}
	want := "/?filter%3Aa=1&filter%3Ab=2&limit=5"
	if got := q.ToURL(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

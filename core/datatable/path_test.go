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

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/datatable/core/markup"
)

type address struct {
	City string `json:"city"`
	Zip  *int
}

type person struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Address *address          `json:"address,omitempty"`
	Labels  map[string]string `json:"labels"`
	Tags    []string
	Active  bool
	secret  string
}

func TestResolve(t *testing.T) {
	zip := 1234
	p := person{
		ID:      7,
		Name:    "Ann",
		Address: &address{City: "Oslo", Zip: &zip},
		Labels:  map[string]string{"team": "core"},
		secret:  "hidden",
	}

	tests := []struct {
		name string
		root any
		path string
		want any
	}{
		{"nested map", map[string]any{"a": map[string]any{"b": 1}}, "a.b", 1},
		{"null intermediate", map[string]any{"a": nil}, "a.b", nil},
		{"missing key", map[string]any{}, "x", nil},
		{"nil root", nil, "x", nil},
		{"typed nil root", (*person)(nil), "name", nil},
		{"scalar intermediate", map[string]any{"a": 3}, "a.b", nil},
		{"json tag", p, "name", "Ann"},
		{"go field name", p, "Tags", []string(nil)},
		{"pointer root", &p, "id", 7},
		{"through pointer", p, "address.city", "Oslo"},
		{"pointer leaf", p, "address.Zip", 1234},
		{"typed map", p, "labels.team", "core"},
		{"unexported field", p, "secret", nil},
		{"nil pointer intermediate", person{}, "address.city", nil},
		{"no index segments", map[string]any{"a": []any{1, 2}}, "a.0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.root, tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%v, %q) = %#v, want %#v", tt.root, tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_MatchesManualIndexing(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "deep"},
			"n": 2.5,
		},
	}
	manual := root["a"].(map[string]any)["b"].(map[string]any)["c"]
	if got := Resolve(root, "a.b.c"); got != manual {
		t.Errorf("Expected %v, got %v", manual, got)
	}
	if got := Resolve(root, "a.n"); got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}
	if got := Resolve(root, "a.b.c.d"); got != nil {
		t.Errorf("Expected nil past a leaf, got %v", got)
	}
}

func TestCheckPath(t *testing.T) {
	pt := reflect.TypeOf(person{})
	valid := []string{"id", "name", "address.city", "address.Zip", "labels.team"}
	for _, path := range valid {
		if err := CheckPath(pt, path); err != nil {
			t.Errorf("CheckPath(%q) unexpected error: %v", path, err)
		}
	}

	invalid := []string{"", "missing", "address", "Tags", "Active", "address.city.x", "secret"}
	for _, path := range invalid {
		if err := CheckPath(pt, path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("CheckPath(%q) expected ErrInvalidPath, got %v", path, err)
		}
	}

	if err := CheckPath(reflect.TypeOf(map[string]any{}), "a.b.c"); err != nil {
		t.Errorf("Expected dynamic map paths to be accepted, got %v", err)
	}
}

func TestColumnsValidate(t *testing.T) {
	cols := Columns[person]{
		{Value: Key[person]("name")},
		{Value: Render(func(p person, _ int) *markup.Node { return nil })},
		{Title: "Broken", Value: Key[person]("address.street")},
	}
	err := cols.Validate()
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("Expected ErrInvalidPath, got %v", err)
	}
	if cols[:2].Validate() != nil {
		t.Errorf("Expected valid columns to pass")
	}
}

func TestColumnsValidate_SortableRenderColumn(t *testing.T) {
	cols := Columns[person]{
		{Title: "Badge", Value: Render(func(p person, _ int) *markup.Node { return nil }), Sort: SortByValue()},
	}
	if err := cols.Validate(); !errors.Is(err, ErrNoSortKey) {
		t.Errorf("Expected ErrNoSortKey, got %v", err)
	}

	cols[0].Sort = SortBy("badge")
	if err := cols.Validate(); err != nil {
		t.Errorf("Expected an explicit sort key to pass, got %v", err)
	}
}

func TestDisplayValue(t *testing.T) {
	type status string
	tests := []struct {
		in   any
		text string
		ok   bool
	}{
		{nil, "", true},
		{"x", "x", true},
		{status("open"), "open", true},
		{42, "42", true},
		{int8(-3), "-3", true},
		{uint64(9), "9", true},
		{1.5, "1.5", true},
		{float32(0.25), "0.25", true},
		{json.Number("12"), "12", true},
		{true, "", false},
		{[]int{1}, "", false},
		{map[string]any{}, "", false},
		{struct{}{}, "", false},
	}
	for _, tt := range tests {
		n, ok := displayValue(tt.in)
		if ok != tt.ok {
			t.Errorf("displayValue(%#v) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if got := n.TextContent(); got != tt.text {
			t.Errorf("displayValue(%#v) = %q, want %q", tt.in, got, tt.text)
		}
	}
}

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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/datatable/core/markup"
)

func TestMergeCellProps(t *testing.T) {
	shared := &CellProps{
		ClassName: "shared",
		Style:     markup.Style{"color": "red", "width": "10px"},
		Component: "Base",
		Attrs:     markup.Attrs{"title": "shared", "lang": "en"},
	}
	specific := &CellProps{
		ClassName: "specific",
		Style:     markup.Style{"width": "20px"},
		Component: "Head",
		Attrs:     markup.Attrs{"title": "specific"},
	}

	got := MergeCellProps(shared, specific)
	want := CellProps{
		ClassName: "shared specific",
		Style:     markup.Style{"color": "red", "width": "20px"},
		Component: "Head",
		Attrs:     markup.Attrs{"title": "specific", "lang": "en"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeCellProps mismatch (-want +got):\n%s", diff)
	}
	if shared.Style["width"] != "10px" || shared.Attrs["title"] != "shared" {
		t.Errorf("Expected inputs to stay untouched, got %+v", shared)
	}
}

func TestMergeCellProps_NilAndEmpty(t *testing.T) {
	if diff := cmp.Diff(CellProps{}, MergeCellProps(nil, nil)); diff != "" {
		t.Errorf("Expected empty bag (-want +got):\n%s", diff)
	}
	got := MergeCellProps(nil, &CellProps{ClassName: "only"})
	if got.ClassName != "only" {
		t.Errorf("Expected 'only', got %q", got.ClassName)
	}
	got = MergeCellProps(&CellProps{ClassName: "", Component: "Keep"}, &CellProps{ClassName: ""})
	if got.ClassName != "" || got.Component != "Keep" {
		t.Errorf("Expected empty class and kept component, got %+v", got)
	}
}

func TestComponentTag(t *testing.T) {
	if got := ComponentTag("DataTable", ""); got != "DataTable" {
		t.Errorf("Expected DataTable, got %q", got)
	}
	if got := ComponentTag("DataTableHeadCell", "Price"); got != "DataTableHeadCell/Price" {
		t.Errorf("Expected DataTableHeadCell/Price, got %q", got)
	}
}

func TestSort(t *testing.T) {
	s := Sort("-name")
	if s.Key() != "name" || !s.Descending() || s.Direction() != -1 {
		t.Errorf("Unexpected decoding of %q: %q %v %d", s, s.Key(), s.Descending(), s.Direction())
	}
	if SortOn("name", true) != s || SortOn("name", false) != "name" {
		t.Errorf("SortOn did not round trip")
	}
	if Sort("").Direction() != 1 {
		t.Errorf("Expected empty sort to be ascending")
	}
}

func TestFilterMap(t *testing.T) {
	f := FilterMap{"a": "x", "b": "", "c": 0, "d": false, "e": nil, "f": []string{}}
	if got := f.ActiveCount(); got != 2 {
		t.Errorf("Expected 2 active filters, got %d", got)
	}
	next := f.With("b", "y")
	if f["b"] != "" || next["b"] != "y" {
		t.Errorf("Expected With to copy, got %v and %v", f, next)
	}
	if got := FilterMap(nil).Clone(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil clone, got %#v", got)
	}
	if FilterText(nil) != "" || FilterText(3) != "3" {
		t.Errorf("Unexpected FilterText output")
	}
}

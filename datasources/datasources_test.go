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

package datasources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestCsvLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.csv", "id,customer.name,amount\n1,Ada,12.5\n2,Linus,7\n")

	rows, err := NewCsvLoader().Load(map[string]string{"file_path": path})
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	want := []Row{
		{"id": int64(1), "customer": Row{"name": "Ada"}, "amount": 12.5},
		{"id": int64(2), "customer": Row{"name": "Linus"}, "amount": int64(7)},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVKeepsNumberLikeText(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("zip,name,score,big\n02134,NaN,-0.50,1e999\n90210,Inf,3e2,+5\n0,infinity,0.0,0x10\n"), nil)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	want := []Row{
		{"zip": "02134", "name": "NaN", "score": -0.5, "big": "1e999"},
		{"zip": int64(90210), "name": "Inf", "score": 300.0, "big": "+5"},
		{"zip": int64(0), "name": "infinity", "score": 0.0, "big": "0x10"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestCsvLoaderOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.csv", "a;1\nb;2\n")

	rows, err := NewCsvLoader().Load(map[string]string{
		"file_path":   path,
		"has_header":  "false",
		"delimiter":   ";",
		"infer_types": "false",
	})
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	want := []Row{
		{"col_0": "a", "col_1": "1"},
		{"col_0": "b", "col_1": "2"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewCsvLoader().Load(map[string]string{}); err == nil {
		t.Error("Expected error for missing file_path")
	}
}

func TestParseRows(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		rows, err := ParseRows([]byte("- name: a\n  tags: {x: 1}\n- name: b\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		if got := datatable.Resolve(rows[0], "tags.x"); got != 1 {
			t.Errorf("Expected tags.x = 1, got %v", got)
		}
	})

	t.Run("rows mapping as json", func(t *testing.T) {
		rows, err := ParseRows([]byte(`{"rows": [{"id": 1}, {"id": 2}, {"id": 3}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("Expected 3 rows, got %d", len(rows))
		}
	})

	t.Run("not rows", func(t *testing.T) {
		if _, err := ParseRows([]byte("- 1\n- 2\n")); err == nil {
			t.Error("Expected error for scalar items")
		}
		if _, err := ParseRows([]byte("just text")); err == nil {
			t.Error("Expected error for scalar document")
		}
	})
}

func TestManagerLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orders.csv", "id,status\n1,open\n2,closed\n")
	writeFile(t, dir, "items.yaml", "- sku: x1\n")
	configPath := writeFile(t, dir, "sources.yaml", `
sources:
  - name: orders
    source_type: csv
    config:
      file_path: orders.csv
  - name: items
    source_type: yaml
    config:
      file_path: items.yaml
  - name: broken
    source_type: parquet
`)

	manager := NewManager()
	if err := manager.LoadConfig(configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if diff := cmp.Diff([]string{"broken", "items", "orders"}, manager.GetSourceNames()); diff != "" {
		t.Errorf("source names mismatch (-want +got):\n%s", diff)
	}

	// Sources are registered but not loaded
	if manager.IsLoaded("orders") {
		t.Error("orders should not be loaded yet")
	}

	rows, err := manager.LoadData("orders")
	if err != nil {
		t.Fatalf("failed to load data: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(rows))
	}
	if !manager.IsLoaded("orders") {
		t.Error("orders should be loaded now")
	}

	manager.InvalidateCache("orders")
	if manager.IsLoaded("orders") {
		t.Error("orders should be evicted after InvalidateCache")
	}

	if _, err := manager.LoadData("items"); err != nil {
		t.Errorf("failed to load items: %v", err)
	}
	if _, err := manager.LoadData("broken"); err == nil {
		t.Error("Expected error for unknown source type")
	}
	if _, err := manager.LoadData("missing"); err == nil {
		t.Error("Expected error for unknown source")
	}
}

func TestManagerRegisterRows(t *testing.T) {
	manager := NewManager()
	manager.RegisterRows("mem", []Row{{"a": 1}})
	manager.InvalidateCache("mem")

	rows, err := manager.LoadData("mem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected in-memory rows to survive InvalidateCache, got %d rows", len(rows))
	}
}

func TestLayout(t *testing.T) {
	layout, err := ParseLayout([]byte(`
title: Orders
columns:
  - title: ID
    key: id
    sort: true
  - title: Customer
    key: customer.name
    sort: customer
    filter: customer
    class: wide
    head_class: head
    style:
      text-align: left
  - key: note
    sort: false
`))
	if err != nil {
		t.Fatalf("failed to parse layout: %v", err)
	}
	if layout.Title != "Orders" {
		t.Errorf("Expected title Orders, got %q", layout.Title)
	}

	defs := layout.ColumnDefs()
	if len(defs) != 3 {
		t.Fatalf("Expected 3 defs, got %d", len(defs))
	}
	if defs[0].SortKey() != "id" {
		t.Errorf("Expected sort key id, got %q", defs[0].SortKey())
	}
	if defs[1].SortKey() != "customer" || defs[1].FilterKey != "customer" {
		t.Errorf("Expected customer sort/filter keys, got %q/%q", defs[1].SortKey(), defs[1].FilterKey)
	}
	if defs[1].CellProps == nil || defs[1].CellProps.ClassName != "wide" || defs[1].CellProps.Style["text-align"] != "left" {
		t.Errorf("Expected cell props from layout, got %+v", defs[1].CellProps)
	}
	if defs[1].HeadCellProps == nil || defs[1].HeadCellProps.ClassName != "head" {
		t.Errorf("Expected head cell props, got %+v", defs[1].HeadCellProps)
	}
	if defs[2].Sort.Enabled() {
		t.Error("Expected sort: false to disable sorting")
	}

	want := map[string]string{"customer": "customer.name"}
	if diff := cmp.Diff(want, layout.Paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutErrors(t *testing.T) {
	if _, err := ParseLayout([]byte("columns:\n  - title: X\n")); err == nil {
		t.Error("Expected error for missing key")
	}
	if _, err := ParseLayout([]byte("columns:\n  - key: x\n    sort: [a]\n")); err == nil {
		t.Error("Expected error for non-scalar sort")
	}
	if _, err := LoadLayout(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestInferLayout(t *testing.T) {
	rows := []Row{
		{"id": 1, "customer": Row{"name": "Ada"}},
		{"id": 2, "note": "late"},
	}
	layout := InferLayout("Orders", rows)
	var keys []string
	for _, c := range layout.Columns {
		keys = append(keys, c.Key)
		if !c.Sort.Enabled || c.Filter != c.Key {
			t.Errorf("Expected %s to sort and filter by itself, got %+v", c.Key, c)
		}
	}
	if diff := cmp.Diff([]string{"customer.name", "id", "note"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestInferLayout_SkipsValuesWithoutCell(t *testing.T) {
	rows, err := ParseRows([]byte("- {name: Ann, active: true, tags: [a, b], city: Oslo}\n- {name: Bo, active: false, city: Rome, tags: null}\n"))
	if err != nil {
		t.Fatalf("failed to parse rows: %v", err)
	}
	layout := InferLayout("People", rows)
	var keys []string
	for _, c := range layout.Columns {
		keys = append(keys, c.Key)
	}
	if diff := cmp.Diff([]string{"city", "name"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	root := datatable.New[Row]().Render(datatable.Props[Row]{Defs: layout.ColumnDefs(), Data: rows})
	var body [][]string
	for _, tr := range root.FindAll(func(n *markup.Node) bool { return n.Tag == "tr" })[1:] {
		var cells []string
		for _, td := range tr.Children {
			cells = append(cells, td.TextContent())
		}
		body = append(body, cells)
	}
	want := [][]string{{"Oslo", "Ann"}, {"Rome", "Bo"}}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

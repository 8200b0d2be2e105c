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
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
)

// Layout is the column layout file: which columns a source shows and which
// of them sort and filter.
//
//	title: Orders
//	columns:
//	  - key: id
//	  - title: Customer
//	    key: customer.name
//	    sort: customer        # or: sort: true
//	    filter: customer
//	    class: wide
//	    style: {text-align: left}
type Layout struct {
	Title   string       `yaml:"title"`
	Source  string       `yaml:"source"`
	Columns []ColumnSpec `yaml:"columns"`
}

// ColumnSpec is one column of a Layout.
type ColumnSpec struct {
	Title     string            `yaml:"title"`
	Key       string            `yaml:"key"`
	Sort      SortSpec          `yaml:"sort"`
	Filter    string            `yaml:"filter"`
	Class     string            `yaml:"class"`
	HeadClass string            `yaml:"head_class"`
	BodyClass string            `yaml:"body_class"`
	Style     map[string]string `yaml:"style"`
	Component string            `yaml:"component"`
	Attrs     map[string]string `yaml:"attrs"`
}

// SortSpec accepts either a boolean (sort by the column's key) or an
// explicit sort key.
type SortSpec struct {
	Enabled bool
	Key     string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SortSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: sort must be a boolean or a string", node.Line)
	}
	if node.ShortTag() == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*s = SortSpec{Enabled: b}
		return nil
	}
	*s = SortSpec{Enabled: node.Value != "", Key: node.Value}
	return nil
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes a layout document and checks that every column has a
// key.
func ParseLayout(data []byte) (*Layout, error) {
	layout := &Layout{}
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	for i, c := range layout.Columns {
		if c.Key == "" {
			return nil, fmt.Errorf("layout column %d (%s): key is required", i, c.Title)
		}
	}
	return layout, nil
}

// ColumnDefs converts the layout into datatable column definitions.
func (l *Layout) ColumnDefs() []datatable.ColumnDef[Row] {
	defs := make([]datatable.ColumnDef[Row], 0, len(l.Columns))
	for _, c := range l.Columns {
		def := datatable.ColumnDef[Row]{
			Title:     c.Title,
			Value:     datatable.Key[Row](c.Key),
			FilterKey: c.Filter,
		}
		switch {
		case c.Sort.Key != "":
			def.Sort = datatable.SortBy(c.Sort.Key)
		case c.Sort.Enabled:
			def.Sort = datatable.SortByValue()
		}
		if c.Class != "" || len(c.Style) > 0 || c.Component != "" || len(c.Attrs) > 0 {
			def.CellProps = &datatable.CellProps{
				ClassName: c.Class,
				Style:     markup.Style(c.Style),
				Component: c.Component,
				Attrs:     markup.Attrs(c.Attrs),
			}
		}
		if c.HeadClass != "" {
			def.HeadCellProps = &datatable.CellProps{ClassName: c.HeadClass}
		}
		if c.BodyClass != "" {
			def.BodyCellProps = &datatable.CellProps{ClassName: c.BodyClass}
		}
		defs = append(defs, def)
	}
	return defs
}

// Paths maps every sort and filter key of the layout to the value path of
// its column, for use with tables.SortRows and tables.FilterRows.
func (l *Layout) Paths() map[string]string {
	paths := make(map[string]string)
	for _, c := range l.Columns {
		if c.Sort.Key != "" {
			paths[c.Sort.Key] = c.Key
		}
		if c.Filter != "" {
			paths[c.Filter] = c.Key
		}
	}
	return paths
}

// InferLayout builds a layout showing every leaf path found in the first
// rows, in path order, each sortable and filterable by its own path. Paths
// holding a value a body cell cannot show, such as a bool or a list, in any
// sampled row are left out.
func InferLayout(title string, rows []Row) *Layout {
	const sample = 50
	seen := map[string]bool{}
	for i, row := range rows {
		if i == sample {
			break
		}
		collectPaths(row, "", seen)
	}
	paths := make([]string, 0, len(seen))
	for p, ok := range seen {
		if ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	layout := &Layout{Title: title}
	for _, p := range paths {
		layout.Columns = append(layout.Columns, ColumnSpec{
			Title:  p,
			Key:    p,
			Sort:   SortSpec{Enabled: true},
			Filter: p,
		})
	}
	return layout
}

func collectPaths(row Row, prefix string, seen map[string]bool) {
	for k, v := range row {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := v.(Row); ok {
			collectPaths(nested, path, seen)
			continue
		}
		if ok, found := seen[path]; found && !ok {
			continue
		}
		seen[path] = datatable.Displayable(v)
	}
}

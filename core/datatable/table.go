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
	"strconv"

	"github.com/google/datatable/core/markup"
)

// Props are the inputs of one table render.
type Props[T any] struct {
	Defs []ColumnDef[T]
	Data []T

	// Sort is the caller's sort state; nil means the table is not sortable.
	Sort *Sort
	// Filter is the caller's filter state; nil means the table is not
	// filterable.
	Filter FilterMap

	// OnSort and OnFilter receive change requests. The new state only
	// shows once the caller renders again with it.
	OnSort   func(Sort)
	OnFilter func(FilterMap)

	Slots Slots

	// Component, ClassName and Attrs apply to the wrapping container.
	Component string
	ClassName string
	Attrs     markup.Attrs
}

type columnIdentity struct {
	title     string
	valueKey  string
	filterKey string
}

func identityOf[T any](def ColumnDef[T]) columnIdentity {
	return columnIdentity{title: def.Title, valueKey: def.ValueKey(), filterKey: def.FilterKey}
}

// Table is a mounted table. It keeps one HeadCell per column across renders
// and holds no copy of the sort or filter state.
type Table[T any] struct {
	heads  []*HeadCell[T]
	idents []columnIdentity
}

// New mounts an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{}
}

// HeadCell returns the mounted header cell of column i, or nil.
func (t *Table[T]) HeadCell(i int) *HeadCell[T] {
	if i < 0 || i >= len(t.heads) {
		return nil
	}
	return t.heads[i]
}

// reconcile keeps header cells whose column stayed the same and remounts
// the others.
func (t *Table[T]) reconcile(defs []ColumnDef[T]) {
	if len(defs) != len(t.heads) {
		t.heads = make([]*HeadCell[T], len(defs))
		t.idents = make([]columnIdentity, len(defs))
	}
	for i, def := range defs {
		id := identityOf(def)
		if t.heads[i] == nil || t.idents[i] != id {
			t.heads[i] = NewHeadCell[T]()
			t.idents[i] = id
		}
	}
}

// Render builds the table markup for the given props.
func (t *Table[T]) Render(p Props[T]) *markup.Node {
	defs, data := p.Defs, p.Data
	if defs == nil {
		defs = []ColumnDef[T]{}
	}
	if data == nil {
		data = []T{}
	}
	t.reconcile(defs)

	root := markup.El("div").WithClass("DataTable", p.ClassName)
	for k, v := range p.Attrs {
		root.Set(k, v)
	}
	root.Set(ComponentAttr, ComponentTag("DataTable", p.Component))

	if p.Filter != nil {
		root.Append(renderFilterSummary(p.Filter, p.OnFilter))
	}

	headRow := p.Slots.Row.render(markup.El("tr"))
	for i, def := range defs {
		headRow.Append(t.heads[i].Render(HeadCellProps[T]{
			Def:      def,
			Sort:     p.Sort,
			Filter:   p.Filter,
			OnSort:   p.OnSort,
			OnFilter: p.OnFilter,
			Cell:     p.Slots.Cell,
		}))
	}
	head := p.Slots.Head.render(markup.El("thead")).Append(headRow)

	body := p.Slots.Body.render(markup.El("tbody"))
	for rowIndex, item := range data {
		row := p.Slots.Row.render(markup.El("tr"))
		for _, def := range defs {
			row.Append(BodyCell(def, item, rowIndex, p.Slots.Cell))
		}
		body.Append(row)
	}

	table := p.Slots.Table.render(markup.El("table").WithClass("Table"))
	table.Append(head, body)
	return root.Append(table)
}

// renderFilterSummary shows how many filters are set and a button clearing
// all of them at once.
func renderFilterSummary(filter FilterMap, onFilter func(FilterMap)) *markup.Node {
	count := filter.ActiveCount()
	label := strconv.Itoa(count) + " active filters"
	if count == 1 {
		label = "1 active filter"
	}
	clearAll := markup.El("button", markup.Text("Clear filters")).
		WithClass("ClearFilters").
		Set("type", "submit")
	clearAll.OnClick = func() {
		if onFilter != nil {
			onFilter(FilterMap{})
		}
	}
	return markup.El("div",
		markup.El("span", markup.Text(label)).WithClass("FilterCount"),
		clearAll,
	).WithClass("FilterSummary")
}

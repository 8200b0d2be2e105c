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

import "github.com/google/datatable/core/markup"

// HeadCellProps are the inputs of one header cell render.
type HeadCellProps[T any] struct {
	Def ColumnDef[T]
	// Sort is the table's current sort; nil disables sorting everywhere.
	Sort *Sort
	// Filter is the table's current filter map; nil disables filtering.
	Filter   FilterMap
	OnSort   func(Sort)
	OnFilter func(FilterMap)
	Cell     Renderer
}

// HeadCell is one mounted column header. Its only state is whether the
// inline filter editor is open; a new HeadCell starts closed.
type HeadCell[T any] struct {
	filterEditorOpen bool
}

// NewHeadCell mounts a header cell.
func NewHeadCell[T any]() *HeadCell[T] {
	return &HeadCell[T]{}
}

// FilterEditorOpen reports whether the filter editor is shown.
func (h *HeadCell[T]) FilterEditorOpen() bool {
	return h.filterEditorOpen
}

type sortState struct {
	sortable  bool
	active    bool
	key       string
	direction int
}

func deriveSort[T any](def ColumnDef[T], current *Sort) sortState {
	st := sortState{direction: 1}
	if current == nil || !def.Sort.Enabled() {
		return st
	}
	st.sortable = true
	st.key = def.SortKey()
	st.active = st.key != "" && st.key == current.Key()
	st.direction = current.Direction()
	return st
}

type filterState struct {
	filterable bool
	active     bool
}

func deriveFilter[T any](def ColumnDef[T], current FilterMap) filterState {
	if current == nil || def.FilterKey == "" {
		return filterState{}
	}
	return filterState{filterable: true, active: current.Active(def.FilterKey)}
}

// Render builds the header cell: the title, then the filter controls when
// the column is filterable, then the sort control when it is sortable.
func (h *HeadCell[T]) Render(p HeadCellProps[T]) *markup.Node {
	def := p.Def
	props := MergeCellProps(def.CellProps, def.HeadCellProps)
	td := p.Cell.render(markup.El("td").WithClass("HeadCell"))
	props.applyTo(td, "DataTableHeadCell")
	td.Append(markup.Text(def.HeaderTitle()))

	if fs := deriveFilter(def, p.Filter); fs.filterable {
		td.Append(h.renderFilter(p, fs)...)
	}
	if st := deriveSort(def, p.Sort); st.sortable {
		td.Append(h.renderSort(p, st))
	}
	return td
}

// handleSort requests a new sort. A column that is not the active one always
// asks for ascending order on itself, whatever direction was requested; the
// active column asks for the requested direction.
func (h *HeadCell[T]) handleSort(p HeadCellProps[T], st sortState, requested int) {
	if p.OnSort == nil {
		return
	}
	if !st.active {
		p.OnSort(Sort(st.key))
		return
	}
	p.OnSort(SortOn(st.key, requested < 0))
}

func (h *HeadCell[T]) renderSort(p HeadCellProps[T], st sortState) *markup.Node {
	button := markup.El("button").WithClass("SortButton").Set("type", "submit")
	if !st.active {
		button.Append(markup.Text("⇅")).
			Set("title", "Sort").
			Set("data-sort", "none")
	} else if st.direction < 0 {
		button.WithClass("SortButton--active").
			Append(markup.Text("▲")).
			Set("title", "Sort ascending").
			Set("data-sort", "descending")
	} else {
		button.WithClass("SortButton--active").
			Append(markup.Text("▼")).
			Set("title", "Sort descending").
			Set("data-sort", "ascending")
	}
	button.OnClick = func() { h.handleSort(p, st, -st.direction) }
	return button
}

func (h *HeadCell[T]) changeFilter(p HeadCellProps[T], next FilterMap) {
	if p.OnFilter != nil {
		p.OnFilter(next)
	}
}

func (h *HeadCell[T]) clearFilter(p HeadCellProps[T]) {
	h.changeFilter(p, p.Filter.With(p.Def.FilterKey, nil))
	h.filterEditorOpen = false
}

func (h *HeadCell[T]) renderFilter(p HeadCellProps[T], fs filterState) []*markup.Node {
	cluster := markup.El("span").WithClass("FilterCluster")
	if h.filterEditorOpen {
		cluster.Append(h.filterEditor(p))
	}

	clearButton := markup.El("button", markup.Text("×")).
		WithClass("FilterClear").
		Set("type", "submit").
		Set("title", "Clear filter")
	if !fs.active {
		clearButton.Set("disabled", "")
	}
	clearButton.OnClick = func() { h.clearFilter(p) }
	cluster.Append(clearButton)

	toggle := markup.El("button").WithClass("FilterToggle").Set("type", "submit")
	if fs.active {
		toggle.WithClass("FilterToggle--active").Append(markup.Text("Filter (active)"))
	} else {
		toggle.Append(markup.Text("Filter"))
	}
	toggle.OnClick = func() { h.filterEditorOpen = true }

	return []*markup.Node{cluster, toggle}
}

func (h *HeadCell[T]) filterEditor(p HeadCellProps[T]) *markup.Node {
	key := p.Def.FilterKey
	change := func(next FilterMap) { h.changeFilter(p, next) }
	if p.Def.RenderFilter != nil {
		return p.Def.RenderFilter(FilterParams{
			Filter:       p.Filter,
			FilterKey:    key,
			ChangeFilter: change,
		})
	}
	input := markup.El("input").
		WithClass("FilterInput").
		Set("type", "text").
		Set("value", FilterText(p.Filter[key])).
		Set("autofocus", "")
	input.OnChange = func(v string) { change(p.Filter.With(key, v)) }
	return input
}

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
	"errors"
	"fmt"
	"reflect"

	"github.com/google/datatable/core/markup"
)

// ColumnDef describes one column. Definitions are read, never modified.
type ColumnDef[T any] struct {
	// Title is the header label; the value key is shown when empty.
	Title string
	// Value is Key(path) or Render(fn).
	Value Value[T]

	// CellProps apply to both header and body cells, HeadCellProps and
	// BodyCellProps are merged on top of them for their own cell.
	CellProps     *CellProps
	HeadCellProps *CellProps
	BodyCellProps *CellProps

	// Sort makes the column sortable; the zero value means it is not.
	Sort ColumnSort
	// FilterKey names the entry of the filter map this column edits; empty
	// means the column is not filterable.
	FilterKey string
	// RenderFilter replaces the default text input filter editor.
	RenderFilter RenderFilter
}

// ColumnSort says whether and by which key a column sorts.
type ColumnSort struct {
	enabled bool
	key     string
}

// SortByValue makes the column sortable by its value key.
func SortByValue() ColumnSort {
	return ColumnSort{enabled: true}
}

// SortBy makes the column sortable by an explicit key. An empty key leaves
// the column unsortable.
func SortBy(key string) ColumnSort {
	return ColumnSort{enabled: key != "", key: key}
}

// Enabled reports whether the column is sortable.
func (s ColumnSort) Enabled() bool {
	return s.enabled
}

// ValueKey returns the dotted path of a Key column, or "" for Render columns.
func (d ColumnDef[T]) ValueKey() string {
	if d.Value == nil {
		return ""
	}
	return d.Value.valueKey()
}

// SortKey returns the key this column requests sorting by.
func (d ColumnDef[T]) SortKey() string {
	if !d.Sort.enabled {
		return ""
	}
	if d.Sort.key != "" {
		return d.Sort.key
	}
	return d.ValueKey()
}

// HeaderTitle returns the title, falling back to the value key.
func (d ColumnDef[T]) HeaderTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ValueKey()
}

func (d ColumnDef[T]) cellContent(item T, index int) (*markup.Node, bool) {
	if d.Value == nil {
		return nil, true
	}
	return d.Value.content(item, index)
}

// ErrNoSortKey is reported for a sortable column that has no key to sort by.
var ErrNoSortKey = errors.New("sortable column has no sort key")

// Columns is an ordered set of column definitions.
type Columns[T any] []ColumnDef[T]

// Validate checks every Key column's path against the row type T and that
// every sortable column has a sort key. Rows typed as maps of interfaces can
// only be checked one level deep.
func (c Columns[T]) Validate() error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	var errs []error
	for i, def := range c {
		if def.Sort.Enabled() && def.SortKey() == "" {
			errs = append(errs, fmt.Errorf("column %d (%s): %w", i, def.HeaderTitle(), ErrNoSortKey))
		}
		if _, ok := def.Value.(keyValue[T]); !ok {
			continue
		}
		if err := CheckPath(t, def.ValueKey()); err != nil {
			errs = append(errs, fmt.Errorf("column %d (%s): %w", i, def.HeaderTitle(), err))
		}
	}
	return errors.Join(errs...)
}

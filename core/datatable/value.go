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

// Package datatable renders declarative data tables: column definitions plus
// a slice of rows become a markup tree with optional per-column sort and
// filter controls. The table is a controlled component; sort and filter state
// belong to the caller and changes are only ever requested via callbacks.
package datatable

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/google/datatable/core/markup"
)

// Value is where a column takes its cell content from. It is either a dotted
// value key (Key) or a render function (Render); no other implementations
// exist.
type Value[T any] interface {
	valueKey() string
	content(item T, index int) (*markup.Node, bool)
}

type keyValue[T any] struct {
	path string
}

// Key reads the cell value from the row through a dotted path.
func Key[T any](path string) Value[T] {
	return keyValue[T]{path: path}
}

func (v keyValue[T]) valueKey() string { return v.path }

func (v keyValue[T]) content(item T, _ int) (*markup.Node, bool) {
	return displayValue(Resolve(item, v.path))
}

type renderValue[T any] struct {
	render func(item T, index int) *markup.Node
}

// Render produces the cell content with a custom function.
func Render[T any](render func(item T, index int) *markup.Node) Value[T] {
	return renderValue[T]{render: render}
}

func (v renderValue[T]) valueKey() string { return "" }

func (v renderValue[T]) content(item T, index int) (*markup.Node, bool) {
	if v.render == nil {
		return nil, true
	}
	return v.render(item, index), true
}

// displayValue turns a resolved value into cell text. Nil gives an empty
// cell; strings and numbers render verbatim. Anything else is refused so that
// structured data is never dumped into the page.
// Displayable reports whether a body cell can show v as a plain value: nil,
// strings and numbers. Other values produce no cell.
func Displayable(v any) bool {
	_, ok := displayValue(v)
	return ok
}

func displayValue(v any) (*markup.Node, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case string:
		return markup.Text(x), true
	case json.Number:
		return markup.Text(x.String()), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return markup.Text(rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return markup.Text(strconv.FormatInt(rv.Int(), 10)), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return markup.Text(strconv.FormatUint(rv.Uint(), 10)), true
	case reflect.Float32:
		return markup.Text(formatFloat(rv.Float(), 32)), true
	case reflect.Float64:
		return markup.Text(formatFloat(rv.Float(), 64)), true
	}
	return nil, false
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

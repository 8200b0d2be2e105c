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
	"fmt"
	"math"
	"reflect"

	"github.com/google/datatable/core/markup"
)

// FilterMap maps filter keys to caller-defined filter values. The table
// never modifies a FilterMap it was given; every change is a new map.
type FilterMap map[string]any

// Clone returns a shallow copy. Cloning nil gives an empty map.
func (f FilterMap) Clone() FilterMap {
	out := make(FilterMap, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy with key set to v.
func (f FilterMap) With(key string, v any) FilterMap {
	out := f.Clone()
	out[key] = v
	return out
}

// Active reports whether the value under key is truthy.
func (f FilterMap) Active(key string) bool {
	return Truthy(f[key])
}

// ActiveCount counts the truthy values.
func (f FilterMap) ActiveCount() int {
	n := 0
	for _, v := range f {
		if Truthy(v) {
			n++
		}
	}
	return n
}

// Truthy mirrors the browser notion of a set filter: nil, "", false, zero and
// NaN are unset, everything else is set.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface())
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// FilterText returns the text shown in a filter input for a value.
func FilterText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// FilterParams is handed to a custom filter editor.
type FilterParams struct {
	Filter    FilterMap
	FilterKey string
	// ChangeFilter requests a new filter map.
	ChangeFilter func(FilterMap)
}

// RenderFilter produces a custom filter editor.
type RenderFilter func(FilterParams) *markup.Node

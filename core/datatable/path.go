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
	"strings"
)

// ErrInvalidPath is returned by CheckPath when a dotted path does not lead to
// a string or number.
var ErrInvalidPath = errors.New("invalid value path")

// Resolve walks a dotted path such as "customer.address.city" through nested
// maps and structs. It returns nil as soon as any step is missing or nil;
// it never panics on absent intermediates.
//
// Maps must be keyed by strings. Struct fields match by json tag name first,
// then by Go field name. There are no index or wildcard segments.
func Resolve(root any, path string) any {
	if isNil(root) {
		return nil
	}
	if !strings.Contains(path, ".") {
		return lookup(root, path)
	}
	cur := root
	for _, segment := range strings.Split(path, ".") {
		cur = lookup(cur, segment)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func lookup(v any, key string) any {
	if m, ok := v.(map[string]any); ok {
		return unwrap(reflect.ValueOf(m[key]))
	}
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !mv.IsValid() {
			return nil
		}
		return unwrap(mv)
	case reflect.Struct:
		f, ok := fieldByKey(rv.Type(), key)
		if !ok {
			return nil
		}
		return unwrap(rv.Field(f.Index[0]))
	}
	return nil
}

// unwrap dereferences pointers and interfaces and returns the underlying
// value, or nil when it is absent.
func unwrap(v reflect.Value) any {
	v, ok := deref(v)
	if !ok || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	_, ok := deref(reflect.ValueOf(v))
	return !ok
}

// fieldByKey finds a top-level exported field by json name, then by Go name.
func fieldByKey(t reflect.Type, key string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" && name == key {
			return f, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && f.Name == key {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// CheckPath reports whether path is a valid value path for rows of type t:
// every segment must name a field or map entry, and the last one must hold a
// string or a number. Segments reached through interface-typed values cannot
// be checked and are accepted.
func CheckPath(t reflect.Type, path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	cur := t
	for _, segment := range strings.Split(path, ".") {
		for cur.Kind() == reflect.Pointer {
			cur = cur.Elem()
		}
		switch cur.Kind() {
		case reflect.Interface:
			return nil
		case reflect.Map:
			if cur.Key().Kind() != reflect.String {
				return fmt.Errorf("%w: %q: %s is not keyed by strings", ErrInvalidPath, path, cur)
			}
			cur = cur.Elem()
		case reflect.Struct:
			f, ok := fieldByKey(cur, segment)
			if !ok {
				return fmt.Errorf("%w: %q: %s has no field %q", ErrInvalidPath, path, cur, segment)
			}
			cur = f.Type
		default:
			return fmt.Errorf("%w: %q: cannot select %q from %s", ErrInvalidPath, path, segment, cur)
		}
	}
	for cur.Kind() == reflect.Pointer {
		cur = cur.Elem()
	}
	switch cur.Kind() {
	case reflect.Interface, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	}
	return fmt.Errorf("%w: %q ends in %s, not a string or number", ErrInvalidPath, path, cur)
}

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

// Package columns compares resolved cell values so that rows can be ordered
// by any column of mixed or dynamic type.
package columns

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// valueRank orders values of different kinds: absent values first, then
// numbers, strings, booleans, times, durations, and everything else.
type valueRank int

const (
	rankNil valueRank = iota
	rankNumber
	rankString
	rankBool
	rankTime
	rankDuration
	rankOther
)

// Compare compares two resolved values.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Values of the same kind compare naturally; values of different kinds are
// ordered by kind so that a mixed column still sorts deterministically.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case rankNil:
		return 0
	case rankNumber:
		fa, _ := toFloat64(a)
		fb, _ := toFloat64(b)
		return compareFloat64s(fa, fb)
	case rankString:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	case rankBool:
		return compareBools(reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool())
	case rankTime:
		return compareTimes(a.(time.Time), b.(time.Time))
	case rankDuration:
		return compareDurations(a.(time.Duration), b.(time.Duration))
	default:
		// Fallback: use string representation
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func rank(v any) valueRank {
	switch v.(type) {
	case nil:
		return rankNil
	case time.Time:
		return rankTime
	case time.Duration:
		return rankDuration
	case json.Number:
		return rankNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	case reflect.Bool:
		return rankBool
	}
	return rankOther
}

// toFloat64 converts any numeric value to float64.
func toFloat64(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// compareTimes compares two time.Time values
func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// compareDurations compares two time.Duration values
func compareDurations(a, b time.Duration) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0 // Both NaN - equal
	}
	if aNaN {
		return 1 // a is NaN, b isn't - a comes after
	}
	if bNaN {
		return -1 // b is NaN, a isn't - a comes before
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

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

// Package datasources provides a unified interface for loading table rows
// from files (CSV, YAML, JSON) together with the column layout describing how
// a datatable presents them.
package datasources

import "strings"

// Row is one record of a loaded data source. Nested maps are reachable
// through dotted value paths.
type Row = map[string]any

// DataSource describes one named source and how to load it.
type DataSource struct {
	Name       string            `yaml:"name"`
	SourceType string            `yaml:"source_type"`
	Config     map[string]string `yaml:"config"`
}

// DataSourcesConfig is the on-disk list of sources.
type DataSourcesConfig struct {
	Sources []*DataSource `yaml:"sources"`
}

// DataSourceLoader loads the rows of one kind of source.
type DataSourceLoader interface {
	// SourceType returns the source_type this loader handles.
	SourceType() string
	// Load reads every row of the source described by config.
	Load(config map[string]string) ([]Row, error)
}

// setPath stores value under a dotted path, creating intermediate maps.
// A plain value already stored on the way is replaced by a map.
func setPath(row Row, path string, value any) {
	segments := strings.Split(path, ".")
	cur := row
	for _, segment := range segments[:len(segments)-1] {
		next, ok := cur[segment].(Row)
		if !ok {
			next = Row{}
			cur[segment] = next
		}
		cur = next
	}
	cur[segments[len(segments)-1]] = value
}

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

	"gopkg.in/yaml.v3"
)

// YamlLoader implements DataSourceLoader for YAML and JSON documents. The
// document is either a sequence of mappings or a mapping with a "rows"
// sequence.
//
// Required config keys:
//   - file_path: Path to the document
type YamlLoader struct {
	sourceType string
}

// NewYamlLoader creates a loader registered as "yaml".
func NewYamlLoader() *YamlLoader {
	return &YamlLoader{sourceType: "yaml"}
}

// NewJSONLoader creates the same loader registered as "json"; JSON documents
// are valid YAML.
func NewJSONLoader() *YamlLoader {
	return &YamlLoader{sourceType: "json"}
}

// SourceType returns the registered source type.
func (l *YamlLoader) SourceType() string {
	return l.sourceType
}

// Load reads the document and returns its rows.
func (l *YamlLoader) Load(config map[string]string) ([]Row, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", l.sourceType, err)
	}
	return ParseRows(data)
}

// ParseRows decodes rows from a YAML or JSON document.
func ParseRows(data []byte) ([]Row, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}
	if m, ok := normalize(doc).(Row); ok {
		doc = m["rows"]
	}
	items, ok := normalize(doc).([]any)
	if !ok {
		return nil, fmt.Errorf("failed to parse rows: expected a sequence of mappings")
	}
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row, ok := item.(Row)
		if !ok {
			return nil, fmt.Errorf("failed to parse rows: item %d is not a mapping", i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalize turns every decoded mapping into a Row so that dotted paths can
// walk it.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		out := make(Row, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	}
	return v
}

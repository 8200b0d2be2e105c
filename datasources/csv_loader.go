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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
)

// CsvLoader implements DataSourceLoader for CSV files.
// Dotted header names ("customer.name") become nested maps.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - infer_types: "true" or "false" (default: "true"); integers and floats
//     are stored as numbers instead of strings
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load loads a CSV file and returns its rows.
func (l *CsvLoader) Load(config map[string]string) ([]Row, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, config)
}

// ReadCSV reads rows from CSV text using the optional keys of config.
func ReadCSV(r io.Reader, config map[string]string) ([]Row, error) {
	hasHeader := config["has_header"] != "false"
	inferTypes := config["infer_types"] != "false"

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = rune(d[0])
	}

	// Create CSV reader
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	// Determine column names
	var columnNames []string
	dataStart := 0
	if hasHeader {
		columnNames = records[0]
		dataStart = 1
	} else {
		// Generate column names: col_0, col_1, etc.
		for i := range records[0] {
			columnNames = append(columnNames, fmt.Sprintf("col_%d", i))
		}
	}

	rows := make([]Row, 0, len(records)-dataStart)
	for _, record := range records[dataStart:] {
		row := Row{}
		for i, name := range columnNames {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			if inferTypes {
				setPath(row, name, inferValue(value))
			} else {
				setPath(row, name, value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// decimalNumber matches plain decimal notation without leading zeros, so ZIP
// codes and words like "NaN" or "Inf" stay text.
var decimalNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// inferValue converts numeric text to int64 or float64; everything else
// stays a string. Integers must format back to the same text.
func inferValue(s string) any {
	if !decimalNumber.MatchString(s) {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

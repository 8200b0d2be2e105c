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

package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/datatable/datasources"
)

//go:embed data/orders.csv
var ordersCSV string

//go:embed data/regions.yaml
var regionsYAML string

// OrderRows returns the demo orders. Customer fields are nested under
// "customer".
func OrderRows() []datasources.Row {
	rows, err := datasources.ReadCSV(strings.NewReader(ordersCSV), nil)
	if err != nil {
		panic(fmt.Sprintf("failed to import orders CSV: %v", err))
	}
	return rows
}

// RegionRows returns the demo regions.
func RegionRows() []datasources.Row {
	rows, err := datasources.ParseRows([]byte(regionsYAML))
	if err != nil {
		panic(fmt.Sprintf("failed to import regions YAML: %v", err))
	}
	return rows
}

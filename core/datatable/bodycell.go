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

// BodyCell renders the cell of one column for one row. Render columns wrap
// whatever the function returns. Key columns resolve their path: nil renders
// an empty cell, strings and numbers render as text, and any other value
// yields no cell at all (nil).
func BodyCell[T any](def ColumnDef[T], item T, index int, cell Renderer) *markup.Node {
	content, ok := def.cellContent(item, index)
	if !ok {
		return nil
	}
	props := MergeCellProps(def.CellProps, def.BodyCellProps)
	td := cell.render(markup.El("td").WithClass("BodyCell"))
	props.applyTo(td, "DataTableBodyCell")
	return td.Append(content)
}

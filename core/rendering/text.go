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

package rendering

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
)

const (
	headCellComponent = "DataTableHeadCell"
	bodyCellComponent = "DataTableBodyCell"
)

// RenderText writes a rendered datatable as an ASCII grid. Header titles
// come from the head cells, body text from the body cells; controls are
// left out.
func RenderText(w io.Writer, root *markup.Node) {
	var header []string
	var rows [][]string
	for _, tr := range root.FindAll(func(n *markup.Node) bool { return n.Tag == "tr" }) {
		heads := cellsOf(tr, headCellComponent)
		if len(heads) > 0 {
			for _, td := range heads {
				header = append(header, headTitle(td))
			}
			continue
		}
		var row []string
		for _, td := range cellsOf(tr, bodyCellComponent) {
			row = append(row, strings.TrimSpace(td.TextContent()))
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// cellsOf returns the direct cells of a row rendered by the given component.
func cellsOf(tr *markup.Node, component string) []*markup.Node {
	var cells []*markup.Node
	for _, c := range flatten(tr.Children) {
		tag, _ := c.Attr(datatable.ComponentAttr)
		if tag == component || strings.HasPrefix(tag, component+"/") {
			cells = append(cells, c)
		}
	}
	return cells
}

// headTitle is the text placed directly in a head cell, before any controls.
func headTitle(td *markup.Node) string {
	for _, c := range flatten(td.Children) {
		if c.Tag == markup.TextTag {
			return c.Text
		}
	}
	return ""
}

func flatten(nodes []*markup.Node) []*markup.Node {
	var out []*markup.Node
	for _, n := range nodes {
		if n != nil && n.Tag == markup.FragmentTag {
			out = append(out, flatten(n.Children)...)
			continue
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

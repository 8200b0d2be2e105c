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
	"strconv"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
	"github.com/google/datatable/core/server"
	"github.com/google/datatable/datasources"
)

type Row = datasources.Row

// Statuses lists the order statuses offered by the status filter.
var Statuses = []string{"open", "shipped", "cancelled"}

// OrderTable presents the orders: a nested customer path, a rendered amount
// column and a select filter for the status.
func OrderTable() server.TableConfig {
	return server.TableConfig{
		Title: "Orders",
		Defs: []datatable.ColumnDef[Row]{
			{
				Title: "Order",
				Value: datatable.Key[Row]("id"),
				Sort:  datatable.SortByValue(),
			},
			{
				Title:     "Customer",
				Value:     datatable.Key[Row]("customer.name"),
				Sort:      datatable.SortBy("customer"),
				FilterKey: "customer",
			},
			{
				Title:     "Region",
				Value:     datatable.Key[Row]("customer.region"),
				FilterKey: "region",
			},
			{
				Title:        "Status",
				Value:        datatable.Render(statusBadge),
				Sort:         datatable.SortBy("status"),
				FilterKey:    "status",
				RenderFilter: statusFilter,
			},
			{
				Title:         "Amount",
				Value:         datatable.Render(amount),
				Sort:          datatable.SortBy("amount"),
				CellProps:     &datatable.CellProps{Style: markup.Style{"text-align": "right"}},
				HeadCellProps: &datatable.CellProps{ClassName: "Numeric"},
			},
			{
				Title: "Placed",
				Value: datatable.Key[Row]("placed"),
				Sort:  datatable.SortByValue(),
			},
		},
		Paths: map[string]string{
			"customer": "customer.name",
			"region":   "customer.region",
			"status":   "status",
			"amount":   "amount",
		},
	}
}

// RegionTable presents the regions with every column sortable.
func RegionTable() server.TableConfig {
	return server.TableConfig{
		Title: "Regions",
		Defs: []datatable.ColumnDef[Row]{
			{Title: "Code", Value: datatable.Key[Row]("code"), Sort: datatable.SortByValue()},
			{Title: "Name", Value: datatable.Key[Row]("name"), Sort: datatable.SortByValue(), FilterKey: "name"},
			{Title: "Offices", Value: datatable.Key[Row]("offices"), Sort: datatable.SortByValue()},
			{Title: "Lead", Value: datatable.Key[Row]("lead.name"), FilterKey: "lead"},
		},
		Paths: map[string]string{"lead": "lead.name"},
	}
}

func statusBadge(row Row, _ int) *markup.Node {
	status, _ := datatable.Resolve(row, "status").(string)
	return markup.El("span", markup.Text(status)).WithClass("Status", "Status--"+status)
}

func amount(row Row, _ int) *markup.Node {
	var v float64
	switch x := datatable.Resolve(row, "amount").(type) {
	case int64:
		v = float64(x)
	case float64:
		v = x
	default:
		return nil
	}
	return markup.Text("$" + strconv.FormatFloat(v, 'f', 2, 64))
}

// statusFilter edits the status filter with a select; the Apply button
// submits the form without triggering any other control.
func statusFilter(p datatable.FilterParams) *markup.Node {
	current := datatable.FilterText(p.Filter[p.FilterKey])
	sel := markup.El("select").WithClass("StatusFilter")
	sel.Append(markup.El("option", markup.Text("any")).Set("value", ""))
	for _, status := range Statuses {
		opt := markup.El("option", markup.Text(status)).Set("value", status)
		if status == current {
			opt.Set("selected", "")
		}
		sel.Append(opt)
	}
	sel.OnChange = func(v string) {
		p.ChangeFilter(p.Filter.With(p.FilterKey, v))
	}
	apply := markup.El("button", markup.Text("Apply")).Set("type", "submit")
	return markup.Fragment(sel, apply)
}

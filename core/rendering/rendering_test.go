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
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
	"github.com/google/datatable/core/query"
	"github.com/google/datatable/core/views"
)

type order struct {
	ID       int    `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

func renderOrders() *markup.Node {
	defs := []datatable.ColumnDef[order]{
		{Title: "ID", Value: datatable.Key[order]("id"), Sort: datatable.SortByValue()},
		{Title: "Customer", Value: datatable.Key[order]("customer"), FilterKey: "customer"},
		{Title: "Status", Value: datatable.Render(func(o order, _ int) *markup.Node {
			return markup.El("b", markup.Text(strings.ToUpper(o.Status)))
		})},
	}
	data := []order{{1, "Ada", "open"}, {2, "Linus", "closed"}}
	return datatable.New[order]().Render(datatable.Props[order]{
		Defs:   defs,
		Data:   data,
		Sort:   datatable.Sort("id").Ptr(),
		Filter: datatable.FilterMap{},
	})
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, renderOrders())
	got := buf.String()

	for _, want := range []string{"ID", "Customer", "Status", "Ada", "Linus", "OPEN", "CLOSED"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected text output to contain %q:\n%s", want, got)
		}
	}
	// Controls are not part of the text rendition
	for _, unwanted := range []string{"Filter", "▼", "active filter"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Expected text output not to contain %q:\n%s", unwanted, got)
		}
	}
	if strings.Index(got, "Ada") > strings.Index(got, "Linus") {
		t.Errorf("Expected rows in data order:\n%s", got)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, datatable.New[order]().Render(datatable.Props[order]{}))
	if strings.Contains(buf.String(), "Ada") {
		t.Errorf("Expected no rows, got:\n%s", buf.String())
	}
}

func TestPageRenderer(t *testing.T) {
	r, err := NewPageRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	tree := markup.Mount(renderOrders())
	u, _ := url.Parse("/table?source=orders&limit=1")
	q := query.NewQuery(u)
	vm := views.BuildPageViewModel("Orders <1>", q, tree.HTML(), 2, 2, 1)

	var buf bytes.Buffer
	if err := r.Render(&buf, vm); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"<title>Orders &lt;1&gt;</title>",
		`<form method="post" action="/table?limit=1&amp;source=orders">`,
		`class="DataTable"`,
		"Show more",
		"Showing 1 of 2 matching rows (2 total).",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected page to contain %q:\n%s", want, got)
		}
	}
	// The no-op default button must precede every control of the table
	if strings.Index(got, `value="" hidden`) > strings.Index(got, `class="DataTable"`) {
		t.Errorf("Expected the default button before the table:\n%s", got)
	}
}

func TestRenderLanding(t *testing.T) {
	r, err := NewPageRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	var buf bytes.Buffer
	vm := views.BuildLandingViewModel("Data", "", []string{"orders"})
	if err := r.RenderLanding(&buf, vm); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if !strings.Contains(buf.String(), `href="/table?limit=25&amp;source=orders"`) {
		t.Errorf("Expected a link to the orders table:\n%s", buf.String())
	}

	buf.Reset()
	if err := r.RenderLanding(&buf, views.LandingViewModel{Title: "Empty"}); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if !strings.Contains(buf.String(), "No data sources registered.") {
		t.Errorf("Expected the empty notice:\n%s", buf.String())
	}
}

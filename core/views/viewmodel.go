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

// Package views builds the view models the page templates consume.
package views

import (
	"github.com/google/safehtml"

	"github.com/google/datatable/core/query"
)

// TableInfo describes one data source on the landing page.
type TableInfo struct {
	Name  string
	Title string
	URL   safehtml.URL
}

// LandingViewModel lists the sources that can be viewed.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableInfo
}

// PageViewModel contains a rendered table and the page chrome around it.
type PageViewModel struct {
	Title  string
	Source string
	Table  safehtml.HTML // Rendered datatable markup
	// Form action; events are posted back to the URL that rendered the page
	ActionURL safehtml.URL
	HomeURL   safehtml.URL
	Error     string // Filter or load problem shown above the table

	// Pagination info
	TotalRows     int  // Rows in the source
	MatchedRows   int  // Rows left after filtering
	DisplayedRows int  // Rows actually rendered
	HasMoreRows   bool // True if the limit cut rows off
	CurrentLimit  int
	MoreURL       safehtml.URL // URL doubling the limit
	AllURL        safehtml.URL // URL removing the limit
}

// BuildPageViewModel fills in the pagination links for q.
func BuildPageViewModel(title string, q *query.Query, table safehtml.HTML, total, matched, displayed int) PageViewModel {
	vm := PageViewModel{
		Title:         title,
		Source:        q.Source,
		Table:         table,
		ActionURL:     q.ToSafeURL(),
		HomeURL:       safehtml.URLSanitized("/"),
		TotalRows:     total,
		MatchedRows:   matched,
		DisplayedRows: displayed,
		HasMoreRows:   displayed < matched,
		CurrentLimit:  q.Limit,
	}
	if vm.HasMoreRows {
		vm.MoreURL = q.WithLimit(q.Limit * 2)
		vm.AllURL = q.WithLimit(0)
	}
	return vm
}

// BuildLandingViewModel links every source name to its table page.
func BuildLandingViewModel(title, subtitle string, names []string) LandingViewModel {
	vm := LandingViewModel{Title: title, Subtitle: subtitle}
	for _, name := range names {
		q := &query.Query{Path: "/table", Source: name, Limit: 25}
		vm.Tables = append(vm.Tables, TableInfo{Name: name, Title: name, URL: q.ToSafeURL()})
	}
	return vm
}

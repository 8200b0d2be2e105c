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

// Package demo provides built-in data for trying the datatable server
// without any files.
package demo

import (
	"github.com/google/datatable/core/server"
	"github.com/google/datatable/datasources"
)

// SetupDemoServer creates and configures a server with demo data. When
// manager is nil a new one is created.
func SetupDemoServer(manager *datasources.Manager, opts server.Options) (*server.Server, error) {
	if manager == nil {
		manager = datasources.NewManager()
	}
	manager.RegisterRows("orders", OrderRows())
	manager.RegisterRows("regions", RegionRows())

	if opts.Subtitle == "" {
		opts.Subtitle = "Sortable, filterable demo tables"
	}
	srv, err := server.NewServer(manager, opts)
	if err != nil {
		return nil, err
	}
	srv.SetTable("orders", OrderTable())
	srv.SetTable("regions", RegionTable())
	return srv, nil
}

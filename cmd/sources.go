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

package cmd

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"

	"github.com/google/datatable/core/config"
	"github.com/google/datatable/core/server"
	"github.com/google/datatable/datasources"
	"github.com/google/datatable/demo"
)

// addSourceFlags registers the flags shared by the commands reading data.
func addSourceFlags(fs *pflag.FlagSet) {
	d := config.Defaults()
	fs.String("config", "", "config file (YAML or JSON)")
	fs.String("data", d.Data, "data sources file; the built-in demo data when empty")
	fs.String("layout", d.Layout, "column layout file")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-format", d.LogFormat, "log format (text, json, json-pretty)")
}

// loadConfig resolves the settings of a command from its flags, the
// environment and the config file.
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	configFile, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.BindFlags(v, fs); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// sources is the set of data sources a command works on.
type sources struct {
	manager *datasources.Manager
	tables  map[string]server.TableConfig
}

// openSources loads the data sources file and layout named by cfg, or the
// demo data when no file is given.
func openSources(cfg *config.Config) (*sources, error) {
	s := &sources{manager: datasources.NewManager(), tables: map[string]server.TableConfig{}}
	if cfg.Data == "" {
		s.manager.RegisterRows("orders", demo.OrderRows())
		s.manager.RegisterRows("regions", demo.RegionRows())
		s.tables["orders"] = demo.OrderTable()
		s.tables["regions"] = demo.RegionTable()
	} else if err := s.manager.LoadConfig(cfg.Data); err != nil {
		return nil, err
	}

	if cfg.Layout == "" {
		return s, nil
	}
	layout, err := datasources.LoadLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	targets := s.manager.GetSourceNames()
	if layout.Source != "" {
		if s.manager.GetSource(layout.Source) == nil {
			return nil, fmt.Errorf("layout %s: source %q not found", cfg.Layout, layout.Source)
		}
		targets = []string{layout.Source}
	}
	for _, name := range targets {
		title := layout.Title
		if title == "" {
			title = name
		}
		s.tables[name] = server.TableConfig{Title: title, Defs: layout.ColumnDefs(), Paths: layout.Paths()}
	}
	return s, nil
}

// table returns the rows of a source and how to present them.
func (s *sources) table(name string) ([]datasources.Row, server.TableConfig, error) {
	if s.manager.GetSource(name) == nil {
		if suggestion := closest(name, s.manager.GetSourceNames()); suggestion != "" {
			return nil, server.TableConfig{}, fmt.Errorf("source %q not found, did you mean %q?", name, suggestion)
		}
		return nil, server.TableConfig{}, fmt.Errorf("source %q not found (have %v)", name, s.manager.GetSourceNames())
	}
	rows, err := s.manager.LoadData(name)
	if err != nil {
		return nil, server.TableConfig{}, err
	}
	if cfg, ok := s.tables[name]; ok {
		return rows, cfg, nil
	}
	layout := datasources.InferLayout(name, rows)
	return rows, server.TableConfig{Title: name, Defs: layout.ColumnDefs(), Paths: layout.Paths()}, nil
}

// closest returns the candidate within a small edit distance of name.
func closest(name string, candidates []string) string {
	best, bestDistance := "", 3
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	v, err := NewViper("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), *got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datatable.yaml")
	content := "addr: \":9000\"\npage-size: 10\nlog-format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATATABLE_PAGE_SIZE", "50")
	t.Setenv("DATATABLE_SESSION_CACHE_SIZE", "8")

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8097", "")
	flags.String("log-format", "text", "")
	flags.String("config", "", "")
	if err := flags.Parse([]string{"--log-format=json-pretty"}); err != nil {
		t.Fatal(err)
	}
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Addr != ":9000" {
		t.Errorf("Expected addr from the config file, got %q", got.Addr)
	}
	if got.PageSize != 50 {
		t.Errorf("Expected page size from the environment, got %d", got.PageSize)
	}
	if got.SessionCacheSize != 8 {
		t.Errorf("Expected session cache size from the environment, got %d", got.SessionCacheSize)
	}
	if got.LogFormat != "json-pretty" {
		t.Errorf("Expected log format from the flag, got %q", got.LogFormat)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing config file")
	}

	t.Setenv("DATATABLE_SESSION_CACHE_SIZE", "0")
	v, err := NewViper("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Load(v); err == nil {
		t.Error("Expected error for a zero session cache size")
	}
}

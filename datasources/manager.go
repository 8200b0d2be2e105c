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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager handles loading and caching of data sources.
// Source metadata is registered eagerly; rows are loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name
	sources map[string]*DataSource

	// Cached rows indexed by source name - populated lazily
	rows map[string][]Row

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager with the CSV, YAML and JSON
// loaders registered.
func NewManager() *Manager {
	m := &Manager{
		sources: make(map[string]*DataSource),
		rows:    make(map[string][]Row),
		loaders: make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewYamlLoader())
	m.RegisterLoader(NewJSONLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// LoadConfig loads a DataSourcesConfig from a YAML file. Relative file
// paths are resolved against the config file's directory.
func (m *Manager) LoadConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := &DataSourcesConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.SetBaseDir(filepath.Dir(configPath))
	for _, source := range config.Sources {
		if source.Name == "" {
			return fmt.Errorf("config file %s: source without a name", configPath)
		}
		m.AddSource(source)
	}
	return nil
}

// SetBaseDir sets the base directory for resolving relative paths in config.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source, replacing any source of the same name and
// dropping its cached rows.
func (m *Manager) AddSource(source *DataSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
	delete(m.rows, source.Name)
}

// RegisterRows registers rows that are not loaded from a file.
func (m *Manager) RegisterRows(name string, rows []Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[name] = &DataSource{Name: name, SourceType: "memory"}
	m.rows[name] = rows
}

// GetSourceNames returns all registered source names in sorted order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSource returns the source metadata for a given name.
// Returns nil if the source is not found.
func (m *Manager) GetSource(name string) *DataSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// LoadData loads the rows of a source by name.
// Returns cached rows if already loaded; otherwise loads from the source.
// The returned slice is shared and must not be modified.
func (m *Manager) LoadData(sourceName string) ([]Row, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	if rows, ok := m.rows[sourceName]; ok {
		m.mu.RUnlock()
		return rows, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	// Check if loader is registered
	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.SourceType)
	}

	rows, err := loader.Load(m.resolveConfigPaths(source.Config, baseDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	// Cache the result
	m.mu.Lock()
	m.rows[sourceName] = rows
	m.mu.Unlock()

	return rows, nil
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func (m *Manager) resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if k == "file_path" && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
// Rows registered in memory are kept.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sources[sourceName]; ok && s.SourceType == "memory" {
		return
	}
	delete(m.rows, sourceName)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rows[sourceName]
	return ok
}

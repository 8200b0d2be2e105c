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

// Package config resolves the server settings from flags, DATATABLE_*
// environment variables, an optional config file and defaults, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable: the key
// "session-cache-size" is read from DATATABLE_SESSION_CACHE_SIZE.
const EnvPrefix = "datatable"

// Config holds the resolved settings.
type Config struct {
	Addr             string `mapstructure:"addr"`
	Data             string `mapstructure:"data"`   // Data sources file; the demo data when empty
	Layout           string `mapstructure:"layout"` // Column layout file; the demo columns when empty
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`
	SessionCacheSize int    `mapstructure:"session-cache-size"`
	PageSize         int    `mapstructure:"page-size"`
}

// Defaults returns the settings used when nothing else is given.
func Defaults() Config {
	return Config{
		Addr:             ":8097",
		LogLevel:         "info",
		LogFormat:        "text",
		SessionCacheSize: 1024,
		PageSize:         25,
	}
}

// NewViper creates a viper instance with defaults and environment mapping
// installed. configFile is read when not empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("data", d.Data)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("session-cache-size", d.SessionCacheSize)
	v.SetDefault("page-size", d.PageSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// BindFlags lets explicitly set flags override every other source.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, err)
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("error mapping command flags: %w", errors.Join(errs...))
	}
	return nil
}

// Load decodes and checks the settings.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if c.SessionCacheSize <= 0 {
		return nil, fmt.Errorf("session-cache-size must be positive, got %d", c.SessionCacheSize)
	}
	if c.PageSize < 0 {
		return nil, fmt.Errorf("page-size must not be negative, got %d", c.PageSize)
	}
	return c, nil
}

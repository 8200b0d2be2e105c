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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/google/datatable/core/config"
	"github.com/google/datatable/core/logging"
	"github.com/google/datatable/core/server"
)

func init() {
	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Serve data tables over HTTP",
		Long: `Serve data tables over HTTP.

Every flag can also be set through an environment variable named after it
with the DATATABLE_ prefix, e.g. DATATABLE_PAGE_SIZE=50.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	d := config.Defaults()
	addSourceFlags(serveCommand.Flags())
	serveCommand.Flags().StringP("addr", "a", d.Addr, "listen address")
	serveCommand.Flags().Int("session-cache-size", d.SessionCacheSize, "sessions kept in memory")
	serveCommand.Flags().Int("page-size", d.PageSize, "rows shown before paging (0 shows all)")
	RootCommand.AddCommand(serveCommand)
}

func newServer(cfg *config.Config, logger *logrus.Logger) (*server.Server, error) {
	src, err := openSources(cfg)
	if err != nil {
		return nil, err
	}
	srv, err := server.NewServer(src.manager, server.Options{
		PageSize:         cfg.PageSize,
		SessionCacheSize: cfg.SessionCacheSize,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}
	for name, table := range src.tables {
		srv.SetTable(name, table)
	}
	return srv, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("Server listening")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

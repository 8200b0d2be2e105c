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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/logging"
	"github.com/google/datatable/core/query"
	"github.com/google/datatable/core/rendering"
	"github.com/google/datatable/core/server"
	"github.com/google/datatable/datasources"
)

type renderCommandParams struct {
	sort    string
	filters map[string]string
	limit   int
	format  string
}

func init() {
	var params renderCommandParams

	renderCommand := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a data table to the terminal",
		Long: `Render one data source as a table.

The text format prints an ASCII grid; the html format prints the markup the
server would embed in its page.

Example:

    render orders --sort=-amount --filter status=open --limit 10`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if params.format != "text" && params.format != "html" {
				return fmt.Errorf("unknown format %q (want text or html)", params.format)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			src, err := openSources(cfg)
			if err != nil {
				return err
			}
			return renderSource(cmd.OutOrStdout(), logger, src, args[0], params)
		},
	}

	addSourceFlags(renderCommand.Flags())
	renderCommand.Flags().StringVarP(&params.sort, "sort", "s", "", "sort key, prefixed with - for descending order")
	renderCommand.Flags().StringToStringVarP(&params.filters, "filter", "f", nil, "filter as key=value (repeatable)")
	renderCommand.Flags().IntVarP(&params.limit, "limit", "n", 0, "maximum number of rows (0 shows all)")
	renderCommand.Flags().StringVar(&params.format, "format", "text", "output format (text, html)")
	RootCommand.AddCommand(renderCommand)
}

func renderSource(w io.Writer, logger logrus.FieldLogger, src *sources, name string, params renderCommandParams) error {
	rows, table, err := src.table(name)
	if err != nil {
		return err
	}
	q := &query.Query{Source: name, Sort: params.sort, Filters: params.filters, Limit: params.limit}
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}

	view := server.Render(datatable.New[datasources.Row](), table, rows, q)
	log := logger.WithFields(logrus.Fields{"source": name, "sort": q.Sort, "filters": q.Filters})
	if view.Err != nil {
		log.WithError(view.Err).Warn("Invalid filter")
		return view.Err
	}
	log.WithFields(logrus.Fields{
		"total":     view.Total,
		"matched":   view.Matched,
		"displayed": view.Displayed,
	}).Debug("Rendered table")

	switch params.format {
	case "html":
		_, err = fmt.Fprintln(w, view.Tree.HTML().String())
		return err
	default:
		rendering.RenderText(w, view.Tree.Root())
		_, err = fmt.Fprintf(w, "%d of %d rows\n", view.Displayed, view.Total)
		return err
	}
}


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

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var defaultRenderBuckets = prometheus.ExponentialBuckets(0.0005, 2, 14)

// collectors holds the server's metrics on a private registry so that
// several servers can coexist in one process.
type collectors struct {
	registry       *prometheus.Registry
	renderDuration *prometheus.HistogramVec
	events         *prometheus.CounterVec
	sessions       prometheus.Gauge
}

func newCollectors() *collectors {
	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datatable_render_duration_seconds",
			Help:    "Time spent filtering, sorting and rendering a table.",
			Buckets: defaultRenderBuckets,
		},
		[]string{"method"},
	)
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datatable_events_total",
			Help: "Posted table events by the kind of change they caused.",
		},
		[]string{"kind"},
	)
	sessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "datatable_sessions",
			Help: "Table sessions currently held in memory.",
		},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(renderDuration, events, sessions)
	return &collectors{
		registry:       registry,
		renderDuration: renderDuration,
		events:         events,
		sessions:       sessions,
	}
}

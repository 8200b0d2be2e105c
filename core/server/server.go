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

// Package server serves datatables over HTTP. Sort and filter state lives in
// the URL; the head-cell editor state lives in a per-session Table. Pages
// are plain forms: a posted form is replayed against the tree that rendered
// it and answered with a redirect to the URL of the requested state.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/google/datatable/core/datatable"
	"github.com/google/datatable/core/markup"
	"github.com/google/datatable/core/query"
	"github.com/google/datatable/core/rendering"
	"github.com/google/datatable/core/tables"
	"github.com/google/datatable/core/views"
	"github.com/google/datatable/datasources"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "datatable_session"

// TableConfig describes how one source is presented.
type TableConfig struct {
	Title string
	Defs  []datatable.ColumnDef[datasources.Row]
	// Paths maps sort and filter keys to value paths; keys not listed are
	// used as paths themselves.
	Paths map[string]string
}

// Options tunes a Server. Zero values select defaults.
type Options struct {
	Title            string
	Subtitle         string
	PageSize         int
	SessionCacheSize int
	Logger           logrus.FieldLogger
}

// session holds the table instance of one browser session and source.
type session struct {
	mu    sync.Mutex
	table *datatable.Table[datasources.Row]
}

// Server represents the application server with all its dependencies
type Server struct {
	manager  *datasources.Manager
	renderer *rendering.PageRenderer
	logger   logrus.FieldLogger
	metrics  *collectors
	options  Options

	mu     sync.RWMutex
	tables map[string]TableConfig

	sessions *lru.Cache[string, *session]
}

// NewServer creates a new server over the sources of manager.
func NewServer(manager *datasources.Manager, opts Options) (*Server, error) {
	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "Data tables"
	}
	if opts.PageSize < 0 {
		opts.PageSize = 0
	}
	if opts.SessionCacheSize <= 0 {
		opts.SessionCacheSize = 1024
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	s := &Server{
		manager:  manager,
		renderer: renderer,
		logger:   opts.Logger,
		metrics:  newCollectors(),
		options:  opts,
		tables:   make(map[string]TableConfig),
	}
	s.sessions, err = lru.NewWithEvict[string, *session](opts.SessionCacheSize, func(string, *session) {
		s.metrics.sessions.Dec()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return s, nil
}

// SetTable registers how a source is presented. Sources without a config
// show every column found in their rows.
func (s *Server) SetTable(source string, cfg TableConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[source] = cfg
}

func (s *Server) tableConfig(source string, rows []datasources.Row) TableConfig {
	s.mu.RLock()
	cfg, ok := s.tables[source]
	s.mu.RUnlock()
	if ok {
		return cfg
	}
	layout := datasources.InferLayout(source, rows)
	return TableConfig{Title: layout.Title, Defs: layout.ColumnDefs(), Paths: layout.Paths()}
}

// Handler returns the HTTP handler serving the landing page, tables and
// metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/table", s.handleTable)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	vm := views.BuildLandingViewModel(s.options.Title, s.options.Subtitle, s.manager.GetSourceNames())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.logger.WithError(err).Error("Landing page rendering error")
	}
}

// sessionID returns the caller's session id, issuing a new one when the
// request carries none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// session returns the table instance for a session and source. Each user
// keeps their own head-cell state per source.
func (s *Server) session(id, source string) *session {
	key := id + ":" + source
	if sess, ok := s.sessions.Get(key); ok {
		return sess
	}
	sess := &session{table: datatable.New[datasources.Row]()}
	if existing, ok, _ := s.sessions.PeekOrAdd(key, sess); ok {
		return existing
	}
	s.metrics.sessions.Inc()
	return sess
}

// View is one rendering of a table for a query.
type View struct {
	Tree      *markup.Tree
	Next      string // URL of the state requested by a handler, if any
	Kind      string // Kind of change requested: "sort" or "filter"
	Total     int    // Rows in the source
	Matched   int    // Rows left after filtering
	Displayed int    // Rows rendered
	Err       error  // Invalid filter patterns; the valid filters still apply
}

// Render filters, sorts and limits rows for q and renders them with table.
// Handlers registered on the tree record the URL of the state they request.
func Render(table *datatable.Table[datasources.Row], cfg TableConfig, rows []datasources.Row, q *query.Query) *View {
	v := &View{Total: len(rows)}

	filtered, err := tables.FilterRows(rows, q.FilterMap(), cfg.Paths)
	v.Err = err
	v.Matched = len(filtered)
	shown := tables.Limit(tables.SortRows(filtered, *q.SortState(), cfg.Paths), q.Limit)
	v.Displayed = len(shown)

	root := table.Render(datatable.Props[datasources.Row]{
		Defs:   cfg.Defs,
		Data:   shown,
		Sort:   q.SortState(),
		Filter: q.FilterMap(),
		OnSort: func(next datatable.Sort) {
			v.Next, v.Kind = q.WithSort(next).String(), "sort"
		},
		OnFilter: func(next datatable.FilterMap) {
			v.Next, v.Kind = q.WithFilters(next).String(), "filter"
		},
	})
	v.Tree = markup.Mount(root)
	return v
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := s.logger.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.String()})

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := query.NewQuery(r.URL)
	if r.URL.Query().Get("limit") == "" {
		q.Limit = s.options.PageSize
	}
	if q.Source == "" {
		http.Error(w, "source parameter is required", http.StatusBadRequest)
		return
	}
	if s.manager.GetSource(q.Source) == nil {
		http.Error(w, fmt.Sprintf("source %q not found", q.Source), http.StatusNotFound)
		return
	}
	rows, err := s.manager.LoadData(q.Source)
	if err != nil {
		logger.WithError(err).Error("Failed to load source")
		http.Error(w, "failed to load source", http.StatusInternalServerError)
		return
	}
	cfg := s.tableConfig(q.Source, rows)

	id := s.sessionID(w, r)
	logger = logger.WithField("session", id)
	sess := s.session(id, q.Source)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := Render(sess.table, cfg, rows, q)

	if r.Method == http.MethodPost {
		s.handleSubmit(w, r, logger, view, q)
		s.metrics.renderDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		return
	}

	title := cfg.Title
	if title == "" {
		title = q.Source
	}
	vm := views.BuildPageViewModel(title, q, view.Tree.HTML(), view.Total, view.Matched, view.Displayed)
	if view.Err != nil {
		vm.Error = view.Err.Error()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		// The renderer may have already written to the response
		logger.WithError(err).Error("Template rendering error")
		return
	}
	s.metrics.renderDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	logger.WithFields(logrus.Fields{
		"status":   http.StatusOK,
		"rows":     view.Displayed,
		"duration": time.Since(start),
	}).Debug("Rendered table")
}

// handleSubmit replays a posted form and redirects to the resulting state.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, view *View, q *query.Query) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	err := view.Tree.Submit(r.PostForm)
	switch {
	case errors.Is(err, markup.ErrUnknownTarget):
		// Usually a page rendered before the session was evicted
		logger.WithError(err).Warn("Ignoring event for a control that no longer exists")
		s.metrics.events.WithLabelValues("unknown").Inc()
	case err != nil:
		logger.WithError(err).Error("Failed to replay form")
	case view.Kind != "":
		s.metrics.events.WithLabelValues(view.Kind).Inc()
	default:
		s.metrics.events.WithLabelValues("local").Inc()
	}

	next := view.Next
	if next == "" {
		next = q.ToURL()
	}
	logger.WithFields(logrus.Fields{"status": http.StatusSeeOther, "location": next}).Debug("Replayed form")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/auth"
	"github.com/linkstash/linkstash/backup"
	"github.com/linkstash/linkstash/ingestion"
	"github.com/linkstash/linkstash/search"
	"github.com/linkstash/linkstash/storage"
	"github.com/linkstash/linkstash/webmeta"
)

// Server exposes the application services over HTTP. It owns routing,
// request decoding, and status mapping; all domain behavior lives in
// the services it fronts.
type Server struct {
	authn      *auth.Service
	dispatcher *ingestion.Dispatcher
	searcher   *search.Searcher
	backups    *backup.Service
	notes      storage.NoteRepository
	fetcher    webmeta.Fetcher
	provider   ai.Provider
	validate   *validator.Validate
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger for request and handler logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer wires the HTTP boundary over the given services. All
// services are required.
func NewServer(
	authn *auth.Service,
	dispatcher *ingestion.Dispatcher,
	searcher *search.Searcher,
	backups *backup.Service,
	notes storage.NoteRepository,
	fetcher webmeta.Fetcher,
	provider ai.Provider,
	opts ...Option,
) (*Server, error) {
	if authn == nil {
		return nil, ErrAuthServiceRequired
	}
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if backups == nil {
		return nil, ErrBackupServiceRequired
	}
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Server{
		authn:      authn,
		dispatcher: dispatcher,
		searcher:   searcher,
		backups:    backups,
		notes:      notes,
		fetcher:    fetcher,
		provider:   provider,
		validate:   validator.New(),
		logger:     slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Router builds the full route table. Everything under /api except the
// register and login endpoints requires a live session.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(loggingMiddleware(s.logger))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware(s.authn))

	protected.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	protected.HandleFunc("/notes", s.handleCreateNote).Methods(http.MethodPost)
	protected.HandleFunc("/notes", s.handleListNotes).Methods(http.MethodGet)
	protected.HandleFunc("/notes/search", s.handleSearch).Methods(http.MethodPost)
	protected.HandleFunc("/notes/{id}", s.handleGetNote).Methods(http.MethodGet)
	protected.HandleFunc("/notes/{id}", s.handleDeleteNote).Methods(http.MethodDelete)

	protected.HandleFunc("/backup/export", s.handleExport).Methods(http.MethodGet)
	protected.HandleFunc("/backup/import", s.handleImport).Methods(http.MethodPost)

	protected.HandleFunc("/metadata/extract", s.handleExtractMetadata).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

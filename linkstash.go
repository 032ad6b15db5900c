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


package linkstash

import (
	"io"
	"log/slog"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/ai/openai"
	"github.com/linkstash/linkstash/api"
	"github.com/linkstash/linkstash/auth"
	"github.com/linkstash/linkstash/backup"
	"github.com/linkstash/linkstash/ingestion"
	"github.com/linkstash/linkstash/reenrich"
	"github.com/linkstash/linkstash/search"
	"github.com/linkstash/linkstash/storage"
	"github.com/linkstash/linkstash/storage/badger"
	"github.com/linkstash/linkstash/webmeta"
)

// App owns the storage backend, the repositories over it, and the AI
// provider, and builds the services that run on top of them. One App
// per process; Close releases everything it opened.
type App struct {
	backend  *badger.Backend
	notes    storage.NoteRepository
	users    storage.UserRepository
	sessions storage.SessionRepository
	provider ai.Provider
	fetcher  webmeta.Fetcher
	logger   *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	fetcher  webmeta.Fetcher
	inMemory bool
}

// WithAIConfig sets the provider configuration used when no explicit
// provider is supplied.
func WithAIConfig(cfg *ai.Config) AppOption {
	return func(o *appOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from configuration.
func WithProvider(provider ai.Provider) AppOption {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// WithFetcher supplies a custom page metadata fetcher.
func WithFetcher(fetcher webmeta.Fetcher) AppOption {
	return func(o *appOptions) {
		o.fetcher = fetcher
	}
}

// WithInMemory opens the storage backend in memory, discarding all data
// on Close.
func WithInMemory() AppOption {
	return func(o *appOptions) {
		o.inMemory = true
	}
}

// NewApp opens the backend at filePath and wires the repositories and
// provider over it.
func NewApp(filePath string, opts ...AppOption) (*App, error) {
	options := &appOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	fetcher := options.fetcher
	if fetcher == nil {
		fetcher = webmeta.NewHTTPFetcher()
	}

	return &App{
		backend:  backend,
		notes:    badger.NewNoteRepository(backend),
		users:    badger.NewUserRepository(backend),
		sessions: badger.NewSessionRepository(backend),
		provider: provider,
		fetcher:  fetcher,
		logger:   slog.Default(),
	}, nil
}

// Close shuts down the provider and the storage backend. Repositories
// share the backend and need no separate teardown.
func (a *App) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// NoteRepository returns the note store.
func (a *App) NoteRepository() storage.NoteRepository {
	return a.notes
}

// UserRepository returns the user store.
func (a *App) UserRepository() storage.UserRepository {
	return a.users
}

// SessionRepository returns the session store.
func (a *App) SessionRepository() storage.SessionRepository {
	return a.sessions
}

// Provider returns the AI provider.
func (a *App) Provider() ai.Provider {
	return a.provider
}

// Fetcher returns the page metadata fetcher.
func (a *App) Fetcher() webmeta.Fetcher {
	return a.fetcher
}

// NewDispatcher builds the ingestion dispatcher over the app's stores.
func (a *App) NewDispatcher(opts ...ingestion.Option) (*ingestion.Dispatcher, error) {
	return ingestion.NewDispatcher(a.notes, a.fetcher, a.provider, opts...)
}

// NewSearcher builds the hybrid searcher over the app's stores.
func (a *App) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.notes, a.provider, opts...)
}

// NewBackupService builds the export/import service.
func (a *App) NewBackupService() (*backup.Service, error) {
	return backup.NewService(a.notes)
}

// NewAuthService builds the authentication service with the given
// token-signing secret.
func (a *App) NewAuthService(secret string, opts ...auth.Option) (*auth.Service, error) {
	return auth.NewService(a.users, a.sessions, secret, opts...)
}

// NewReenricher builds the batch re-enrichment runner.
func (a *App) NewReenricher(config *reenrich.Config, progress io.Writer) *reenrich.Reenricher {
	return reenrich.NewReenricher(a.notes, a.provider.Summarizer(), config, progress)
}

// NewServer wires the full HTTP boundary: auth, ingestion, search,
// backup, and metadata extraction.
func (a *App) NewServer(secret string, opts ...api.Option) (*api.Server, error) {
	authn, err := a.NewAuthService(secret)
	if err != nil {
		return nil, err
	}
	dispatcher, err := a.NewDispatcher()
	if err != nil {
		return nil, err
	}
	searcher, err := a.NewSearcher()
	if err != nil {
		return nil, err
	}
	backups, err := a.NewBackupService()
	if err != nil {
		return nil, err
	}
	return api.NewServer(authn, dispatcher, searcher, backups, a.notes, a.fetcher, a.provider, opts...)
}

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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/ai/mock"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/webmeta"
)

type staticFetcher struct {
	meta webmeta.Metadata
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) (webmeta.Metadata, error) {
	return f.meta, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	app, err := NewApp("",
		WithInMemory(),
		WithProvider(mock.NewMockProvider()),
		WithFetcher(&staticFetcher{meta: webmeta.Metadata{Title: "Fetched Title"}}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestAppEndToEnd(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	authn, err := app.NewAuthService("integration-secret")
	require.NoError(t, err)
	dispatcher, err := app.NewDispatcher()
	require.NoError(t, err)
	searcher, err := app.NewSearcher()
	require.NoError(t, err)

	user, err := authn.Register(ctx, "it@example.com", "Integration", "long-password")
	require.NoError(t, err)

	note, err := dispatcher.Ingest(ctx, user.ID, core.TextSubmission{
		Content: "remember to water the ferns",
	})
	require.NoError(t, err)
	assert.Equal(t, core.StateComplete, note.ProcessingState)

	results, err := searcher.Search(ctx, user.ID, "ferns")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, note.ID, results[0].ID)

	// A different account sees nothing.
	other, err := authn.Register(ctx, "other@example.com", "Other", "long-password")
	require.NoError(t, err)
	results, err = searcher.Search(ctx, other.ID, "ferns")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAppBackupAcrossServices(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	dispatcher, err := app.NewDispatcher()
	require.NoError(t, err)
	backups, err := app.NewBackupService()
	require.NoError(t, err)

	_, err = dispatcher.Ingest(ctx, "user_a", core.LinkSubmission{URL: "https://example.com"})
	require.NoError(t, err)

	archive, err := backups.Export(ctx, "user_a")
	require.NoError(t, err)
	require.Equal(t, 1, archive.Count)

	// Ids are unique across accounts: while user_a still holds the
	// note, importing its archive elsewhere inserts nothing.
	imported, err := backups.Import(ctx, "user_b", archive.Notes)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)

	require.NoError(t, app.NoteRepository().Delete(ctx, "user_a", archive.Notes[0].ID))

	imported, err = backups.Import(ctx, "user_b", archive.Notes)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	restored, err := backups.Export(ctx, "user_b")
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Count)
}

func TestAppServerConstruction(t *testing.T) {
	app := newTestApp(t)

	srv, err := app.NewServer("integration-secret")
	require.NoError(t, err)
	assert.NotNil(t, srv.Router())
}

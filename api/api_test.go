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
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/ai"
	"github.com/linkstash/linkstash/ai/mock"
	"github.com/linkstash/linkstash/auth"
	"github.com/linkstash/linkstash/backup"
	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/ingestion"
	"github.com/linkstash/linkstash/search"
	"github.com/linkstash/linkstash/storage/badger"
	"github.com/linkstash/linkstash/webmeta"
)

type stubFetcher struct {
	meta webmeta.Metadata
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (webmeta.Metadata, error) {
	if f.err != nil {
		return webmeta.Metadata{}, f.err
	}
	return f.meta, nil
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	notes, users, sessions, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	provider := mock.NewMockProvider()
	fetcher := &stubFetcher{meta: webmeta.Metadata{
		Title:       "Example Page",
		Description: "A page about examples",
		Thumbnail:   "https://example.com/thumb.png",
	}}

	authn, err := auth.NewService(users, sessions, "test-secret")
	require.NoError(t, err)
	dispatcher, err := ingestion.NewDispatcher(notes, fetcher, provider)
	require.NoError(t, err)
	searcher, err := search.NewSearcher(notes, provider)
	require.NoError(t, err)
	backups, err := backup.NewService(notes)
	require.NoError(t, err)

	srv, err := NewServer(authn, dispatcher, searcher, backups, notes, fetcher, provider)
	require.NoError(t, err)
	return srv, srv.Router()
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		buf.Write(data)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerAndLogin(t *testing.T, handler http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "name": "Tester", "password": "hunter2-secure",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "hunter2-secure",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[loginResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "name": "Tester", "password": "hunter2-secure",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@example.com", "name": "Tester", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@example.com", "name": "Tester", "password": "hunter2-secure",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@example.com", "password": "hunter2-secure",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == "session_token" {
			found = c
		}
	}
	require.NotNil(t, found)
	assert.NotEmpty(t, found.Value)
	assert.True(t, found.HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@example.com", "name": "Tester", "password": "hunter2-secure",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, handler := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes/search"},
		{http.MethodGet, "/api/backup/export"},
		{http.MethodPost, "/api/metadata/extract"},
	} {
		rec := doJSON(t, handler, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCookieAuthentication(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateLinkNote(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "link", "url": "https://youtube.com/watch?v=abc",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	note := decodeBody[core.Note](t, rec)
	assert.Equal(t, core.KindLink, note.Kind)
	assert.Equal(t, "Example Page", note.Title)
	assert.Equal(t, "youtube", note.SourcePlatform)
	assert.Equal(t, core.StateComplete, note.ProcessingState)
	assert.NotEmpty(t, note.Summary)
}

func TestCreateNoteRejectsUnknownType(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "carrier-pigeon", "content": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "link",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateVoiceNoteRejectsBadBase64(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "voice", "audio": "!!not-base64!!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListNotesPagination(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	for i := 0; i < 5; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
			"type": "text", "content": fmt.Sprintf("note number %d", i),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/notes?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page1 := decodeBody[noteListResponse](t, rec)
	assert.Len(t, page1.Notes, 2)
	assert.Equal(t, 5, page1.Total)
	assert.Equal(t, 1, page1.Page)

	rec = doJSON(t, handler, http.MethodGet, "/api/notes?page=3&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page3 := decodeBody[noteListResponse](t, rec)
	assert.Len(t, page3.Notes, 1)
	assert.Equal(t, 3, page3.Page)
}

func TestGetNoteScopedToOwner(t *testing.T) {
	_, handler := newTestServer(t)
	tokenA := registerAndLogin(t, handler, "a@example.com")
	tokenB := registerAndLogin(t, handler, "b@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", tokenA, map[string]string{
		"type": "text", "content": "private thoughts",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	note := decodeBody[core.Note](t, rec)

	rec = doJSON(t, handler, http.MethodGet, "/api/notes/"+note.ID, tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/notes/"+note.ID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/notes/note_missing", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteNote(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "text", "content": "delete me",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	note := decodeBody[core.Note](t, rec)

	rec = doJSON(t, handler, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/notes/"+note.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "text", "content": "the quarterly budget review",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/notes/search", token, map[string]string{
		"query": "budget",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[searchResponse](t, rec)
	require.Len(t, resp.Notes, 1)
	assert.Contains(t, resp.Notes[0].RawContent, "budget")
}

func TestBackupRoundTrip(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/notes", token, map[string]string{
		"type": "text", "content": "irreplaceable wisdom",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/backup/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	archive := decodeBody[backup.Archive](t, rec)
	require.Equal(t, 1, archive.Count)

	// Importing the same archive back is a no-op: every id exists.
	rec = doJSON(t, handler, http.MethodPost, "/api/backup/import", token, map[string]any{
		"notes": archive.Notes,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	imported := decodeBody[importResponse](t, rec)
	assert.Equal(t, 0, imported.Imported)

	// Note ids are unique across accounts, so another account importing
	// the same archive skips every record too.
	tokenB := registerAndLogin(t, handler, "b@example.com")
	rec = doJSON(t, handler, http.MethodPost, "/api/backup/import", tokenB, map[string]any{
		"notes": archive.Notes,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	imported = decodeBody[importResponse](t, rec)
	assert.Equal(t, 0, imported.Imported)

	// Once the original is gone the id is free and the import inserts,
	// reassigning ownership to the importing account.
	rec = doJSON(t, handler, http.MethodDelete, "/api/notes/"+archive.Notes[0].ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/backup/import", tokenB, map[string]any{
		"notes": archive.Notes,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	imported = decodeBody[importResponse](t, rec)
	assert.Equal(t, 1, imported.Imported)

	rec = doJSON(t, handler, http.MethodGet, "/api/notes/"+archive.Notes[0].ID, tokenB, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractMetadata(t *testing.T) {
	_, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/metadata/extract", token, map[string]string{
		"url": "https://youtube.com/watch?v=abc",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[metadataResponse](t, rec)
	assert.Equal(t, "Example Page", resp.Title)
	assert.Equal(t, "youtube", resp.SourcePlatform)
	assert.NotEmpty(t, resp.Summary)

	rec = doJSON(t, handler, http.MethodPost, "/api/metadata/extract", token, map[string]string{
		"url": "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractMetadataDegradesOnProviderFailure(t *testing.T) {
	srv, handler := newTestServer(t)
	token := registerAndLogin(t, handler, "a@example.com")

	mp := srv.provider.(*mock.MockProvider)
	mp.GetMockSummarizer().SummarizeFunc = func(ctx context.Context, input ai.SummaryInput) (ai.Annotation, error) {
		return ai.Annotation{}, context.DeadlineExceeded
	}

	rec := doJSON(t, handler, http.MethodPost, "/api/metadata/extract", token, map[string]string{
		"url": "https://example.com/page",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[metadataResponse](t, rec)
	assert.Equal(t, "Example Page", resp.Title)
	assert.Empty(t, resp.Summary)
	assert.Empty(t, resp.Tags)
}

func TestNewServerValidation(t *testing.T) {
	_, err := NewServer(nil, nil, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrAuthServiceRequired)
}

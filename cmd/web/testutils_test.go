package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fainmariya/sorting-books-read/internal/data"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := data.OpenDB(context.Background(), data.DBConfig{Driver: data.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestApplication builds an application backed by an in-memory SQLite
// database, with rate limiting off and logs discarded.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	var cfg serverConfig
	cfg.Port = 3000
	cfg.Environment = "development"
	cfg.DB.Driver = data.DriverSQLite

	return &applicationDependencies{
		config:        cfg,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:        data.NewModels(newTestDB(t)),
		templateCache: templateCache,
	}
}

type testServer struct {
	*httptest.Server
}

// newTestServer starts the full handler chain. The client does not follow
// redirects so tests can assert on 303 responses.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	t.Cleanup(ts.Close)
	return &testServer{ts}
}

type testResponse struct {
	status int
	header http.Header
	body   string
}

func (ts *testServer) do(t *testing.T, req *http.Request) testResponse {
	t.Helper()

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return testResponse{status: res.StatusCode, header: res.Header, body: string(bytes.TrimSpace(body))}
}

func (ts *testServer) get(t *testing.T, path string) testResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	return ts.do(t, req)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) testResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(t, req)
}

func (ts *testServer) postJSON(t *testing.T, path, body string) testResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return ts.do(t, req)
}

func decodeJSON(t *testing.T, body string, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), dst))
}

func insertTestBook(t *testing.T, app *applicationDependencies, b *data.Book) *data.Book {
	t.Helper()
	require.NoError(t, app.models.Books.Insert(context.Background(), b))
	return b
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

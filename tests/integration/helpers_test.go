// Package integration exercises the full stack end to end: sqlite
// store, representation engine, and HTTP dispatcher together.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brennanma/restrack/internal/rest"
	"github.com/brennanma/restrack/internal/sqlite"
	"github.com/brennanma/restrack/pkg/types"
)

const apiToken = "integration-token"

// TestEnv is one isolated API instance over a temp-directory store.
type TestEnv struct {
	t      *testing.T
	TS     *httptest.Server
	Store  *sqlite.Store
	UserID string
}

// NewTestEnv starts a server over a fresh store and provisions one
// authenticated user holding every permission the suite needs.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	cfg := types.Config{
		BaseURI: "http://rt.test",
		Listen:  ":0",
		DataDir: t.TempDir(),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(cfg, log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	userID, err := store.Create("user", map[string]any{
		"Name":         "integrator",
		"EmailAddress": "integrator@rt.test",
	}, nil, "")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if err := store.IssueToken(apiToken, userID); err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	for _, action := range []string{
		"show", "modify", "history",
		"create:ticket", "create:queue", "create:user",
		"correspond", "comment",
	} {
		if err := store.Grant(userID, action); err != nil {
			t.Fatalf("granting %s: %v", action, err)
		}
	}

	ts := httptest.NewServer(rest.NewServer(cfg, store, log).Router())
	t.Cleanup(ts.Close)
	return &TestEnv{t: t, TS: ts, Store: store, UserID: userID}
}

// Do issues one authenticated request. Extra headers are optional.
func (e *TestEnv) Do(method, path string, body any, headers map[string]string) *http.Response {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, e.TS.URL+path, rd)
	if err != nil {
		e.t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "token "+apiToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.TS.Client().Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// MustDo issues a request and fails the test unless the status matches.
func (e *TestEnv) MustDo(method, path string, body any, headers map[string]string, wantStatus int) map[string]any {
	e.t.Helper()
	resp := e.Do(method, path, body, headers)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		e.t.Fatalf("%s %s: status %d, want %d: %s", method, path, resp.StatusCode, wantStatus, raw)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		e.t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return out
}

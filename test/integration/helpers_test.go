//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"

	"clubhouse/internal/app"
	"clubhouse/internal/config"
	internaldb "clubhouse/internal/db"
)

// jwtSecret signs the HS256 tokens used by every integration test.
const jwtSecret = "integration-test-secret"

// bootstrapAdminEmail is provisioned as ADMIN on first login.
const bootstrapAdminEmail = "root@example.com"

// testEnv bundles the in-process server shared by a test's subtests.
type testEnv struct {
	Server *httptest.Server
}

// setupServer builds the fully-wired application over a temp SQLite pair with
// the real HS256 token validator and JIT provisioning, and serves it in-process.
func setupServer(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "club.sqlite")
	writeDB, readDB, err := internaldb.Open(dbPath, 4)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})
	if err := internaldb.RunMigrations(writeDB); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	cfg := &config.Config{
		DBPath:             dbPath,
		CORSAllowedOrigins: []string{"*"},
		Auth: config.AuthConfig{
			JWTSecret:      jwtSecret,
			BootstrapAdmin: bootstrapAdminEmail,
		},
	}

	a, err := app.New(context.Background(), app.Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("wire app: %v", err)
	}

	srv := httptest.NewServer(a.Router)
	t.Cleanup(srv.Close)

	return &testEnv{Server: srv}
}

// mintToken signs an HS256 JWT with the shared test secret.
func mintToken(t *testing.T, sub, email string) string {
	t.Helper()

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"iss":   "clubhouse-test",
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// doRequest performs an HTTP call against the test server. An empty token
// sends the request anonymously.
func doRequest(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

// eventBody returns a valid event payload with the given name.
func eventBody(name string) map[string]string {
	return map[string]string{
		"name":     name,
		"date":     "2026-09-12",
		"time":     "19:00",
		"location": "Clubhouse",
	}
}

func userURL(base string, id float64) string {
	return fmt.Sprintf("%s/users/%d", base, int64(id))
}

func attendeesURL(base string, eventID float64) string {
	return fmt.Sprintf("%s/events/%d/attendees", base, int64(eventID))
}

func attendeeURL(base string, eventID, userID float64) string {
	return fmt.Sprintf("%s/events/%d/attendees/%d", base, int64(eventID), int64(userID))
}

// decodeJSON decodes the response body into v and closes it.
func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

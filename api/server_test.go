package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hisab/backend/database"
	"hisab/backend/logging"
	"hisab/backend/middleware"
	"hisab/backend/migrations"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "hisab.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return NewServer(db, Options{
		Verifier:       middleware.DevVerifier{},
		CookieName:     "session",
		AllowedOrigins: []string{"https://app.example"},
		Logger:         logging.New(logging.Config{Output: &bytes.Buffer{}}),
	})
}

func TestServer_RoutesWithAndWithoutPrefix(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/categories", "/api/categories"} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "user-1"})
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
		if w.Header().Get(logging.RequestIDHeader) == "" {
			t.Errorf("%s: expected request ID header", path)
		}
	}
}

func TestServer_Preflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/transactions/abc", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}
}

func TestServer_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/dashboard/monthly-stats", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

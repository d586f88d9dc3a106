package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hisab/backend/database"
	"hisab/backend/middleware"
	"hisab/backend/migrations"
	"hisab/backend/services"

	"github.com/gorilla/mux"
)

// Define constants for the test user IDs that can be used across all tests
const (
	TestUserID  = "test-user-id"
	OtherUserID = "other-user-id"
)

// setupTestRouter returns a router over a freshly migrated SQLite database.
// The session cookie value is taken as the user id.
func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "hisab.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	h := NewHandler(db, services.PageLimits{Default: 30, Max: 100})
	r := mux.NewRouter()
	h.RegisterRoutes(r, middleware.Auth(middleware.DevVerifier{}, "session"))
	return r
}

// doRequest performs a request as userID (no cookie when empty) and returns the recorder.
func doRequest(t *testing.T, r http.Handler, method, url, userID string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(buf)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: userID})
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	return v
}

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type pageResponse[T any] struct {
	Data       []T  `json:"data"`
	Next       bool `json:"next"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_page"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
}

// createCategory creates a category over HTTP and returns its id.
func createCategory(t *testing.T, r http.Handler, userID, name, typ string) string {
	t.Helper()
	w := doRequest(t, r, "POST", "/categories", userID, map[string]string{
		"enName":  name,
		"arName":  name + "-ar",
		"ckbName": name + "-ckb",
		"type":    typ,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: expected %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	return decodeResponse[dataResponse[struct{ ID string }]](t, w).Data.ID
}

// createTransaction creates a transaction over HTTP and returns its id.
func createTransaction(t *testing.T, r http.Handler, userID, categoryID, typ string, amount any, date string) string {
	t.Helper()
	w := doRequest(t, r, "POST", "/transactions", userID, map[string]any{
		"amount":     amount,
		"type":       typ,
		"enDesc":     "desc",
		"arDesc":     "desc-ar",
		"ckbDesc":    "desc-ckb",
		"categoryId": categoryID,
		"date":       date,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create transaction: expected %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	return decodeResponse[dataResponse[struct{ ID string }]](t, w).Data.ID
}

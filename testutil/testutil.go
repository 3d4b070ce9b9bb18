// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/share-mixer/auth"
	"github.com/danielhkuo/share-mixer/cliparse"
	"github.com/danielhkuo/share-mixer/db"
	"github.com/danielhkuo/share-mixer/mixer"
	"github.com/danielhkuo/share-mixer/models"
	"github.com/danielhkuo/share-mixer/shares"
	"github.com/danielhkuo/share-mixer/stats"
	"github.com/danielhkuo/share-mixer/store"
)

// SetupTestStore opens a migrated sqlite database in a temp directory.
// It is closed when the test ends.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	conn, err := db.New(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	st := store.NewSQLStore(conn)
	t.Cleanup(func() { st.Close() })
	return st
}

// SetupTestService returns a mixer service backed by SetupTestStore.
func SetupTestService(t *testing.T) *mixer.Service {
	t.Helper()
	return mixer.New(SetupTestStore(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "test.db",
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		ChannelID:    stats.DefaultChannelID,
		YTAPIBase:    stats.DefaultBaseURL,
	}
}

// CreateTestPoll stores a three-category poll and returns it with its admin key
func CreateTestPoll(t *testing.T, svc *mixer.Service, cfg cliparse.Config) (models.Poll, string) {
	t.Helper()

	poll, err := svc.CreatePoll(context.Background(), "Test Poll", []shares.Category{
		{ID: "yes", Label: "Yes"},
		{ID: "no", Label: "No"},
		{ID: "unsure", Label: "Unsure"},
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll, auth.GenerateAdminKey(poll.ID, cfg.AdminKeySalt)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/share-mixer/models"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		JSONResponse(w, http.StatusCreated, models.ActivePollResponse{PollID: r.PathValue("id")})
	})

	req := httptest.NewRequest("PUT", "/polls/p1/shares/cpc", nil)
	req.SetPathValue("id", "p1")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}

	var entry map[string]any
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", logs.String(), err)
	}
	want := map[string]any{
		"msg":     "request completed",
		"method":  "PUT",
		"path":    "/polls/p1/shares/cpc",
		"status":  float64(http.StatusCreated),
		"remote":  "203.0.113.7",
		"poll_id": "p1",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("log field %s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestWithLogging_NoPollID(t *testing.T) {
	logs := captureLogs(t)

	WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	var entry map[string]any
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("bad log line %q: %v", logs.String(), err)
	}
	if _, ok := entry["poll_id"]; ok {
		t.Errorf("Expected no poll_id on /health, got %v", entry["poll_id"])
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("Expected implicit status 200, got %v", entry["status"])
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "poll not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "Not Found" || resp.Message != "poll not found" {
		t.Errorf("Unexpected error body: %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantAny bool
	}{
		{"valid", `{"label":"Leger"}`, nil, false},
		{"empty body", ``, io.EOF, false},
		{"trailing value", `{"label":"a"}{"label":"b"}`, ErrTrailingData, false},
		{"trailing whitespace", "{\"label\":\"a\"}\n", nil, false},
		{"malformed", `{"label":`, nil, true},
		{"too large", `{"label":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, ErrBodyTooLarge, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/polls/p1/baseline", strings.NewReader(tt.body))
			var got models.SnapshotRequest

			err := ParseJSONBody(httptest.NewRecorder(), req, &got)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
			case tt.wantAny:
				if err == nil || errors.Is(err, io.EOF) {
					t.Errorf("Expected a decode error, got %v", err)
				}
			default:
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}

func TestBodyError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{io.EOF, http.StatusBadRequest},
		{ErrTrailingData, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		BodyError(w, tt.err)
		if w.Code != tt.want {
			t.Errorf("BodyError(%v) = %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="poll-canada.png"`)
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(next)

	t.Run("preflight for admin delete", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/polls/p1", nil)
		req.Header.Set("Origin", "https://mixer.example")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		req.Header.Set("Access-Control-Request-Headers", "X-Admin-Key")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://mixer.example" {
			t.Errorf("Expected origin echoed, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-Admin-Key") {
			t.Errorf("Expected X-Admin-Key in allowed headers, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
			t.Errorf("Expected DELETE in allowed methods, got %q", got)
		}
	})

	t.Run("export exposes filename", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls/p1/export.png", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin without Origin header, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != "Content-Disposition" {
			t.Errorf("Expected Content-Disposition exposed, got %q", got)
		}
		if w.Header().Get("Content-Disposition") == "" {
			t.Error("Expected wrapped handler to run")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.7"},
		{"forwarded single", " 203.0.113.7 ", "", "10.0.0.2:1234", "203.0.113.7"},
		{"real ip", "", "198.51.100.4", "10.0.0.2:1234", "198.51.100.4"},
		{"remote ipv4", "", "", "192.0.2.1:5555", "192.0.2.1"},
		{"remote ipv6", "", "", "[2001:db8::1]:5555", "2001:db8::1"},
		{"remote without port", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/youtube-subs", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

package http

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func healthStatus(t *testing.T, root string) (int, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	HealthHandler(root).ServeHTTP(rr, req)

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rr.Code, body.Status
}

func TestHealthHandler_OK(t *testing.T) {
	code, status := healthStatus(t, t.TempDir())
	if code != 200 {
		t.Fatalf("expected status 200, got %d", code)
	}
	if status != "ok" {
		t.Fatalf("expected status 'ok', got %q", status)
	}
}

func TestHealthHandler_RootGone(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(root); err != nil {
		t.Fatal(err)
	}
	code, status := healthStatus(t, root)
	if code != 503 || status != "unavailable" {
		t.Fatalf("expected 503 unavailable, got %d %q", code, status)
	}
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaimeStill/quill/pkg/lifecycle"
)

func TestHealthz(t *testing.T) {
	router := buildRouter(lifecycle.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	lc := lifecycle.New()
	busUp := true
	lc.Check("bus", func() bool { return busUp })
	router := buildRouter(lc)

	get := func() (int, readiness) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
		var body readiness
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return rec.Code, body
	}

	if code, _ := get(); code != http.StatusServiceUnavailable {
		t.Errorf("before startup: status = %d, want 503", code)
	}

	lc.WaitForStartup()
	code, body := get()
	if code != http.StatusOK || body.Status != "ready" {
		t.Errorf("after startup: %d %+v", code, body)
	}
	if !body.Checks["bus"] {
		t.Errorf("checks = %v", body.Checks)
	}

	busUp = false
	if code, body := get(); code != http.StatusServiceUnavailable || body.Checks["bus"] {
		t.Errorf("bus down: %d %+v", code, body)
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestGetJSONPrettyPrints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		getJSON("/api/v1/organizations/", nil)
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestUploadFileSendsMultipart(t *testing.T) {
	var gotType, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotType = r.FormValue("type")
		if _, header, err := r.FormFile("file"); err == nil {
			gotName = header.Filename
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"upl-1","status":"completed"}`))
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	path := filepath.Join(t.TempDir(), "journal.csv")
	if err := os.WriteFile(path, []byte("Company,Ledger Account\nAlpine,4000\n"), 0o600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	out := captureOutput(t, func() {
		uploadFile(path, "journal_lines", "")
	})

	if gotType != "journal_lines" {
		t.Fatalf("expected upload type journal_lines, got %q", gotType)
	}
	if gotName != "journal.csv" {
		t.Fatalf("expected file name journal.csv, got %q", gotName)
	}
	if !strings.Contains(out, "upl-1") {
		t.Fatalf("expected response echoed, got %q", out)
	}
}

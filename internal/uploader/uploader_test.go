package uploader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("not-really-a-png"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestUploadReturnsHostedURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if _, _, err := r.FormFile("smfile"); err != nil {
			t.Errorf("missing smfile part: %v", err)
		}
		w.Write([]byte(`{"success":true,"data":{"url":"https://img.example/abc.png"}}`))
	}))
	defer srv.Close()

	url, err := New(srv.URL).Upload(context.Background(), writeImage(t))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://img.example/abc.png" {
		t.Fatalf("Upload() = %q, want hosted url", url)
	}
}

func TestUploadReusesRepeatedImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"code":"image_repeated","images":"https://img.example/dup.png"}`))
	}))
	defer srv.Close()

	url, err := New(srv.URL).Upload(context.Background(), writeImage(t))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://img.example/dup.png" {
		t.Fatalf("Upload() = %q, want existing url", url)
	}
}

func TestUploadSurfacesHostMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"code":"flood","message":"too many uploads"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Upload(context.Background(), writeImage(t))
	if err == nil || !strings.Contains(err.Error(), "too many uploads") {
		t.Fatalf("Upload() error = %v, want host message", err)
	}
}

func TestUploadWrapsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Upload(context.Background(), writeImage(t))
	if err == nil || !strings.Contains(err.Error(), "network error") {
		t.Fatalf("Upload() error = %v, want network error", err)
	}
}

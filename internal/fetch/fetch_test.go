package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_CacheBypass(t *testing.T) {
	t.Parallel()

	var gotCacheControl, gotBuster string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		gotBuster = r.URL.Query().Get("cb")
		_, _ = w.Write([]byte("Date,Cost\n1/7/2025,100\n"))
	}))
	defer srv.Close()

	body, err := New(5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if body == "" {
		t.Fatalf("empty body")
	}
	if gotCacheControl != "no-cache" {
		t.Fatalf("Cache-Control = %q", gotCacheControl)
	}
	if gotBuster == "" {
		t.Fatalf("missing cache-buster parameter")
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := New(5*time.Second).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("want error on 404")
	}
}

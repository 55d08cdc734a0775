package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"
)

func TestFetchVersions(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "electron",
			"versions": {
				"35.0.0": {"dist": {}},
				"36.0.0": {},
				"37.0.0-beta.1": {}
			}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "electron", 5*time.Second)
	tags, err := c.FetchVersions(context.Background())
	if err != nil {
		t.Fatalf("FetchVersions: %v", err)
	}

	if gotPath != "/electron" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAccept != "application/json" {
		t.Errorf("accept = %q", gotAccept)
	}

	sort.Strings(tags)
	want := []string{"35.0.0", "36.0.0", "37.0.0-beta.1"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}

func TestFetchVersions_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "electron", 5*time.Second)
	if _, err := c.FetchVersions(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetchVersions_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, "electron", 5*time.Second)
	if _, err := c.FetchVersions(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestFetchVersions_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(srv.URL, "electron", 0)
	if _, err := c.FetchVersions(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

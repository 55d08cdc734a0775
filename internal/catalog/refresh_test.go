package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeFetcher struct {
	tags []string
	err  error
}

func (f *fakeFetcher) FetchVersions(ctx context.Context) ([]string, error) {
	return f.tags, f.err
}

type fakeAuditor struct {
	entries []struct {
		status string
		count  int
		errMsg string
	}
}

func (f *fakeAuditor) RecordRefresh(id, status string, count int, errMsg string) error {
	if id == "" {
		return errors.New("missing id")
	}
	f.entries = append(f.entries, struct {
		status string
		count  int
		errMsg string
	}{status, count, errMsg})
	return nil
}

func TestRefresh_PersistsSorted(t *testing.T) {
	store := newFakeSettings()
	audit := &fakeAuditor{}
	fetcher := &fakeFetcher{tags: []string{"35.0.0", "37.0.0", "36.0.0-beta.1"}}
	cat := NewWithFallback(store, fetcher, audit, testFallback)

	records, err := cat.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	want := []string{"37.0.0", "36.0.0-beta.1", "35.0.0"}
	for i, w := range want {
		if records[i].Version != w {
			t.Fatalf("records[%d] = %q, want %q", i, records[i].Version, w)
		}
	}

	known := cat.Known()
	if len(known) != 3 || known[0].Version != "37.0.0" {
		t.Fatalf("persisted known = %v", known)
	}

	if len(audit.entries) != 1 || audit.entries[0].status != "ok" || audit.entries[0].count != 3 {
		t.Fatalf("audit entries = %+v", audit.entries)
	}
}

func TestRefresh_EmptyKeepsExisting(t *testing.T) {
	store := newFakeSettings()
	store.data[keyKnown] = mustJSON(t, []VersionRecord{{Version: "37.0.0"}})
	audit := &fakeAuditor{}
	cat := NewWithFallback(store, &fakeFetcher{tags: nil}, audit, testFallback)

	records, err := cat.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %v, want empty projection", records)
	}

	known := cat.Known()
	if len(known) != 1 || known[0].Version != "37.0.0" {
		t.Fatalf("existing catalog was replaced: %v", known)
	}
	if len(audit.entries) != 1 || audit.entries[0].status != "empty" {
		t.Fatalf("audit entries = %+v", audit.entries)
	}
}

func TestRefresh_FetchFailure(t *testing.T) {
	audit := &fakeAuditor{}
	cat := NewWithFallback(newFakeSettings(), &fakeFetcher{err: errors.New("registry down")}, audit, testFallback)

	if _, err := cat.Refresh(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if len(audit.entries) != 1 || audit.entries[0].status != "failed" {
		t.Fatalf("audit entries = %+v", audit.entries)
	}
	if audit.entries[0].errMsg == "" {
		t.Error("failed entry should carry the error message")
	}
}

func TestRefresh_NoFetcher(t *testing.T) {
	cat := NewWithFallback(newFakeSettings(), nil, nil, testFallback)
	if _, err := cat.Refresh(context.Background()); err == nil {
		t.Fatal("expected error without a registry client")
	}
}

func TestRefreshAndGetAll_SwallowsFetchError(t *testing.T) {
	store := newFakeSettings()
	store.data[keyKnown] = mustJSON(t, []VersionRecord{{Version: "37.0.0"}})
	store.data[keyLocal] = mustJSON(t, []VersionRecord{{Version: "35.0.0", LocalPath: "/b/35"}})
	cat := NewWithFallback(store, &fakeFetcher{err: errors.New("offline")}, nil, testFallback)

	all, err := cat.RefreshAndGetAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAndGetAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d entries, want cached catalog: %v", len(all), all)
	}
}

func TestRefreshAndGetAll_UpdatesKnown(t *testing.T) {
	store := newFakeSettings()
	cat := NewWithFallback(store, &fakeFetcher{tags: []string{"40.0.0"}}, nil, testFallback)

	all, err := cat.RefreshAndGetAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAndGetAll: %v", err)
	}
	if len(all) != 1 || all[0].Version != "40.0.0" || all[0].Source != SourceRemote {
		t.Fatalf("all = %v", all)
	}
}

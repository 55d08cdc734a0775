package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// Storage keys for the two collections and the remembered selection.
const (
	keyKnown    = "catalog.known"
	keyLocal    = "catalog.local"
	keySelected = "catalog.selected"
)

// Settings is the string key/value store backing the catalog.
// Implemented by storage.Store.
type Settings interface {
	GetSetting(key string) (val string, ok bool, err error)
	SetSetting(key, val string) error
}

// Fetcher retrieves the full remote version list as raw tags.
// Implemented by registry.Client.
type Fetcher interface {
	FetchVersions(ctx context.Context) ([]string, error)
}

// Auditor records the outcome of remote refresh attempts.
// Implemented by storage.Store; may be nil to skip bookkeeping.
type Auditor interface {
	RecordRefresh(id, status string, count int, errMsg string) error
}

// Catalog manages the known and local version collections persisted in a
// key/value store, with best-effort refresh from a remote registry and
// self-healing reads.
type Catalog struct {
	store    Settings
	fetcher  Fetcher
	audit    Auditor
	fallback func() []VersionRecord
	logger   *slog.Logger

	group singleflight.Group
}

// New creates a Catalog over the given settings store. fetcher may be nil when
// remote refresh is not needed; audit may be nil.
func New(store Settings, fetcher Fetcher, audit Auditor) *Catalog {
	return NewWithFallback(store, fetcher, audit, DefaultCatalog)
}

// NewWithFallback creates a Catalog with a custom bundled-catalog provider,
// used by tests to control the fallback contents.
func NewWithFallback(store Settings, fetcher Fetcher, audit Auditor, fallback func() []VersionRecord) *Catalog {
	return &Catalog{
		store:    store,
		fetcher:  fetcher,
		audit:    audit,
		fallback: fallback,
		logger:   slog.Default(),
	}
}

// loadReason classifies the outcome of a raw collection read so the exported
// load methods can decide the fallback policy (and the logging) explicitly.
type loadReason int

const (
	loadOK loadReason = iota
	loadMissing
	loadUnreadable // store read failed
	loadUnparsable // stored blob is not valid JSON
	loadBadFormat  // parsed but failed the format gate
)

type collectionRead struct {
	records []VersionRecord
	reason  loadReason
	raw     string
	err     error
}

// readCollection reads and parses one collection without applying any
// fallback; it only classifies what it found.
func (c *Catalog) readCollection(key string) collectionRead {
	raw, ok, err := c.store.GetSetting(key)
	if err != nil {
		return collectionRead{reason: loadUnreadable, err: err}
	}
	if !ok {
		return collectionRead{reason: loadMissing}
	}

	var records []VersionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return collectionRead{reason: loadUnparsable, raw: raw, err: err}
	}
	if !IsExpectedFormat(records) {
		return collectionRead{reason: loadBadFormat, raw: raw}
	}
	return collectionRead{records: records, reason: loadOK}
}

// Known returns the known collection: the persisted remote catalog, or the
// bundled snapshot when the store has never been populated or holds data that
// cannot be trusted. Known-format mismatches are never migrated; the catalog
// is cheap to re-fetch.
func (c *Catalog) Known() []VersionRecord {
	r := c.readCollection(keyKnown)
	switch r.reason {
	case loadOK:
		return r.records
	case loadMissing:
		return c.fallback()
	case loadUnreadable:
		c.logger.Warn("known catalog unreadable, using bundled snapshot", "error", r.err)
		return c.fallback()
	case loadUnparsable:
		c.logger.Warn("known catalog is not valid JSON, using bundled snapshot", "error", r.err)
		return c.fallback()
	default: // loadBadFormat
		c.logger.Warn("known catalog failed format check, using bundled snapshot")
		return c.fallback()
	}
}

// Local returns the local collection, or an empty list when the store has
// nothing usable. A stored value in the legacy format is migrated and
// persisted back immediately; the self-heal write is the only error path.
func (c *Catalog) Local() ([]VersionRecord, error) {
	r := c.readCollection(keyLocal)
	switch r.reason {
	case loadOK:
		return r.records, nil
	case loadMissing:
		return nil, nil
	case loadUnreadable:
		c.logger.Warn("local versions unreadable, starting empty", "error", r.err)
		return nil, nil
	case loadUnparsable:
		c.logger.Warn("local versions are not valid JSON, starting empty", "error", r.err)
		return nil, nil
	}

	// Format mismatch: try the legacy shape and heal in place.
	var legacy []LegacyRecord
	if err := json.Unmarshal([]byte(r.raw), &legacy); err != nil {
		c.logger.Warn("local versions in unrecognized format, starting empty", "error", err)
		return nil, nil
	}
	migrated := MigrateLegacy(legacy)
	if err := c.saveLocal(migrated); err != nil {
		return nil, fmt.Errorf("persisting migrated local versions: %w", err)
	}
	c.logger.Info("migrated legacy local versions", "count", len(migrated))
	return migrated, nil
}

// SaveKnown replaces the known collection wholesale.
func (c *Catalog) SaveKnown(records []VersionRecord) error {
	return c.saveCollection(keyKnown, records)
}

// SaveLocal persists the local collection from aggregated records. Entries
// tagged as remote are discarded first so the read-model projection never
// pollutes the persisted raw collection; untagged entries pass through.
func (c *Catalog) SaveLocal(records []AggregatedVersion) error {
	raw := make([]VersionRecord, 0, len(records))
	for _, r := range records {
		if r.Source == SourceRemote {
			continue
		}
		raw = append(raw, r.VersionRecord)
	}
	return c.saveLocal(raw)
}

func (c *Catalog) saveLocal(records []VersionRecord) error {
	return c.saveCollection(keyLocal, records)
}

func (c *Catalog) saveCollection(key string, records []VersionRecord) error {
	if records == nil {
		records = []VersionRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", key, err)
	}
	if err := c.store.SetSetting(key, string(data)); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// GetAll returns the unified read model: known entries first, tagged
// remote/unknown, then local entries, tagged local/ready. The collections are
// never cross-deduped; a version present in both appears twice.
func (c *Catalog) GetAll() ([]AggregatedVersion, error) {
	known := c.Known()
	locals, err := c.Local()
	if err != nil {
		return nil, err
	}

	all := make([]AggregatedVersion, 0, len(known)+len(locals))
	for _, r := range known {
		all = append(all, AggregatedVersion{VersionRecord: r, Source: SourceRemote, State: StateUnknown})
	}
	for _, r := range locals {
		all = append(all, AggregatedVersion{VersionRecord: r, Source: SourceLocal, State: StateReady})
	}
	return all, nil
}

// AddLocal appends rec to the local collection and persists it. LocalPath is
// the dedup key: when an entry with the same path already exists the call is
// a no-op, even if the version differs. Returns the resulting local list.
func (c *Catalog) AddLocal(rec VersionRecord) ([]VersionRecord, error) {
	locals, err := c.Local()
	if err != nil {
		return nil, err
	}
	for _, l := range locals {
		if l.LocalPath == rec.LocalPath {
			return locals, nil
		}
	}
	locals = append(locals, rec)
	if err := c.saveLocal(locals); err != nil {
		return nil, err
	}
	return locals, nil
}

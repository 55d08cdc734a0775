package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Refresh fetches the full version list from the registry in a single
// attempt, sorts it newest-first, and persists it as the new known collection
// when the result is non-empty and passes the format gate (full replace, not
// merge). The projected list is returned even when it was not persisted.
// Concurrent callers share one in-flight fetch.
func (c *Catalog) Refresh(ctx context.Context) ([]VersionRecord, error) {
	if c.fetcher == nil {
		return nil, errors.New("no registry client configured")
	}
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]VersionRecord), nil
}

func (c *Catalog) refresh(ctx context.Context) ([]VersionRecord, error) {
	tags, err := c.fetcher.FetchVersions(ctx)
	if err != nil {
		c.recordRefresh("failed", 0, err)
		return nil, fmt.Errorf("fetching versions: %w", err)
	}

	records := make([]VersionRecord, len(tags))
	for i, tag := range tags {
		records[i] = VersionRecord{Version: tag}
	}
	SortDescending(records)

	if len(records) == 0 || !IsExpectedFormat(records) {
		c.logger.Warn("registry returned no usable versions, keeping existing catalog")
		c.recordRefresh("empty", 0, nil)
		return records, nil
	}

	if err := c.SaveKnown(records); err != nil {
		c.recordRefresh("failed", len(records), err)
		return nil, err
	}
	c.logger.Info("known catalog refreshed", "count", len(records))
	c.recordRefresh("ok", len(records), nil)
	return records, nil
}

// RefreshAndGetAll refreshes from the registry on a best-effort basis, then
// returns the aggregated list. Fetch failures are logged and swallowed, never
// propagated: the caller always gets whatever is already persisted or bundled.
func (c *Catalog) RefreshAndGetAll(ctx context.Context) ([]AggregatedVersion, error) {
	if c.fetcher != nil {
		if _, err := c.Refresh(ctx); err != nil {
			c.logger.Warn("version refresh failed, serving cached catalog", "error", err)
		}
	}
	return c.GetAll()
}

func (c *Catalog) recordRefresh(status string, count int, cause error) {
	if c.audit == nil {
		return
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := c.audit.RecordRefresh(uuid.New().String(), status, count, msg); err != nil {
		c.logger.Warn("recording refresh attempt failed", "error", err)
	}
}

package catalog

import "errors"

// ErrNoVersions signals that no default can be resolved at all: the known
// list is empty and nothing was remembered. There is no sane value to return
// and the caller must not proceed with list rendering.
var ErrNoVersions = errors.New("no versions available")

// Selected returns the remembered selection, if any. Store-read failures
// downgrade to "nothing remembered".
func (c *Catalog) Selected() (string, bool) {
	raw, ok, err := c.store.GetSetting(keySelected)
	if err != nil {
		c.logger.Warn("reading remembered selection failed", "error", err)
		return "", false
	}
	return raw, ok && raw != ""
}

// SetSelected writes the remembered-selection slot. The UI writes this on
// every pick; the catalog only reads it back during default resolution.
func (c *Catalog) SetSelected(version string) error {
	return c.store.SetSetting(keySelected, version)
}

// Default resolves the version to pre-select from the current known
// collection. See DefaultFrom for the resolution order.
func (c *Catalog) Default() (string, error) {
	return c.DefaultFrom(c.Known())
}

// DefaultFrom resolves the version to pre-select against an explicit known
// list, in order:
//
//  1. the remembered selection, when it exactly matches a known version;
//  2. the normalized remembered selection, when that matches (healing a
//     malformed remembered value);
//  3. the first known entry; an unrecognized remembered value is treated as
//     a hint that the list changed, not that the value is unusable;
//  4. the first known entry when nothing was remembered at all;
//  5. ErrNoVersions when the list is empty and nothing can be resolved.
func (c *Catalog) DefaultFrom(known []VersionRecord) (string, error) {
	if remembered, ok := c.Selected(); ok {
		if containsVersion(known, remembered) {
			return remembered, nil
		}
		if healed, valid := Normalize(remembered); valid && containsVersion(known, healed) {
			c.logger.Info("healed remembered selection", "raw", remembered, "normalized", healed)
			return healed, nil
		}
	}
	if len(known) > 0 {
		return known[0].Version, nil
	}
	return "", ErrNoVersions
}

func containsVersion(records []VersionRecord, version string) bool {
	for _, r := range records {
		if r.Version == version {
			return true
		}
	}
	return false
}

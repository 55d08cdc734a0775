package catalog

// MigrateLegacy converts pre-1.0 local entries into the current record shape.
// Entries missing any of tag_name, name, or url are dropped rather than
// half-converted. Only the local collection is ever migrated; a known
// collection that fails the format gate is discarded in favor of the bundled
// snapshot because it is cheap to re-fetch.
func MigrateLegacy(legacy []LegacyRecord) []VersionRecord {
	records := make([]VersionRecord, 0, len(legacy))
	for _, l := range legacy {
		if l.TagName == "" || l.Name == "" || l.URL == "" {
			continue
		}
		records = append(records, VersionRecord{
			Version:   l.TagName,
			Name:      l.Name,
			LocalPath: l.URL,
		})
	}
	return records
}

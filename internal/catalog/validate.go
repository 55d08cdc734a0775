package catalog

// IsExpectedFormat reports whether every record carries a non-empty version
// tag. An empty list is vacuously valid. This is the sole structural gate
// before trusting a collection read from the store or the network; it makes
// no claim about semantic-version correctness.
func IsExpectedFormat(records []VersionRecord) bool {
	for _, r := range records {
		if r.Version == "" {
			return false
		}
	}
	return true
}

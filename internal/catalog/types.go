package catalog

// VersionRecord describes one known or local release. Version is required and
// is the natural key within the known collection; LocalPath is required for
// (and keys) local records.
type VersionRecord struct {
	Version   string `json:"version"`
	Name      string `json:"name,omitempty"`
	LocalPath string `json:"localPath,omitempty"`
}

// LegacyRecord is the pre-1.0 persisted shape of a local entry. All fields are
// optional so migration stays total over whatever the store actually holds.
type LegacyRecord struct {
	TagName string `json:"tag_name,omitempty"`
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Source marks which collection an aggregated record came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// State is the UI-facing lifecycle status of an aggregated entry, independent
// of provenance.
type State string

const (
	StateUnknown State = "unknown"
	StateReady   State = "ready"
)

// AggregatedVersion decorates a VersionRecord with provenance and state. It is
// a read-model projection; only the underlying VersionRecord collections are
// ever persisted.
type AggregatedVersion struct {
	VersionRecord
	Source Source `json:"source"`
	State  State  `json:"state"`
}

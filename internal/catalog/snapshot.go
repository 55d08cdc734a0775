package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed snapshot.json
var snapshotJSON []byte

// DefaultCatalog returns the build-time bundled known catalog, newest first.
// It is the fallback for the known collection when the store has never been
// populated. The snapshot is a build asset; a parse failure means a broken
// build, so it panics rather than returning an error.
func DefaultCatalog() []VersionRecord {
	var records []VersionRecord
	if err := json.Unmarshal(snapshotJSON, &records); err != nil {
		panic(fmt.Sprintf("bundled version snapshot is malformed: %v", err))
	}
	return records
}

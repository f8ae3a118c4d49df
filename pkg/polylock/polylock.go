// Package polylock implements the polylock store (spec §4.4): the
// persisted closure of resolved packages plus installed-component
// records, and its digest sidecar used to validate a lock against the
// profile metadata that produced it.
package polylock

import (
	"encoding/json"
	"os"

	"github.com/gravitylab/trident/pkg/repository"
)

// Data is the persisted closure: every resolved package plus the ids of
// components that were installed for this lock.
type Data struct {
	Packages            []repository.Package `json:"packages"`
	InstalledComponents []string              `json:"installed_components"`
}

// Store reads and writes the polylock.json/polylock.hash sidecar pair for
// one instance home directory.
type Store struct {
	DataPath string
	HashPath string
}

// New builds a Store rooted at the given instance home directory.
func New(home string) Store {
	return Store{
		DataPath: home + "/polylock.json",
		HashPath: home + "/polylock.hash",
	}
}

// Read attempts to load a valid lock for the given metadata digest. Any
// failure — a missing file, an I/O error, a digest mismatch, or a
// deserialization error — collapses to the "clean negative" the spec
// requires: (nil, false), never an error.
func (s Store) Read(digest string) (*Data, bool) {
	hashBytes, err := os.ReadFile(s.HashPath)
	if err != nil {
		return nil, false
	}
	if string(hashBytes) != digest {
		return nil, false
	}

	dataBytes, err := os.ReadFile(s.DataPath)
	if err != nil {
		return nil, false
	}

	var data Data
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, false
	}
	return &data, true
}

// Write persists data and its digest. It writes polylock.json before
// polylock.hash, deliberately without cross-file atomicity: a crash
// between the two writes leaves a stale hash that will fail the next
// Read, which is an acceptable outcome per spec §4.4 (the next run simply
// re-resolves).
//
// Package order is preserved verbatim in the serialized JSON because Data
// and everything it contains is a plain struct: json.Marshal already
// emits struct fields in declared order, so a human diffing two revisions
// of polylock.json sees only the actual content change.
func (s Store) Write(data *Data, digest string) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.DataPath, encoded, 0o644); err != nil {
		return err
	}
	return os.WriteFile(s.HashPath, []byte(digest), 0o644)
}

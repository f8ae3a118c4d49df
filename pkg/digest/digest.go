// Package digest computes the stable, order-sensitive fingerprint of a
// profile's metadata used to validate a prior polylock.
//
// The digest is not required to be cryptographic (spec §9 Open Questions):
// realistic human edits to the metadata must change it, but collision
// resistance against an adversary is out of scope. hashstructure/v2 is
// built on FNV-1a and is documented here as the intentionally
// non-cryptographic choice.
package digest

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/gravitylab/trident/pkg/profile"
)

// hashOptions disables set-folding for slices so element order within
// Components, Layers, and each Layer's Content participates in the hash.
// Without this, hashstructure treats slices as order-insensitive sets,
// which would violate the spec's order-sensitivity requirement.
var hashOptions = &hashstructure.HashOptions{
	SlicesAsSets: false,
}

// Digest computes the metadata's fingerprint as a fixed-width hex string.
// Digest(m) == Digest(clone(m)) for any two structurally equal metadata
// values (determinism); toggling any field that influences resolution
// (a component version, a layer's Enabled/From/Summary/Content) changes
// the result (edit-sensitivity).
func Digest(m profile.Metadata) string {
	h, err := hashstructure.Hash(m, hashstructure.FormatV2, hashOptions)
	if err != nil {
		// hashstructure only errors on unsupported field types (channels,
		// funcs); Metadata contains none, so this is unreachable in
		// practice. Fall back to a sentinel rather than panicking so a
		// future field addition degrades to "always invalidate" instead
		// of crashing the Check stage.
		return "invalid"
	}
	return fmt.Sprintf("%016x", h)
}

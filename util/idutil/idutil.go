// Package idutil generates the identifiers embedded in bid responses.
//
// The simulator must return byte-identical responses for identical requests,
// so ids are name-based (UUID v5) rather than random: the same request,
// impression, and slot ids always map to the same bid id.
package idutil

import (
	"strings"

	"github.com/gofrs/uuid"
)

// namespace seeds every generated id. Fixed forever; changing it changes every
// externally observed bid id.
var namespace = uuid.Must(uuid.FromString("b4f5c2ac-52c5-4e03-8b43-8f9a61e4c0de"))

// DeterministicID returns a 32-char lower-hex id derived from the given parts.
func DeterministicID(parts ...string) string {
	id := uuid.NewV5(namespace, strings.Join(parts, "\x1f"))
	return strings.ReplaceAll(id.String(), "-", "")
}

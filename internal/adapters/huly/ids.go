package huly

import (
	"encoding/hex"

	"github.com/oklog/ulid/v2"
)

// newObjectID returns a 32 character hex id: a 48-bit millisecond timestamp
// followed by 80 bits of entropy. ulid.Make is safe for concurrent use and
// monotonic within a millisecond, so ids never repeat inside a process.
func newObjectID() string {
	id := ulid.Make()
	return hex.EncodeToString(id[:])
}

package types

import "strings"

// RecordID carries the two identities every backend record has: a small
// integer used for display and ordering, and the backend's string identity
// used on the wire. They are never derived from one another.
type RecordID struct {
	Display int    `json:"id"`
	Backend string `json:"_id"`
}

// Resolved reports whether the record has a usable backend identity.
func (r RecordID) Resolved() bool {
	return strings.TrimSpace(r.Backend) != ""
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is a study record as seen by the classifier: an identifier and the
// tags attached to it. For an Anki collection the ID is the note ID.
type Record struct {
	// ID identifies the record in its source (e.g. an Anki note ID).
	ID int64 `json:"id" yaml:"id"`

	// Tags are the raw tag strings, in source order.
	Tags []string `json:"tags" yaml:"tags"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source supplies the records whose tags get classified: notes from
// an Anki collection, or records listed in a YAML file.
package source

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// ErrNoSelection is returned when a source resolves to zero records.
var ErrNoSelection = errors.New("no records selected")

// Source yields the selected records.
type Source interface {
	Records(ctx context.Context) ([]types.Record, error)
}

// Selection narrows a source to specific records. Note IDs win over card
// IDs; an empty Selection means every record.
type Selection struct {
	NoteIDs []int64
	CardIDs []int64
}

// IsEmpty reports whether the selection names no records.
func (s Selection) IsEmpty() bool {
	return len(s.NoteIDs) == 0 && len(s.CardIDs) == 0
}

// Tags flattens the tags of records in order.
func Tags(records []types.Record) []string {
	var tags []string
	for _, r := range records {
		tags = append(tags, r.Tags...)
	}
	return tags
}

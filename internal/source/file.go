// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// RecordFile is the on-disk shape read by FileSource:
//
//	records:
//	  - id: 1712345678901
//	    tags: ["#AK_Step1_v12::#UWorld::Step::4821"]
type RecordFile struct {
	Records []types.Record `yaml:"records"`
}

// FileSource reads records from a YAML RecordFile. Card IDs in the
// selection are ignored; a file has no cards.
type FileSource struct {
	path string
	sel  Selection
}

// NewFileSource returns a source backed by the YAML file at path.
func NewFileSource(path string, sel Selection) *FileSource {
	return &FileSource{path: path, sel: sel}
}

// Records reads the file and returns the selected records in file order.
func (f *FileSource) Records(ctx context.Context) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading record file %s", f.path)
	}
	var rf RecordFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, errors.Wrapf(err, "parsing record file %s", f.path)
	}

	records := rf.Records
	if len(f.sel.NoteIDs) > 0 {
		records = slices.DeleteFunc(slices.Clone(records), func(r types.Record) bool {
			return !slices.Contains(f.sel.NoteIDs, r.ID)
		})
	}
	if len(records) == 0 {
		return nil, ErrNoSelection
	}
	return records, nil
}

// WriteRecordFile saves records in RecordFile form.
func WriteRecordFile(path string, records []types.Record) error {
	data, err := yaml.Marshal(RecordFile{Records: records})
	if err != nil {
		return errors.Wrap(err, "marshaling records")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing record file %s", path)
	}
	return nil
}

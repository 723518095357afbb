// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// ExportEntry is one category in an export.
type ExportEntry struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
	IDs      []int  `json:"ids" yaml:"ids,flow"`
}

// Entries lists every category of res in canonical order. Empty categories
// are included so consumers always see the full label set.
func Entries(res types.Result) []ExportEntry {
	entries := make([]ExportEntry, len(types.Categories))
	for i, c := range types.Categories {
		ids := res.IDsFor(c)
		entries[i] = ExportEntry{Category: string(c), Count: len(ids), IDs: ids}
	}
	return entries
}

// Export writes res to w as YAML or JSON.
func Export(w io.Writer, res types.Result, format types.OutputFormat) error {
	entries := Entries(res)

	switch format {
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return errors.Wrap(err, "marshaling YAML")
		}
		return enc.Close()
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return errors.Wrap(err, "marshaling JSON")
		}
		return nil
	default:
		return errors.Newf("unsupported export format %q: use yaml or json", format)
	}
}

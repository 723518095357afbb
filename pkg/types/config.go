// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how classify results are written.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
	OutputJSON OutputFormat = "json"
)

// SourceConfig selects where records come from and which of them are used.
type SourceConfig struct {
	// Collection is the path to an Anki collection SQLite file
	// (e.g. "~/.local/share/Anki2/User 1/collection.anki2").
	Collection string `json:"collection" yaml:"collection"`

	// Records is the path to a YAML record file. Used when Collection is empty.
	Records string `json:"records" yaml:"records"`

	// NoteIDs selects notes by ID. Takes precedence over CardIDs.
	NoteIDs []int64 `json:"note_ids,omitempty" yaml:"note_ids,omitempty"`

	// CardIDs selects the notes owning these cards.
	CardIDs []int64 `json:"card_ids,omitempty" yaml:"card_ids,omitempty"`
}

// ReportConfig holds presentation settings.
type ReportConfig struct {
	// Category limits text output to one category. Empty prints all.
	Category string `json:"category" yaml:"category"`

	// WithSpaces puts a space after each comma in ID lists (default true).
	WithSpaces bool `json:"with_spaces" yaml:"with_spaces"`

	// Format is the output format: text, yaml, or json.
	Format OutputFormat `json:"format" yaml:"format"`

	// Output is the file to write to. Empty writes to stdout.
	Output string `json:"output" yaml:"output"`
}

// FinderConfig groups everything one classify run needs.
type FinderConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Report ReportConfig `json:"report" yaml:"report"`

	// RulesFile replaces the built-in rule set with rules read from YAML.
	RulesFile string `json:"rules_file" yaml:"rules_file"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"io"
	"os"
	"regexp"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// RuleSpec is the on-disk form of a Rule.
type RuleSpec struct {
	Category string `json:"category" yaml:"category"`
	Pattern  string `json:"pattern" yaml:"pattern"`

	// Exclude is matched at the start of each candidate match; it is
	// anchored automatically.
	Exclude string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// File is the top-level shape of a rule file:
//
//	rules:
//	  - category: Step 3
//	    pattern: '#AK_Step3_v\d+::#UWorld::(\d+)\b'
//	    exclude: '#AK_Step3_v\d+::#UWorld::COMLEX::'
type File struct {
	Rules []RuleSpec `yaml:"rules"`
}

// LoadFile reads a YAML rule file and validates it with New.
func LoadFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rule file %s", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing rule file %s", path)
	}
	rs, err := Compile(f.Rules)
	if err != nil {
		return nil, errors.Wrapf(err, "rule file %s", path)
	}
	return rs, nil
}

// Compile turns specs into a validated RuleSet.
func Compile(specs []RuleSpec) (RuleSet, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		pat, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d: compiling pattern", i+1)
		}
		r := Rule{Category: types.Category(s.Category), Pattern: pat}
		if s.Exclude != "" {
			ex, err := regexp.Compile(`^(?:` + s.Exclude + `)`)
			if err != nil {
				return nil, errors.Wrapf(err, "rule %d: compiling exclude", i+1)
			}
			r.Exclude = ex
		}
		rules = append(rules, r)
	}
	return New(rules...)
}

// Specs returns the on-disk form of rs, in evaluation order.
func (rs RuleSet) Specs() []RuleSpec {
	specs := make([]RuleSpec, len(rs))
	for i, r := range rs {
		specs[i] = RuleSpec{Category: string(r.Category), Pattern: r.Pattern.String()}
		if r.Exclude != nil {
			specs[i].Exclude = r.Exclude.String()
		}
	}
	return specs
}

// WriteYAML writes rs in rule file form, suitable for LoadFile.
func (rs RuleSet) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Rules: rs.Specs()}); err != nil {
		return errors.Wrap(err, "encoding rules")
	}
	return enc.Close()
}

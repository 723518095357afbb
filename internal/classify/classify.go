// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify turns a batch of tags into per-category question ID
// lists using a rules.RuleSet.
package classify

import (
	"github.com/cockroachdb/errors"

	"github.com/ashklab/uworld-finder/internal/rules"
	"github.com/ashklab/uworld-finder/pkg/types"
)

// Classifier applies a rule set to tag batches. It keeps no state between
// calls, so one Classifier may serve any number of goroutines.
type Classifier struct {
	rules rules.RuleSet
}

// New returns a Classifier for rs. A nil rs uses rules.Default.
func New(rs rules.RuleSet) *Classifier {
	if rs == nil {
		rs = rules.Default()
	}
	return &Classifier{rules: rs}
}

// Classify matches every tag and returns the IDs collected per category.
// Tags that match no rule are skipped. Each call starts from empty sets.
func (c *Classifier) Classify(tags []string) (types.Result, error) {
	sets := make(map[types.Category]map[int]struct{}, len(types.Categories))
	for _, cat := range types.Categories {
		sets[cat] = make(map[int]struct{})
	}

	for _, tag := range tags {
		m, err := c.rules.Match(tag)
		if err != nil {
			return types.Result{}, errors.Wrapf(err, "classifying tag %q", tag)
		}
		if m == nil {
			continue
		}
		sets[m.Category][m.ID] = struct{}{}
	}

	return types.NewResult(sets), nil
}

// ClassifyRecords classifies the tags of all records together.
func (c *Classifier) ClassifyRecords(records []types.Record) (types.Result, error) {
	var tags []string
	for _, r := range records {
		tags = append(tags, r.Tags...)
	}
	return c.Classify(tags)
}

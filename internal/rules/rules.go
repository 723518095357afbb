// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules holds the ordered pattern table that maps UWorld tags to
// question-bank categories and pulls the question ID out of each match.
package rules

import (
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// Rule recognizes one category. Pattern must have exactly one capture
// group holding the question ID. A candidate match is discarded when
// Exclude also matches at the same offset.
type Rule struct {
	Category types.Category
	Pattern  *regexp.Regexp
	Exclude  *regexp.Regexp
}

// RuleSet is evaluated in order; the first rule that matches a tag wins.
type RuleSet []Rule

// Match is the outcome of a successful RuleSet.Match.
type Match struct {
	Category types.Category
	ID       int

	// Rule is the index of the rule that matched.
	Rule int
}

// Patterns for the AnKing deck tagging scheme. The _v\d+ deck version is
// not part of the captured ID.
var (
	step1Pattern   = regexp.MustCompile(`#AK_Step1_v\d+::#UWorld::Step::(\d+)\b`)
	step2Pattern   = regexp.MustCompile(`#AK_Step2_v\d+::#UWorld::Step::(\d+)\b`)
	step3Pattern   = regexp.MustCompile(`#AK_Step3_v\d+::#UWorld::(\d+)\b`)
	step3Exclude   = regexp.MustCompile(`^#AK_Step3_v\d+::#UWorld::COMLEX::`)
	comlex1Pattern = regexp.MustCompile(`#AK_Step1_v\d+::#UWorld::COMLEX::(\d+)\b`)
	comlex2Pattern = regexp.MustCompile(`#AK_Step2_v\d+::#UWorld::COMLEX::(\d+)\b`)
)

var defaultRules = RuleSet{
	{Category: types.CategoryStep1, Pattern: step1Pattern},
	{Category: types.CategoryStep2, Pattern: step2Pattern},
	{Category: types.CategoryStep3, Pattern: step3Pattern, Exclude: step3Exclude},
	{Category: types.CategoryComlex1, Pattern: comlex1Pattern},
	{Category: types.CategoryComlex2, Pattern: comlex2Pattern},
}

// Default returns the built-in rule set: Step 1, Step 2, Step 3,
// COMLEX 1, COMLEX 2, in that order.
func Default() RuleSet {
	out := make(RuleSet, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// New validates rules and returns them as a RuleSet. Every rule needs a
// known category and a pattern with exactly one capture group.
func New(rules ...Rule) (RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.New("rule set is empty")
	}
	for i, r := range rules {
		if !r.Category.Valid() {
			return nil, errors.Newf("rule %d: unknown category %q", i+1, r.Category)
		}
		if r.Pattern == nil {
			return nil, errors.Newf("rule %d (%s): pattern is required", i+1, r.Category)
		}
		if n := r.Pattern.NumSubexp(); n != 1 {
			return nil, errors.Newf("rule %d (%s): pattern %q has %d capture groups, want 1",
				i+1, r.Category, r.Pattern.String(), n)
		}
	}
	return RuleSet(rules), nil
}

// Match runs the rules against tag in order and returns the first hit.
// It returns nil, nil when no rule matches. An error means a rule captured
// text that is not a representable ID; that is a defect in the rule, not a
// property of the tag, and is never coerced.
func (rs RuleSet) Match(tag string) (*Match, error) {
	for i, r := range rs {
		digits, ok := r.find(tag)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(digits)
		if err != nil {
			return nil, errors.NewAssertionErrorWithWrappedErrf(err,
				"rule %d (%s) captured malformed question ID %q", i+1, r.Category, digits)
		}
		return &Match{Category: r.Category, ID: id, Rule: i}, nil
	}
	return nil, nil
}

// find returns the first capture of r.Pattern in tag whose match is not
// vetoed by r.Exclude.
func (r Rule) find(tag string) (string, bool) {
	if r.Exclude == nil {
		m := r.Pattern.FindStringSubmatch(tag)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(tag, -1) {
		if r.Exclude.MatchString(tag[loc[0]:]) {
			continue
		}
		if loc[2] < 0 {
			return "", true
		}
		return tag[loc[2]:loc[3]], true
	}
	return "", false
}

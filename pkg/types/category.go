// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is one of the five question-bank buckets a tag can fall into.
// The set is closed; Categories lists it in canonical order.
type Category string

const (
	CategoryStep1   Category = "Step 1"
	CategoryStep2   Category = "Step 2"
	CategoryStep3   Category = "Step 3"
	CategoryComlex1 Category = "COMLEX 1"
	CategoryComlex2 Category = "COMLEX 2"
)

// Categories is the closed label set in display and export order.
var Categories = []Category{
	CategoryStep1,
	CategoryStep2,
	CategoryStep3,
	CategoryComlex1,
	CategoryComlex2,
}

// ParseCategory returns the Category whose label is exactly s.
// Matching is case-sensitive.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c belongs to the closed label set.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// CategoryNames returns the labels as plain strings, for help text and
// error messages.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders classification results for people and for other
// tools: comma-joined ID lists, count labels, a summary table, and YAML or
// JSON exports.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ashklab/uworld-finder/pkg/types"
)

// JoinIDs renders ids as "1, 2, 3" (withSpaces) or "1,2,3". No IDs yields
// the empty string.
func JoinIDs(ids []int, withSpaces bool) string {
	sep := ","
	if withSpaces {
		sep = ", "
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// CopyCount returns how many IDs a JoinIDs string holds.
func CopyCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, ",") + 1
}

// CountLabel returns the heading shown above a category's list,
// e.g. "Step 1: 12 Questions".
func CountLabel(c types.Category, n int) string {
	return fmt.Sprintf("%s: %d Questions", c, n)
}

// Summary renders a table of every category and its question count.
func Summary(res types.Result) (string, error) {
	data := pterm.TableData{{"Category", "Questions"}}
	for _, c := range types.Categories {
		data = append(data, []string{string(c), strconv.Itoa(res.Count(c))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

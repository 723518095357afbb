// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashklab/uworld-finder/internal/report"
	"github.com/ashklab/uworld-finder/internal/source"
	"github.com/ashklab/uworld-finder/pkg/types"
)

// --- test helpers ---

func sampleResult() types.Result {
	return types.NewResult(map[types.Category]map[int]struct{}{
		types.CategoryStep1: {4821: {}, 12: {}},
		types.CategoryStep3: {5501: {}},
	})
}

// resetFlags restores every flag of cmd to its default so tests that
// execute rootCmd do not see each other's arguments.
func resetFlags(t *testing.T, cmds ...*cobra.Command) {
	t.Helper()
	for _, cmd := range cmds {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				require.NoError(t, sv.Replace(nil))
			} else {
				require.NoError(t, f.Value.Set(f.DefValue))
			}
			f.Changed = false
		})
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd, classifyCmd, rulesCmd)
	t.Cleanup(func() { resetFlags(t, rootCmd, classifyCmd, rulesCmd) })

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestCollection(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.anki2")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE notes (id INTEGER PRIMARY KEY, tags TEXT NOT NULL)`,
		`CREATE TABLE cards (id INTEGER PRIMARY KEY, nid INTEGER NOT NULL)`,
		`INSERT INTO notes VALUES (1, ' #AK_Step1_v12::#UWorld::Step::4821 #AK_Step1_v12::#UWorld::Step::12 ')`,
		`INSERT INTO notes VALUES (2, ' #AK_Step1_v12::#UWorld::COMLEX::77 leech ')`,
		`INSERT INTO notes VALUES (3, ' #AK_Step3_v1::#UWorld::5501 ')`,
		`INSERT INTO cards VALUES (10, 1), (20, 2), (30, 3)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

// --- writeResult ---

func TestWriteResultCategory(t *testing.T) {
	tests := []struct {
		name string
		rc   types.ReportConfig
		want string
	}{
		{
			name: "with spaces",
			rc:   types.ReportConfig{Category: "Step 1", WithSpaces: true},
			want: "Step 1: 2 Questions\n12, 4821\n",
		},
		{
			name: "without spaces",
			rc:   types.ReportConfig{Category: "Step 1", Format: types.OutputText},
			want: "Step 1: 2 Questions\n12,4821\n",
		},
		{
			name: "empty category prints only the count",
			rc:   types.ReportConfig{Category: "COMLEX 2", WithSpaces: true},
			want: "COMLEX 2: 0 Questions\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeResult(&buf, sampleResult(), tt.rc))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteResultUnknownCategory(t *testing.T) {
	err := writeResult(&bytes.Buffer{}, sampleResult(), types.ReportConfig{Category: "step 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "step 1"`)
	hints := errors.GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], `"COMLEX 2"`)
}

func TestWriteResultAllCategories(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(), types.ReportConfig{WithSpaces: true}))
	out := buf.String()

	assert.Contains(t, out, "Step 1: 2 Questions\n12, 4821\n")
	assert.Contains(t, out, "Step 3: 1 Questions\n5501\n")
	assert.NotContains(t, out, "Step 2: 0 Questions", "empty categories only appear in the summary table")
	assert.Contains(t, out, "COMLEX 1")
}

func TestWriteResultFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(), types.ReportConfig{Format: types.OutputJSON}))
	var entries []report.ExportEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Len(t, entries, 5)

	err := writeResult(&bytes.Buffer{}, sampleResult(), types.ReportConfig{Format: "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "csv"`)
}

// --- commands ---

func TestClassifyCommandCollection(t *testing.T) {
	path := writeTestCollection(t)

	out, err := execute(t, "classify", "--collection", path, "--category", "Step 1")
	require.NoError(t, err)
	assert.Equal(t, "Step 1: 2 Questions\n12, 4821\n", out)

	out, err = execute(t, "classify", "--collection", path, "--card", "20", "--category", "COMLEX 1", "--no-spaces")
	require.NoError(t, err)
	assert.Equal(t, "COMLEX 1: 1 Questions\n77\n", out)

	out, err = execute(t, "classify", "--collection", path, "--note", "3", "--note", "1", "--format", "json")
	require.NoError(t, err)
	var entries []report.ExportEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []int{12, 4821}, entries[0].IDs)
	assert.Equal(t, []int{5501}, entries[2].IDs)
	assert.Empty(t, entries[3].IDs)
}

func TestClassifyCommandRecordsToFile(t *testing.T) {
	dir := t.TempDir()
	records := filepath.Join(dir, "records.yaml")
	require.NoError(t, source.WriteRecordFile(records, []types.Record{
		{ID: 1, Tags: []string{"#AK_Step2_v5::#UWorld::Step::9012"}},
		{ID: 2, Tags: []string{"#AK_Step2_v1::#UWorld::COMLEX::200", "#AK_Step1_v3::#UWorld::COMLEX::100"}},
	}))
	outPath := filepath.Join(dir, "ids.yaml")

	out, err := execute(t, "classify", "--records", records, "--format", "yaml", "--output", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ids: [9012]")
	assert.Contains(t, string(data), "ids: [100]")
	assert.Contains(t, string(data), "ids: [200]")
}

func TestClassifyCommandErrors(t *testing.T) {
	path := writeTestCollection(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
		hint   string
	}{
		{name: "no source", args: []string{"classify"}, errMsg: "no record source configured", hint: "--collection"},
		{name: "both sources", args: []string{"classify", "--collection", path, "--records", "r.yaml"}, errMsg: "mutually exclusive"},
		{name: "nothing selected", args: []string{"classify", "--collection", path, "--note", "999"}, errMsg: "no records selected", hint: "select at least one note or card"},
		{name: "missing collection", args: []string{"classify", "--collection", filepath.Join(t.TempDir(), "nope.anki2")}, errMsg: "opening collection"},
		{name: "bad rule file", args: []string{"classify", "--collection", path, "--rules", filepath.Join(t.TempDir(), "nope.yaml")}, errMsg: "reading rule file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			if tt.hint != "" {
				assert.Contains(t, strings.Join(errors.GetAllHints(err), "\n"), tt.hint)
			}
		})
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	for _, c := range types.CategoryNames() {
		assert.Contains(t, out, c)
	}
	assert.Contains(t, out, `#AK_Step3_v\d+::#UWorld::(\d+)\b`)

	out, err = execute(t, "rules", "--yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "rules:\n"))
	assert.Contains(t, out, "category: COMLEX 2")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "uworld-finder dev\n", out)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home+"/collection.anki2", expandHome("~/collection.anki2"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "", expandHome(""))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashklab/uworld-finder/internal/classify"
	"github.com/ashklab/uworld-finder/internal/logging"
	"github.com/ashklab/uworld-finder/internal/report"
	"github.com/ashklab/uworld-finder/internal/rules"
	"github.com/ashklab/uworld-finder/internal/source"
	"github.com/ashklab/uworld-finder/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Extract UWorld question IDs from note tags",
	Long: `Classify reads the tags of the selected notes and prints the UWorld
question IDs found in them, one sorted list per question bank.

Notes come from an Anki collection (--collection) or a YAML record file
(--records). Select notes with --note, or cards with --card (their notes are
used). With no selection every note is read.

With --category only that bank is printed: a count line followed by the
comma-separated IDs. Use --format yaml or json to export all banks.`,
	Example: `  uworld-finder classify --collection ~/Anki2/User\ 1/collection.anki2 --category "Step 1"
  uworld-finder classify --records notes.yaml --format json --output ids.json`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := finderConfig(cmd)
	if err != nil {
		return err
	}

	rs, err := loadRules(cfg.RulesFile)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(cfg.Source)
	if err != nil {
		return err
	}
	defer closeSrc()

	records, err := src.Records(context.Background())
	if errors.Is(err, source.ErrNoSelection) {
		return errors.WithHint(err, "select at least one note or card")
	}
	if err != nil {
		return err
	}

	res, err := classify.New(rs).ClassifyRecords(records)
	if err != nil {
		return err
	}
	logging.Logger.Infow("classified notes",
		"notes", len(records),
		"tags", len(source.Tags(records)),
		"ids", res.Total())

	w := cmd.OutOrStdout()
	if cfg.Report.Output != "" {
		f, err := os.Create(cfg.Report.Output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", cfg.Report.Output)
		}
		defer f.Close()
		w = f
	}

	if err := writeResult(w, res, cfg.Report); err != nil {
		return err
	}
	if cfg.Report.Output != "" {
		logging.Logger.Infow("wrote results", "path", cfg.Report.Output)
	}
	return nil
}

// writeResult renders res in the configured format.
func writeResult(w io.Writer, res types.Result, rc types.ReportConfig) error {
	switch rc.Format {
	case types.OutputYAML, types.OutputJSON:
		return report.Export(w, res, rc.Format)
	case types.OutputText, "":
	default:
		return errors.Newf("unsupported format %q: use text, yaml, or json", rc.Format)
	}

	if rc.Category != "" {
		c, err := parseCategory(rc.Category)
		if err != nil {
			return err
		}
		ids := res.IDsFor(c)
		fmt.Fprintln(w, report.CountLabel(c, len(ids)))
		if len(ids) > 0 {
			fmt.Fprintln(w, report.JoinIDs(ids, rc.WithSpaces))
		}
		return nil
	}

	summary, err := report.Summary(res)
	if err != nil {
		return errors.Wrap(err, "rendering summary")
	}
	fmt.Fprintln(w, summary)

	for _, c := range types.Categories {
		ids := res.IDsFor(c)
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, report.CountLabel(c, len(ids)))
		fmt.Fprintln(w, report.JoinIDs(ids, rc.WithSpaces))
	}
	return nil
}

func parseCategory(s string) (types.Category, error) {
	c, ok := types.ParseCategory(s)
	if !ok {
		err := errors.Newf("unknown category %q", s)
		return "", errors.WithHintf(err, "valid categories: %s", strings.Join(quoted(types.CategoryNames()), ", "))
	}
	return c, nil
}

func quoted(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}

// --- shared helpers ---

// finderConfig merges flags, environment and config file. Flags set on the
// command line win; note and card selections come from flags only.
func finderConfig(cmd *cobra.Command) (types.FinderConfig, error) {
	noteIDs, _ := cmd.Flags().GetInt64Slice("note")
	cardIDs, _ := cmd.Flags().GetInt64Slice("card")
	noSpaces, _ := cmd.Flags().GetBool("no-spaces")

	cfg := types.FinderConfig{
		Source: types.SourceConfig{
			Collection: expandHome(viper.GetString("collection")),
			Records:    expandHome(viper.GetString("records")),
			NoteIDs:    noteIDs,
			CardIDs:    cardIDs,
		},
		Report: types.ReportConfig{
			Category:   viper.GetString("category"),
			WithSpaces: viper.GetBool("with_spaces") && !noSpaces,
			Format:     types.OutputFormat(strings.ToLower(viper.GetString("format"))),
			Output:     viper.GetString("output"),
		},
		RulesFile: expandHome(viper.GetString("rules_file")),
	}

	if cfg.Source.Collection == "" && cfg.Source.Records == "" {
		err := errors.New("no record source configured")
		return cfg, errors.WithHint(err, "pass --collection or --records, or set collection in uworld-finder.yaml")
	}
	if cfg.Source.Collection != "" && cfg.Source.Records != "" {
		return cfg, errors.New("--collection and --records are mutually exclusive")
	}
	return cfg, nil
}

func loadRules(path string) (rules.RuleSet, error) {
	if path == "" {
		return rules.Default(), nil
	}
	rs, err := rules.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.Logger.Debugw("loaded rule file", "path", path, "rules", len(rs))
	return rs, nil
}

func openSource(sc types.SourceConfig) (source.Source, func(), error) {
	sel := source.Selection{NoteIDs: sc.NoteIDs, CardIDs: sc.CardIDs}
	if sc.Records != "" {
		return source.NewFileSource(sc.Records, sel), func() {}, nil
	}
	col, err := source.OpenCollection(sc.Collection, sel)
	if err != nil {
		return nil, nil, err
	}
	return col, func() { col.Close() }, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

func init() {
	classifyCmd.Flags().String("collection", "", "path to an Anki collection file (collection.anki2)")
	classifyCmd.Flags().String("records", "", "path to a YAML record file")
	classifyCmd.Flags().Int64Slice("note", nil, "note ID to include (repeatable)")
	classifyCmd.Flags().Int64Slice("card", nil, "card ID whose note to include (repeatable)")
	classifyCmd.Flags().String("category", "", `print only this category: "Step 1", "Step 2", "Step 3", "COMLEX 1", "COMLEX 2"`)
	classifyCmd.Flags().Bool("no-spaces", false, "join IDs with bare commas")
	classifyCmd.Flags().String("format", "text", "output format: text, yaml, or json")
	classifyCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")
	classifyCmd.Flags().String("rules", "", "YAML rule file replacing the built-in rules")

	for key, flag := range map[string]string{
		"collection": "collection",
		"records":    "records",
		"category":   "category",
		"format":     "format",
		"output":     "output",
		"rules_file": "rules",
	} {
		_ = viper.BindPFlag(key, classifyCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(classifyCmd)
}

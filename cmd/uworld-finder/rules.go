// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashklab/uworld-finder/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the tag rules in evaluation order",
	Long: `Rules prints the patterns classify uses, in the order they are tried.
The first rule that matches a tag decides its category.

Use --yaml to print the rules as a rule file that --rules accepts, as a
starting point for a custom scheme.`,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	rs, err := loadRules(expandHome(viper.GetString("rules_file")))
	if err != nil {
		return err
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		return rs.WriteYAML(cmd.OutOrStdout())
	}

	out, err := renderRules(rs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderRules(rs rules.RuleSet) (string, error) {
	data := pterm.TableData{{"#", "Category", "Pattern", "Exclude"}}
	for i, s := range rs.Specs() {
		data = append(data, []string{strconv.Itoa(i + 1), s.Category, s.Pattern, s.Exclude})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func init() {
	rulesCmd.Flags().Bool("yaml", false, "print as a YAML rule file")

	rootCmd.AddCommand(rulesCmd)
}

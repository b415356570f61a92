package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"promptloom/src/graph"
	"promptloom/src/sanitizer"
)

var (
	validateJSON   bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [bank-dir...]",
	Short: "Check question banks for dangling pointers and unsafe weight templates",
	Long: `Validate loads the embedded question bank, the configured bank
directories and any directories given as arguments, then reports answers
that point at missing nodes and weight templates that cannot be emitted
safely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		paths := append(append([]string(nil), s.Graph.BankPaths...), args...)
		g, err := graph.LoadPaths(paths, graph.WithConventions(s.Graph.Conventions))
		if err != nil {
			return err
		}

		issues := sanitizer.Validate(g.Records())
		out := cmd.OutOrStdout()
		if validateJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(issues); err != nil {
				return err
			}
		} else {
			for _, issue := range issues {
				fmt.Fprintln(out, issue.String())
				if issue.Recommendation != "" {
					fmt.Fprintf(out, "    suggestion: %s\n", issue.Recommendation)
				}
			}
			fmt.Fprintf(out, "%d nodes checked, %d issues\n", g.Len(), len(issues))
		}

		if validateStrict && len(issues) > 0 {
			return fmt.Errorf("question bank has %d issues", len(issues))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print issues as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when issues are found")
	rootCmd.AddCommand(validateCmd)
}

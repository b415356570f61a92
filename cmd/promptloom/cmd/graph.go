package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"promptloom/src/graph"
)

var exportFormat string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the question graph",
}

var graphListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every node id",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		for _, id := range env.graph.SortedIDs() {
			n, _ := env.graph.Node(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", id, n.Question)
		}
		return nil
	},
}

var graphShowCmd = &cobra.Command{
	Use:   "show <node-id>",
	Short: "Print one node as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		n, ok := env.graph.Node(args[0])
		if !ok {
			return fmt.Errorf("node %s not found", args[0])
		}
		return writeRecords(cmd.OutOrStdout(), "yaml", []graph.Node{*n})
	},
}

var graphExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the merged question bank",
	Long: `Export writes the merged question bank (embedded plus configured
directories) in json, yaml or toml. The output can be dropped into a bank
directory and edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), exportFormat, env.graph.Records())
	},
}

type tomlRecords struct {
	Nodes []graph.Node `toml:"nodes"`
}

func writeRecords(w io.Writer, format string, records []graph.Node) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(tomlRecords{Nodes: records})
	default:
		return fmt.Errorf("unknown format %q (json, yaml or toml)", format)
	}
}

func init() {
	graphExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json, yaml or toml")
	graphCmd.AddCommand(graphListCmd, graphShowCmd, graphExportCmd)
	rootCmd.AddCommand(graphCmd)
}

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptloom/src/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage promptloom configuration",
	Long: `Manage promptloom configuration settings.

Examples:
  promptloom config get store.path
  promptloom config set log.level debug
  promptloom config list
  promptloom config edit`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := viper.Get(args[0])
		if value == nil {
			return fmt.Errorf("key '%s' not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if value == "true" || value == "false" {
			viper.Set(key, value == "true")
		} else {
			viper.Set(key, value)
		}

		configFile, err := configFilePath()
		if err != nil {
			return err
		}
		if err := viper.WriteConfigAs(configFile); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\nConfig saved to %s\n", key, value, configFile)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		flattened := flattenMap("", viper.AllSettings())
		if len(flattened) == 0 {
			fmt.Fprintln(out, "No configuration settings found")
			return
		}

		keys := make([]string, 0, len(flattened))
		for k := range flattened {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(out, "Configuration settings:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %s = %v\n", key, flattened[key])
		}
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(out, "\nConfig file: %s\n", configFile)
		}
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in your default editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			if err := os.WriteFile(configFile, []byte("# promptloom configuration file\n"), 0644); err != nil {
				return err
			}
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = os.Getenv("VISUAL")
		}
		if editor == "" {
			for _, e := range []string{"vim", "vi", "nano", "emacs"} {
				if _, err := exec.LookPath(e); err == nil {
					editor = e
					break
				}
			}
		}
		if editor == "" {
			return fmt.Errorf("no editor found; set $EDITOR or $VISUAL")
		}

		editorCmd := exec.Command(editor, configFile)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		return editorCmd.Run()
	},
}

// configFilePath returns the config file in use, creating its directory
// when none exists yet
func configFilePath() (string, error) {
	if f := viper.ConfigFileUsed(); f != "" {
		return f, nil
	}
	path := config.GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}

// flattenMap flattens a nested map into dot-notation keys
func flattenMap(prefix string, m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]interface{}:
			for k, val := range flattenMap(fullKey, v) {
				result[k] = val
			}
		case []interface{}:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprintf("%v", item))
			}
			result[fullKey] = strings.Join(items, ", ")
		default:
			result[fullKey] = value
		}
	}
	return result
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

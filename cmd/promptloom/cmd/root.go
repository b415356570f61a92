package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"promptloom/src/config"
	"promptloom/src/graph"
	"promptloom/src/logging"
)

var (
	cfgFile   string
	logLevel  string
	storePath string
	bankPaths []string
)

var rootCmd = &cobra.Command{
	Use:   "promptloom",
	Short: "Build image-generation prompts through a guided interview",
	Long: `promptloom walks a branching question graph, collects answers and
emphasis weights, and assembles them into a weighted prompt plus a
negative prompt.

Question banks ship embedded; extra banks (JSON, TOML or YAML) in the
configured bank directories override or extend them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/promptloom/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "session database path")
	rootCmd.PersistentFlags().StringSliceVar(&bankPaths, "banks", nil, "extra question bank directories")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("graph.bank_paths", rootCmd.PersistentFlags().Lookup("banks"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.GetConfigDir())
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PROMPTLOOM")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

// loadSettings decodes the TOML settings and layers flag and environment
// overrides from viper on top
func loadSettings() (*config.Settings, error) {
	path := cfgFile
	if path == "" {
		path = config.GetSettingsPath()
	}
	s, err := config.LoadSettingsFrom(path)
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("log.mode"); v != "" {
		s.Log.Mode = v
	}
	if v := viper.GetString("log.level"); v != "" {
		s.Log.Level = v
	}
	if v := viper.GetString("store.path"); v != "" {
		s.Store.Path = v
	}
	if v := viper.GetString("daemon.socket"); v != "" {
		s.Daemon.Socket = v
	}
	if len(bankPaths) > 0 {
		s.Graph.BankPaths = append(s.Graph.BankPaths, bankPaths...)
	}
	return s, nil
}

// environment is what most subcommands need to run
type environment struct {
	settings *config.Settings
	log      *zap.Logger
	graph    *graph.Graph
}

func setup() (*environment, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(s.Log.Mode, s.Log.Level)
	if err != nil {
		return nil, err
	}
	g, err := s.LoadGraph()
	if err != nil {
		return nil, err
	}
	log.Debug("question graph loaded", zap.Int("nodes", g.Len()), zap.Strings("banks", s.Graph.BankPaths))
	return &environment{settings: s, log: log, graph: g}, nil
}

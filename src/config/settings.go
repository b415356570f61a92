package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"promptloom/src/graph"
)

type Settings struct {
	Graph  GraphConfig  `toml:"graph"`
	Store  StoreConfig  `toml:"store"`
	Daemon DaemonConfig `toml:"daemon"`
	Log    LogConfig    `toml:"log"`
}

// GraphConfig selects question banks and overrides node id conventions
type GraphConfig struct {
	BankPaths []string `toml:"bank_paths"`
	graph.Conventions
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type DaemonConfig struct {
	Socket  string `toml:"socket"`
	PIDFile string `toml:"pid_file"`
}

type LogConfig struct {
	Mode  string `toml:"mode"`
	Level string `toml:"level"`
}

// DefaultSettings returns settings pointing at the XDG directories
func DefaultSettings() *Settings {
	data := GetDataDir()
	return &Settings{
		Graph: GraphConfig{
			BankPaths:   []string{GetQuestionsDir()},
			Conventions: graph.DefaultConventions(),
		},
		Store: StoreConfig{
			Path: filepath.Join(data, "sessions.db"),
		},
		Daemon: DaemonConfig{
			Socket:  filepath.Join(data, "daemon.sock"),
			PIDFile: filepath.Join(data, "daemon.pid"),
		},
		Log: LogConfig{
			Mode:  "production",
			Level: "info",
		},
	}
}

// LoadSettings reads config.toml from the config directory. A missing file
// yields the defaults.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom decodes the TOML file at path over the defaults
func LoadSettingsFrom(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), settings); err != nil {
		return nil, err
	}
	settings.expandPaths()
	return settings, nil
}

func (s *Settings) expandPaths() {
	for i, p := range s.Graph.BankPaths {
		s.Graph.BankPaths[i] = expandHome(p)
	}
	s.Store.Path = expandHome(s.Store.Path)
	s.Daemon.Socket = expandHome(s.Daemon.Socket)
	s.Daemon.PIDFile = expandHome(s.Daemon.PIDFile)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// LoadGraph builds the question graph from the embedded bank overlaid with
// the configured bank directories
func (s *Settings) LoadGraph() (*graph.Graph, error) {
	return graph.LoadPaths(s.Graph.BankPaths, graph.WithConventions(s.Graph.Conventions))
}

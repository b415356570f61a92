package graph

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "promptloom/src/errors"
)

//go:embed data
var embeddedBank embed.FS

// LoadDefault builds a graph from the embedded starter question bank
func LoadDefault(opts ...Option) (*Graph, error) {
	return LoadPaths(nil, opts...)
}

// LoadPaths builds a graph from the embedded bank overlaid with every
// directory in paths. A user record replaces an embedded record with the
// same id; directories are applied in order.
func LoadPaths(paths []string, opts ...Option) (*Graph, error) {
	records, err := Load(embeddedBank, "data")
	if err != nil {
		return nil, err
	}

	for _, dir := range paths {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		user, err := Load(os.DirFS(dir), ".")
		if err != nil {
			return nil, err
		}
		records = mergeRecords(records, user)
	}

	return New(records, opts...)
}

// Load walks root inside fsys and decodes every question bank file in
// lexical path order. Each file holds one node or a list of nodes.
func Load(fsys fs.FS, root string) ([]Node, error) {
	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := decoderFor(p); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk question bank %s: %w", root, err)
	}
	sort.Strings(files)

	var records []Node
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, &perrors.LoadError{Path: p, Err: err}
		}
		nodes, err := DecodeFile(p, data)
		if err != nil {
			return nil, err
		}
		records = append(records, nodes...)
	}
	return records, nil
}

type decodeFunc func(data []byte) ([]Node, error)

func decoderFor(p string) (decodeFunc, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return decodeJSON, true
	case ".toml":
		return decodeTOML, true
	case ".yaml", ".yml":
		return decodeYAML, true
	default:
		return nil, false
	}
}

// DecodeFile decodes a single question bank file, choosing the format by
// extension.
func DecodeFile(p string, data []byte) ([]Node, error) {
	decode, ok := decoderFor(p)
	if !ok {
		return nil, &perrors.LoadError{Path: p, Err: perrors.ErrUnsupportedFormat}
	}
	nodes, err := decode(data)
	if err != nil {
		return nil, &perrors.LoadError{Path: p, Err: err}
	}
	return nodes, nil
}

func decodeJSON(data []byte) ([]Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var nodes []Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, err
		}
		return nodes, nil
	}
	var node Node
	if err := json.Unmarshal(trimmed, &node); err != nil {
		return nil, err
	}
	if node.ID == "" {
		return nil, nil
	}
	return []Node{node}, nil
}

type tomlBank struct {
	Nodes []Node `toml:"nodes"`
}

func decodeTOML(data []byte) ([]Node, error) {
	var bank tomlBank
	if _, err := toml.Decode(string(data), &bank); err != nil {
		return nil, err
	}
	if len(bank.Nodes) > 0 {
		return bank.Nodes, nil
	}
	var node Node
	if _, err := toml.Decode(string(data), &node); err != nil {
		return nil, err
	}
	if node.ID == "" {
		return nil, nil
	}
	return []Node{node}, nil
}

func decodeYAML(data []byte) ([]Node, error) {
	var nodes []Node
	if err := yaml.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}
	var node Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.ID == "" {
		return nil, nil
	}
	return []Node{node}, nil
}

func mergeRecords(base, overlay []Node) []Node {
	index := make(map[string]int, len(base))
	for i, n := range base {
		index[n.ID] = i
	}
	out := append([]Node(nil), base...)
	for _, n := range overlay {
		if i, ok := index[n.ID]; ok {
			out[i] = n
			continue
		}
		index[n.ID] = len(out)
		out = append(out, n)
	}
	return out
}

// Package graph holds the interview question graph: an immutable arena of
// nodes keyed by string identifiers. Answers point at other nodes by id, so
// the graph may contain cycles and nodes may be revisited.
package graph

import (
	"fmt"
	"sort"
	"strings"

	perrors "promptloom/src/errors"
)

// Graph is read-only after construction and safe to share between sessions
type Graph struct {
	nodes   map[string]*Node
	order   []string
	records []Node
	weights map[string]WeightDefinition
	conv    Conventions
}

// Option configures graph construction
type Option func(*Graph)

// WithConventions overrides the identifier conventions. Empty fields keep
// their defaults.
func WithConventions(c Conventions) Option {
	return func(g *Graph) {
		g.conv = c.withDefaults()
	}
}

// New builds a graph from top-level node records. Nested refinements are
// registered in the same namespace unless a top-level record already owns
// their id.
func New(records []Node, opts ...Option) (*Graph, error) {
	g := &Graph{
		nodes:   make(map[string]*Node, len(records)),
		weights: make(map[string]WeightDefinition),
		conv:    DefaultConventions(),
	}
	for _, opt := range opts {
		opt(g)
	}

	for i := range records {
		rec := records[i]
		if strings.TrimSpace(rec.ID) == "" {
			return nil, &perrors.ValidationError{Field: "id", Message: fmt.Sprintf("node #%d has an empty id", i)}
		}
		if _, dup := g.nodes[rec.ID]; dup {
			return nil, fmt.Errorf("%w: %s", perrors.ErrDuplicateNode, rec.ID)
		}
		node := rec
		g.nodes[rec.ID] = &node
		g.order = append(g.order, rec.ID)
		g.records = append(g.records, rec)
	}

	for _, id := range append([]string(nil), g.order...) {
		for _, ref := range g.nodes[id].Refinements {
			if ref.ID == "" {
				continue
			}
			if _, exists := g.nodes[ref.ID]; exists {
				continue
			}
			node := ref.AsNode()
			g.nodes[ref.ID] = &node
			g.order = append(g.order, ref.ID)
		}
	}

	for _, id := range g.order {
		for _, w := range g.nodes[id].VisibleWeights() {
			if _, ok := g.weights[w.ID]; !ok {
				g.weights[w.ID] = w
			}
		}
	}

	if _, ok := g.nodes[g.conv.Root]; !ok {
		return nil, fmt.Errorf("%w: root node %q", perrors.ErrNodeNotFound, g.conv.Root)
	}
	return g, nil
}

// Node returns the node registered under id
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether id names a node
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Root is the designated entry node id
func (g *Graph) Root() string {
	return g.conv.Root
}

func (g *Graph) Conventions() Conventions {
	return g.conv
}

// Len is the number of addressable nodes, refinements included
func (g *Graph) Len() int {
	return len(g.order)
}

// IDs returns every node id in load order
func (g *Graph) IDs() []string {
	return append([]string(nil), g.order...)
}

// SortedIDs returns every node id in lexical order
func (g *Graph) SortedIDs() []string {
	ids := g.IDs()
	sort.Strings(ids)
	return ids
}

// Records returns the top-level source records the graph was built from
func (g *Graph) Records() []Node {
	return append([]Node(nil), g.records...)
}

// WeightDefinition finds a definition by id anywhere in the graph
func (g *Graph) WeightDefinition(id string) (WeightDefinition, bool) {
	w, ok := g.weights[id]
	return w, ok
}

// IsRefinementNode reports a node addressed directly as a refinement
func (g *Graph) IsRefinementNode(id string) bool {
	return strings.HasPrefix(id, g.conv.RefinementPrefix)
}

// IsEffectsNode reports a node in the effects category
func (g *Graph) IsEffectsNode(id string) bool {
	return strings.HasPrefix(id, g.conv.EffectsPrefix)
}

// RedirectsToHub reports a weight-only node in the hub category whose
// navigation returns to the options hub.
func (g *Graph) RedirectsToHub(id string) bool {
	n, ok := g.nodes[id]
	if !ok || n.HasAnswers() {
		return false
	}
	return strings.HasPrefix(id, g.conv.HubPrefix) && id != g.conv.HubNode
}

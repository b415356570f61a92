package graph

import "strings"

// Answer is a selectable option on a node
type Answer struct {
	ID         string `json:"id" toml:"id" yaml:"id"`
	Label      string `json:"label" toml:"label" yaml:"label"`
	Next       string `json:"next,omitempty" toml:"next,omitempty" yaml:"next,omitempty"`
	AutoRefine bool   `json:"autoRefine,omitempty" toml:"autoRefine,omitempty" yaml:"autoRefine,omitempty"`
}

// WeightDefinition describes a tunable emphasis slider rendered as (token:value)
type WeightDefinition struct {
	ID       string   `json:"id" toml:"id" yaml:"id"`
	Label    string   `json:"label" toml:"label" yaml:"label"`
	Template string   `json:"template" toml:"template" yaml:"template"`
	Min      float64  `json:"min" toml:"min" yaml:"min"`
	Max      float64  `json:"max" toml:"max" yaml:"max"`
	Step     float64  `json:"step" toml:"step" yaml:"step"`
	Default  float64  `json:"default" toml:"default" yaml:"default"`
	Tags     []string `json:"tags,omitempty" toml:"tags,omitempty" yaml:"tags,omitempty"`
}

// Clamp bounds v to [Min, Max]. Swapped bounds are tolerated.
func (w WeightDefinition) Clamp(v float64) float64 {
	lo, hi := w.Min, w.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == 0 && hi == 0 {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HasTag reports whether the definition carries tag
func (w WeightDefinition) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Refinement is a follow-up sub-question attached to a node
type Refinement struct {
	ID       string             `json:"id" toml:"id" yaml:"id"`
	Question string             `json:"question" toml:"question" yaml:"question"`
	Answers  []Answer           `json:"answers,omitempty" toml:"answers,omitempty" yaml:"answers,omitempty"`
	Weights  []WeightDefinition `json:"weights,omitempty" toml:"weights,omitempty" yaml:"weights,omitempty"`
}

// AsNode returns the refinement in node shape
func (r Refinement) AsNode() Node {
	return Node{
		ID:       r.ID,
		Question: r.Question,
		Answers:  r.Answers,
		Weights:  r.Weights,
	}
}

// Node is a single question unit in the interview graph
type Node struct {
	ID          string             `json:"id" toml:"id" yaml:"id"`
	Question    string             `json:"question" toml:"question" yaml:"question"`
	Description string             `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Answers     []Answer           `json:"answers,omitempty" toml:"answers,omitempty" yaml:"answers,omitempty"`
	Refinements []Refinement       `json:"refinements,omitempty" toml:"refinements,omitempty" yaml:"refinements,omitempty"`
	Weights     []WeightDefinition `json:"weights,omitempty" toml:"weights,omitempty" yaml:"weights,omitempty"`
}

func (n *Node) HasAnswers() bool {
	return n != nil && len(n.Answers) > 0
}

// IsWeightOnly reports a node that offers sliders but no answers
func (n *Node) IsWeightOnly() bool {
	return !n.HasAnswers()
}

func (n *Node) HasRefinements() bool {
	return n != nil && len(n.Refinements) > 0
}

// Answer looks up an answer by id
func (n *Node) Answer(id string) (Answer, bool) {
	if n == nil {
		return Answer{}, false
	}
	for _, a := range n.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// HasNextPointers reports whether any answer leads somewhere
func (n *Node) HasNextPointers() bool {
	if n == nil {
		return false
	}
	for _, a := range n.Answers {
		if a.Next != "" {
			return true
		}
	}
	return false
}

// FirstRefinement returns the first attached refinement, if any
func (n *Node) FirstRefinement() (Refinement, bool) {
	if !n.HasRefinements() {
		return Refinement{}, false
	}
	return n.Refinements[0], true
}

// VisibleWeights returns the node's own weight definitions followed by
// those of every attached refinement, without duplicate ids.
func (n *Node) VisibleWeights() []WeightDefinition {
	if n == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []WeightDefinition
	add := func(defs []WeightDefinition) {
		for _, d := range defs {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	add(n.Weights)
	for _, r := range n.Refinements {
		add(r.Weights)
	}
	return out
}

// Conventions names the identifier conventions the interview relies on
type Conventions struct {
	Root             string `toml:"root"`
	RefinementPrefix string `toml:"refinement_prefix"`
	EffectsPrefix    string `toml:"effects_prefix"`
	HubPrefix        string `toml:"hub_prefix"`
	HubNode          string `toml:"hub_node"`
}

// DefaultConventions matches the shipped question bank
func DefaultConventions() Conventions {
	return Conventions{
		Root:             "root",
		RefinementPrefix: "refine-",
		EffectsPrefix:    "effects-",
		HubPrefix:        "anatomy-",
		HubNode:          "anatomy-options",
	}
}

func (c Conventions) withDefaults() Conventions {
	d := DefaultConventions()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.RefinementPrefix == "" {
		c.RefinementPrefix = d.RefinementPrefix
	}
	if c.EffectsPrefix == "" {
		c.EffectsPrefix = d.EffectsPrefix
	}
	if c.HubPrefix == "" {
		c.HubPrefix = d.HubPrefix
	}
	if c.HubNode == "" {
		c.HubNode = d.HubNode
	}
	return c
}

// Slug turns an effects node id into a readable label,
// e.g. "effects-fog-mist" -> "fog mist".
func (c Conventions) Slug(nodeID string) string {
	s := strings.TrimPrefix(nodeID, c.EffectsPrefix)
	return strings.ReplaceAll(s, "-", " ")
}

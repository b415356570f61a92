package session

import "time"

// State is everything one interview session owns. It is a plain value:
// copy it with Clone before handing it to another goroutine.
type State struct {
	CurrentNodeID        string               `json:"current_node_id"`
	History              []string             `json:"history"`
	Temp                 map[string]Selection `json:"temp"`
	TempIntensities      map[string]float64   `json:"temp_intensities"`
	TempCustomExtensions map[string]string    `json:"temp_custom_extensions"`
	Committed            []Selection          `json:"committed"`
	Weights              WeightSet            `json:"weights"`
	Touched              map[string]bool      `json:"touched"`
	EnabledSliders       map[string]bool      `json:"enabled_sliders"`
	FocusedSliders       map[string]bool      `json:"focused_sliders"`
	CustomElements       []CustomElement      `json:"custom_elements"`
	Version              int64                `json:"version"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// NewState returns a fresh session positioned at root
func NewState(root string) *State {
	return &State{
		CurrentNodeID:        root,
		History:              []string{root},
		Temp:                 make(map[string]Selection),
		TempIntensities:      make(map[string]float64),
		TempCustomExtensions: make(map[string]string),
		Touched:              make(map[string]bool),
		EnabledSliders:       make(map[string]bool),
		FocusedSliders:       make(map[string]bool),
	}
}

// Normalize allocates any nil maps, e.g. after decoding an old snapshot
func (s *State) Normalize() {
	if s.Temp == nil {
		s.Temp = make(map[string]Selection)
	}
	if s.TempIntensities == nil {
		s.TempIntensities = make(map[string]float64)
	}
	if s.TempCustomExtensions == nil {
		s.TempCustomExtensions = make(map[string]string)
	}
	if s.Touched == nil {
		s.Touched = make(map[string]bool)
	}
	if s.EnabledSliders == nil {
		s.EnabledSliders = make(map[string]bool)
	}
	if s.FocusedSliders == nil {
		s.FocusedSliders = make(map[string]bool)
	}
	if len(s.History) == 0 && s.CurrentNodeID != "" {
		s.History = []string{s.CurrentNodeID}
	}
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	out := &State{
		CurrentNodeID:        s.CurrentNodeID,
		History:              append([]string(nil), s.History...),
		Temp:                 make(map[string]Selection, len(s.Temp)),
		TempIntensities:      make(map[string]float64, len(s.TempIntensities)),
		TempCustomExtensions: make(map[string]string, len(s.TempCustomExtensions)),
		Committed:            append([]Selection(nil), s.Committed...),
		Weights:              s.Weights.clone(),
		Touched:              copyFlags(s.Touched),
		EnabledSliders:       copyFlags(s.EnabledSliders),
		FocusedSliders:       copyFlags(s.FocusedSliders),
		CustomElements:       append([]CustomElement(nil), s.CustomElements...),
		Version:              s.Version,
		UpdatedAt:            s.UpdatedAt,
	}
	for k, v := range s.Temp {
		out.Temp[k] = v
	}
	for k, v := range s.TempIntensities {
		out.TempIntensities[k] = v
	}
	for k, v := range s.TempCustomExtensions {
		out.TempCustomExtensions[k] = v
	}
	return out
}

func copyFlags(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// CommittedAnswers returns committed answer selections in commit order
func (s *State) CommittedAnswers() []Selection {
	return s.committedOfKind(KindAnswer)
}

// CommittedRefinements returns committed refinement selections in commit order
func (s *State) CommittedRefinements() []Selection {
	return s.committedOfKind(KindRefinement)
}

func (s *State) committedOfKind(k Kind) []Selection {
	var out []Selection
	for _, sel := range s.Committed {
		if sel.Kind == k {
			out = append(out, sel)
		}
	}
	return out
}

// FindCommitted looks up a committed selection by id
func (s *State) FindCommitted(id string) (Selection, bool) {
	for _, sel := range s.Committed {
		if sel.ID == id {
			return sel, true
		}
	}
	return Selection{}, false
}

// CommittedFor returns the first committed selection of kind k on nodeID
func (s *State) CommittedFor(nodeID string, k Kind) (Selection, bool) {
	for _, sel := range s.Committed {
		if sel.NodeID == nodeID && sel.Kind == k {
			return sel, true
		}
	}
	return Selection{}, false
}

// RemoveCommitted deletes a committed selection and every weight value
// associated with it.
func (s *State) RemoveCommitted(id string) bool {
	idx := -1
	for i, sel := range s.Committed {
		if sel.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Committed = append(s.Committed[:idx], s.Committed[idx+1:]...)
	s.Weights.DeleteWhere(func(v WeightValue) bool {
		return v.AssociatedSelectionID == id
	})
	return true
}

// ClearTemp drops every temporary entry for nodeID
func (s *State) ClearTemp(nodeID string) {
	delete(s.Temp, nodeID)
	delete(s.TempIntensities, nodeID)
	delete(s.TempCustomExtensions, nodeID)
}

// Touch bumps the version after a mutation
func (s *State) Touch(now time.Time) {
	s.Version++
	s.UpdatedAt = now
}

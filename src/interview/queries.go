package interview

import (
	"math"
	"regexp"
	"strings"

	"promptloom/src/composer"
	"promptloom/src/graph"
	"promptloom/src/session"
)

// ActiveWeight is a weight definition shown on the current screen with its
// live slider state.
type ActiveWeight struct {
	graph.WeightDefinition
	Value   float64 `json:"value"`
	Enabled bool    `json:"enabled"`
	Touched bool    `json:"touched"`
	Focused bool    `json:"focused"`
}

// SummaryItem is a committed selection joined with its question
type SummaryItem struct {
	ID          string       `json:"id"`
	NodeID      string       `json:"node_id"`
	Question    string       `json:"question"`
	AnswerLabel string       `json:"answer_label"`
	Kind        session.Kind `json:"kind"`
}

func (m *machine) hasSelectionOn(nodeID string) bool {
	if _, ok := m.s.Temp[nodeID]; ok {
		return true
	}
	for _, sel := range m.s.Committed {
		if sel.NodeID == nodeID {
			return true
		}
	}
	return false
}

// currentRefinement is the current node itself when it is addressed as a
// refinement with no onward pointers, otherwise the first attached
// refinement that has neither a committed nor a temporary selection.
func (m *machine) currentRefinement() (graph.Node, bool) {
	node, ok := m.current()
	if !ok {
		return graph.Node{}, false
	}
	if m.g.IsRefinementNode(node.ID) && !node.HasNextPointers() {
		return *node, true
	}
	for _, r := range node.Refinements {
		if !m.hasSelectionOn(r.ID) {
			return r.AsNode(), true
		}
	}
	return graph.Node{}, false
}

func (m *machine) isFinished() bool {
	node, ok := m.current()
	if !ok {
		return true
	}
	if m.g.IsRefinementNode(node.ID) {
		if !m.hasSelectionOn(node.ID) {
			return false
		}
		return !node.HasNextPointers()
	}
	if !node.HasAnswers() {
		return true
	}
	return !node.HasNextPointers() && !node.HasRefinements()
}

func (m *machine) activeWeights() []ActiveWeight {
	node, ok := m.current()
	if !ok {
		return nil
	}
	defs := append([]graph.WeightDefinition(nil), node.Weights...)
	if ref, ok := m.currentRefinement(); ok && ref.ID != node.ID {
		defs = append(defs, ref.Weights...)
	}

	seen := make(map[string]bool)
	var out []ActiveWeight
	for _, d := range defs {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		value := d.Default
		if draft, ok := m.s.Weights.FindDraft(d.ID); ok {
			value = draft.Value
		}
		out = append(out, ActiveWeight{
			WeightDefinition: d,
			Value:            value,
			Enabled:          m.s.EnabledSliders[d.ID],
			Touched:          m.s.Touched[d.ID],
			Focused:          m.s.FocusedSliders[d.ID],
		})
	}
	return out
}

func (m *machine) selectionSummary() []SummaryItem {
	var out []SummaryItem
	for _, sel := range m.s.Committed {
		node, ok := m.g.Node(sel.NodeID)
		if !ok {
			continue
		}
		out = append(out, SummaryItem{
			ID:          sel.ID,
			NodeID:      sel.NodeID,
			Question:    node.Question,
			AnswerLabel: sel.Label,
			Kind:        sel.Kind,
		})
	}
	return out
}

func (m *machine) preview() composer.Result {
	return m.asm.Assemble(
		m.s.CommittedAnswers(),
		m.s.CommittedRefinements(),
		m.s.Weights.Committed(),
		m.s.CustomElements,
	)
}

func (m *machine) currentIntensity() float64 {
	if v, ok := m.s.TempIntensities[m.s.CurrentNodeID]; ok {
		return v
	}
	if sel, ok := m.committedForCurrent(); ok {
		if w, ok := m.s.Weights.Get(session.IntensityWeightID(sel.ID)); ok {
			return w.Value
		}
	}
	return IntensityDefault
}

func (m *machine) hasTempSelection() bool {
	node, ok := m.current()
	if !ok {
		return false
	}
	if _, ok := m.s.Temp[node.ID]; ok {
		return true
	}
	for _, r := range node.Refinements {
		if _, ok := m.s.Temp[r.ID]; ok {
			return true
		}
	}
	return false
}

func (m *machine) hasCommittedSelection() bool {
	node, ok := m.current()
	if !ok {
		return false
	}
	ids := map[string]bool{node.ID: true}
	for _, r := range node.Refinements {
		ids[r.ID] = true
	}
	for _, sel := range m.s.Committed {
		if ids[sel.NodeID] {
			return true
		}
	}
	return false
}

// IsYesNoQuestion reports a question that only asks whether to continue
func IsYesNoQuestion(n *graph.Node) bool {
	if n == nil {
		return false
	}
	q := strings.ToLower(n.Question)
	if strings.Contains(q, "would you like") || strings.Contains(q, "do you want") || strings.Contains(q, "would you") {
		return true
	}
	if len(n.Answers) != 2 {
		return false
	}
	var yes, no bool
	for _, a := range n.Answers {
		switch strings.ToLower(a.Label) {
		case "yes":
			yes = true
		case "no":
			no = true
		}
	}
	return yes && no
}

var navigationQuestion = []*regexp.Regexp{
	regexp.MustCompile(`^what is the .+\?$`),
	regexp.MustCompile(`what .+ would you like to (adjust|configure|select|choose)\?$`),
	regexp.MustCompile(`which .+ would you like to (adjust|configure|select|choose)\?$`),
}

// IsNavigationQuestion reports a category menu such as
// "What body attribute would you like to adjust?" on a -root or -options node
func IsNavigationQuestion(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if !strings.HasSuffix(n.ID, "-root") && !strings.HasSuffix(n.ID, "-options") {
		return false
	}
	q := strings.ToLower(n.Question)
	for _, re := range navigationQuestion {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

func (m *machine) showIntensitySlider() bool {
	node, ok := m.current()
	if !ok || node.ID == m.g.Root() {
		return false
	}
	if !m.hasTempSelection() && !m.hasCommittedSelection() {
		return false
	}
	return !IsYesNoQuestion(node) && !IsNavigationQuestion(node)
}

func (m *machine) canAdd() bool {
	node, ok := m.current()
	if !ok {
		return false
	}
	if m.hasTempSelection() || len(m.s.FocusedSliders) > 0 {
		return true
	}
	for _, d := range node.Weights {
		if draft, ok := m.s.Weights.FindDraft(d.ID); ok && math.Abs(draft.Value-d.Default) > 0.001 {
			return true
		}
		if m.s.EnabledSliders[d.ID] {
			return true
		}
	}
	return m.showIntensitySlider() && m.s.EnabledSliders[session.IntensityID]
}

func (m *machine) categoryHasCommittedSelections(nodeIDs []string) bool {
	want := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		want[id] = true
	}
	for _, sel := range m.s.Committed {
		if want[sel.NodeID] {
			return true
		}
	}
	return false
}

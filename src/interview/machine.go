package interview

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"promptloom/src/composer"
	"promptloom/src/graph"
	"promptloom/src/session"
)

const (
	// intensity slider range
	IntensityMin     = -0.5
	IntensityMax     = 2.0
	IntensityDefault = 1.0
)

// machine applies transitions to a state it does not own. It is not safe
// for concurrent use; Engine serialises access to it.
type machine struct {
	g     *graph.Graph
	s     *session.State
	asm   *composer.Assembler
	newID func() string
	now   func() time.Time
	log   *zap.Logger
}

func (m *machine) current() (*graph.Node, bool) {
	return m.g.Node(m.s.CurrentNodeID)
}

func (m *machine) changed() {
	m.s.Touch(m.now())
}

func clampIntensity(v float64) float64 {
	if v < IntensityMin {
		return IntensityMin
	}
	if v > IntensityMax {
		return IntensityMax
	}
	return v
}

// existingExtension returns the custom extension already entered for nodeID
func (m *machine) existingExtension(nodeID string) string {
	if sel, ok := m.s.Temp[nodeID]; ok && sel.CustomExtension != "" {
		return sel.CustomExtension
	}
	return m.s.TempCustomExtensions[nodeID]
}

func (m *machine) selectTempAnswer(answerID string) bool {
	node, ok := m.current()
	if !ok {
		return false
	}
	answer, ok := node.Answer(answerID)
	if !ok {
		m.log.Debug("answer not on current node", zap.String("node", node.ID), zap.String("answer", answerID))
		return false
	}

	kind := session.KindAnswer
	if m.g.IsRefinementNode(node.ID) {
		kind = session.KindRefinement
	}
	m.s.Temp[node.ID] = session.Selection{
		ID:              "temp-" + node.ID + "-" + answer.ID,
		NodeID:          node.ID,
		AnswerID:        answer.ID,
		Label:           answer.Label,
		QuestionText:    node.Question,
		CustomExtension: m.existingExtension(node.ID),
		Kind:            kind,
	}
	m.changed()
	return true
}

// refinementTarget finds the node an answer id belongs to when selecting a
// refinement: the current node when it is itself a refinement, otherwise
// the pending attached refinement, any attached refinement, and finally
// the current node.
func (m *machine) refinementTarget(answerID string) (graph.Node, bool) {
	node, ok := m.current()
	if !ok {
		return graph.Node{}, false
	}
	if m.g.IsRefinementNode(node.ID) {
		if _, ok := node.Answer(answerID); ok {
			return *node, true
		}
	}
	if ref, ok := m.currentRefinement(); ok {
		if _, ok := ref.Answer(answerID); ok {
			return ref, true
		}
	}
	for _, r := range node.Refinements {
		rn := r.AsNode()
		if _, ok := rn.Answer(answerID); ok {
			return rn, true
		}
	}
	if _, ok := node.Answer(answerID); ok {
		return *node, true
	}
	return graph.Node{}, false
}

func (m *machine) selectTempRefinement(answerID string) bool {
	target, ok := m.refinementTarget(answerID)
	if !ok {
		m.log.Debug("refinement answer not found", zap.String("node", m.s.CurrentNodeID), zap.String("answer", answerID))
		return false
	}
	answer, _ := target.Answer(answerID)

	m.s.Temp[target.ID] = session.Selection{
		ID:              "temp-" + target.ID + "-" + answer.ID,
		NodeID:          target.ID,
		AnswerID:        answer.ID,
		Label:           answer.Label,
		QuestionText:    target.Question,
		CustomExtension: m.existingExtension(target.ID),
		Kind:            session.KindRefinement,
	}
	if _, ok := m.s.TempIntensities[m.s.CurrentNodeID]; !ok {
		m.s.TempIntensities[m.s.CurrentNodeID] = IntensityDefault
	}
	m.changed()
	return true
}

func (m *machine) setIntensity(nodeID string, v float64) bool {
	m.s.TempIntensities[nodeID] = clampIntensity(v)
	m.changed()
	return true
}

// updateCommittedIntensity moves the intensity slider of the current node
// and carries the value into an already committed intensity weight.
func (m *machine) updateCommittedIntensity(v float64) bool {
	v = clampIntensity(v)
	m.s.TempIntensities[m.s.CurrentNodeID] = v
	if sel, ok := m.committedForCurrent(); ok {
		id := session.IntensityWeightID(sel.ID)
		if w, ok := m.s.Weights.Get(id); ok {
			w.Value = v
			m.s.Weights.Upsert(w)
		}
	}
	m.changed()
	return true
}

// committedForCurrent returns the committed answer on the current node, or
// the committed refinement of the refinement being shown.
func (m *machine) committedForCurrent() (session.Selection, bool) {
	nodeID := m.s.CurrentNodeID
	if sel, ok := m.s.CommittedFor(nodeID, session.KindAnswer); ok {
		return sel, true
	}
	if ref, ok := m.currentRefinement(); ok {
		if sel, ok := m.s.CommittedFor(ref.ID, session.KindRefinement); ok {
			return sel, true
		}
	}
	return m.s.CommittedFor(nodeID, session.KindRefinement)
}

func (m *machine) setCustomExtension(nodeID, text string) bool {
	m.s.TempCustomExtensions[nodeID] = text
	if sel, ok := m.s.Temp[nodeID]; ok {
		sel.CustomExtension = text
		m.s.Temp[nodeID] = sel
	}
	m.changed()
	return true
}

// definition resolves a weight definition visible from the current node,
// falling back to the graph-wide index.
func (m *machine) definition(id string) (graph.WeightDefinition, bool) {
	if node, ok := m.current(); ok {
		for _, d := range node.VisibleWeights() {
			if d.ID == id {
				return d, true
			}
		}
	}
	return m.g.WeightDefinition(id)
}

func (m *machine) setWeight(defID string, v float64, template string, tags []string) bool {
	if defID == session.IntensityID {
		v = clampIntensity(v)
	} else if def, ok := m.definition(defID); ok {
		v = def.Clamp(v)
		if template == "" {
			template = def.Template
		}
		if tags == nil {
			tags = def.Tags
		}
	}

	draft, ok := m.s.Weights.FindDraft(defID)
	if !ok {
		draft = session.WeightValue{ID: "draft-" + defID, DefinitionID: defID}
	}
	draft.Value = v
	draft.Template = template
	draft.Tags = append([]string(nil), tags...)
	m.s.Weights.Upsert(draft)
	m.s.Touched[defID] = true
	m.changed()
	return true
}

func (m *machine) setSliderEnabled(id string, enabled bool) bool {
	m.s.EnabledSliders[id] = enabled
	m.changed()
	return true
}

func (m *machine) setSliderFocused(id string, focused bool) bool {
	if focused {
		m.s.FocusedSliders[id] = true
	} else {
		delete(m.s.FocusedSliders, id)
	}
	m.changed()
	return true
}

// commit promotes the temporary selections of the current node and its
// attached refinements, then records intensity and weight values.
func (m *machine) commit() bool {
	node, ok := m.current()
	if !ok {
		return false
	}
	nodeID := node.ID

	// 1. Selections
	var primary *session.Selection
	promote := func(tempKey string) {
		tmp, ok := m.s.Temp[tempKey]
		if !ok {
			return
		}
		sel := tmp
		sel.ID = m.newID()
		sel.CustomExtension = strings.TrimSpace(m.existingExtension(tempKey))
		m.s.Committed = append(m.s.Committed, sel)
		if primary == nil || (primary.Kind != session.KindAnswer && sel.Kind == session.KindAnswer) {
			cp := sel
			primary = &cp
		}
		m.log.Debug("committed selection",
			zap.String("id", sel.ID), zap.String("node", sel.NodeID), zap.String("kind", string(sel.Kind)))
	}
	promote(nodeID)
	for _, r := range node.Refinements {
		if r.ID != nodeID {
			promote(r.ID)
		}
	}

	// 2. Intensity
	if nodeID != m.g.Root() && m.s.EnabledSliders[session.IntensityID] {
		m.commitIntensity(node, primary)
	}

	// 3. Weights
	m.commitWeights(node, primary)

	// 4. Cleanup
	m.s.ClearTemp(nodeID)
	for _, r := range node.Refinements {
		m.s.ClearTemp(r.ID)
	}
	for _, d := range node.VisibleWeights() {
		delete(m.s.Touched, d.ID)
	}
	m.changed()
	return true
}

func (m *machine) commitIntensity(node *graph.Node, primary *session.Selection) {
	value, ok := m.s.TempIntensities[node.ID]
	if !ok {
		value = IntensityDefault
	}

	switch {
	case primary != nil:
		m.s.Weights.Upsert(session.WeightValue{
			ID:                    session.IntensityWeightID(primary.ID),
			DefinitionID:          session.IntensityID,
			Value:                 value,
			Template:              session.IntensityID,
			AssociatedSelectionID: primary.ID,
			AnswerLabel:           primary.Label,
			QuestionText:          primary.QuestionText,
			Committed:             true,
		})
	case m.g.IsEffectsNode(node.ID):
		label, ok := composer.EffectsSubject(node.Question)
		if !ok {
			label = m.g.Conventions().Slug(node.ID)
		}
		m.s.Weights.Upsert(session.WeightValue{
			ID:           session.IntensityWeightID(node.ID),
			DefinitionID: session.IntensityID,
			Value:        value,
			Template:     session.IntensityID,
			AnswerLabel:  label,
			Committed:    true,
		})
	}
}

// contextualSelection walks history backwards from the node before the
// current one and returns the first committed selection found on a
// visited node, answers before refinements.
func (m *machine) contextualSelection() (session.Selection, bool) {
	for i := len(m.s.History) - 2; i >= 0; i-- {
		prev := m.s.History[i]
		if sel, ok := m.s.CommittedFor(prev, session.KindAnswer); ok {
			return sel, true
		}
		if sel, ok := m.s.CommittedFor(prev, session.KindRefinement); ok {
			return sel, true
		}
	}
	return session.Selection{}, false
}

func (m *machine) commitWeights(node *graph.Node, primary *session.Selection) {
	var owner *session.Selection
	switch {
	case primary != nil:
		owner = primary
	case node.HasAnswers():
		if sel, ok := m.contextualSelection(); ok {
			owner = &sel
		}
	}

	for _, def := range node.VisibleWeights() {
		if !m.s.EnabledSliders[def.ID] {
			continue
		}
		if !m.s.Touched[def.ID] && owner == nil {
			continue
		}

		value, template, tags := def.Default, def.Template, def.Tags
		if draft, ok := m.s.Weights.FindDraft(def.ID); ok {
			value, tags = draft.Value, draft.Tags
		}

		w := session.WeightValue{
			DefinitionID: def.ID,
			Value:        def.Clamp(value),
			Template:     template,
			Tags:         append([]string(nil), tags...),
			Committed:    true,
		}
		if owner != nil {
			w.ID = "weight-" + owner.ID + "-" + def.ID
			w.AssociatedSelectionID = owner.ID
			w.AnswerLabel = owner.Label
		} else {
			w.ID = "weight-standalone-" + node.ID + "-" + def.ID
		}
		m.s.Weights.Upsert(w)
	}
}

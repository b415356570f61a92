package interview

import (
	"go.uber.org/zap"

	"promptloom/src/session"
)

// leave drops transient state of the node being left
func (m *machine) leave(from string, clearFocus bool) {
	m.s.ClearTemp(from)
	if node, ok := m.g.Node(from); ok {
		for _, r := range node.Refinements {
			delete(m.s.Temp, r.ID)
		}
	}
	if clearFocus {
		m.s.FocusedSliders = make(map[string]bool)
	}
	delete(m.s.EnabledSliders, session.IntensityID)
}

func (m *machine) moveTo(to string) {
	from := m.s.CurrentNodeID
	m.s.History = append(m.s.History, to)
	m.s.CurrentNodeID = to
	m.log.Debug("navigated", zap.String("from", from), zap.String("to", to))
}

// hubTarget returns the options hub for weight-only nodes in the hub
// category.
func (m *machine) hubTarget() (string, bool) {
	id := m.s.CurrentNodeID
	if !m.g.RedirectsToHub(id) {
		return "", false
	}
	hub := m.g.Conventions().HubNode
	return hub, m.g.Has(hub)
}

// nextTarget resolves where goToNext would go. The committed answer of the
// current node wins over the temporary one.
func (m *machine) nextTarget() (string, bool) {
	node, ok := m.current()
	if !ok {
		return "", false
	}
	if !node.HasAnswers() {
		return m.hubTarget()
	}

	source, ok := m.s.CommittedFor(node.ID, session.KindAnswer)
	if !ok {
		source, ok = m.s.CommittedFor(node.ID, session.KindRefinement)
	}
	if !ok {
		source, ok = m.s.Temp[node.ID]
	}
	if !ok {
		return "", false
	}
	answer, ok := node.Answer(source.AnswerID)
	if !ok || answer.Next == "" || !m.g.Has(answer.Next) {
		return "", false
	}
	return answer.Next, true
}

func (m *machine) goToNext() bool {
	to, ok := m.nextTarget()
	if !ok {
		m.log.Debug("next not available", zap.String("node", m.s.CurrentNodeID))
		return false
	}
	m.leave(m.s.CurrentNodeID, true)
	m.moveTo(to)
	m.changed()
	return true
}

// skipTarget is the hub, the first answer's next, or the first refinement
func (m *machine) skipTarget() (string, bool) {
	node, ok := m.current()
	if !ok {
		return "", false
	}
	if hub, ok := m.hubTarget(); ok {
		return hub, true
	}
	if node.HasAnswers() {
		if next := node.Answers[0].Next; next != "" && m.g.Has(next) {
			return next, true
		}
	}
	if ref, ok := node.FirstRefinement(); ok && ref.ID != "" && m.g.Has(ref.ID) {
		return ref.ID, true
	}
	return "", false
}

func (m *machine) skipToNext() bool {
	to, ok := m.skipTarget()
	if !ok {
		return false
	}
	m.leave(m.s.CurrentNodeID, false)
	m.moveTo(to)
	m.changed()
	return true
}

func (m *machine) previous() bool {
	if len(m.s.History) <= 1 {
		return false
	}
	from := m.s.CurrentNodeID
	m.s.History = m.s.History[:len(m.s.History)-1]
	m.s.CurrentNodeID = m.s.History[len(m.s.History)-1]
	m.leave(from, true)
	m.log.Debug("navigated back", zap.String("from", from), zap.String("to", m.s.CurrentNodeID))
	m.changed()
	return true
}

func (m *machine) inHistory(id string) bool {
	for _, h := range m.s.History {
		if h == id {
			return true
		}
	}
	return false
}

func (m *machine) jumpTo(id string) bool {
	if !m.g.Has(id) {
		m.log.Debug("jump target missing", zap.String("node", id))
		return false
	}
	m.leave(m.s.CurrentNodeID, true)
	m.s.CurrentNodeID = id
	if !m.inHistory(id) {
		m.s.History = append(m.s.History, id)
	}
	m.changed()
	return true
}

// jumpToCategory moves freely for sidebar browsing; temporary state stays
func (m *machine) jumpToCategory(id string) bool {
	if !m.g.Has(id) {
		return false
	}
	m.s.CurrentNodeID = id
	if !m.inHistory(id) {
		m.s.History = append(m.s.History, id)
	}
	m.changed()
	return true
}

func (m *machine) removeSelection(id string) bool {
	if !m.s.RemoveCommitted(id) {
		return false
	}
	m.log.Debug("removed selection", zap.String("id", id))
	m.changed()
	return true
}

func (m *machine) reset() bool {
	version := m.s.Version
	*m.s = *session.NewState(m.g.Root())
	m.s.Version = version
	m.changed()
	return true
}

func (m *machine) suggest() bool {
	node, ok := m.current()
	if !ok || !node.HasAnswers() {
		return false
	}
	if m.g.IsRefinementNode(node.ID) {
		return m.selectTempRefinement(node.Answers[0].ID)
	}
	return m.selectTempAnswer(node.Answers[0].ID)
}

func (m *machine) addCustomElement(text string) bool {
	m.s.CustomElements = append(m.s.CustomElements, session.CustomElement{Text: text, Side: session.SidePrompt})
	m.changed()
	return true
}

func (m *machine) validElement(i int) bool {
	return i >= 0 && i < len(m.s.CustomElements)
}

func (m *machine) removeCustomElement(i int) bool {
	if !m.validElement(i) {
		return false
	}
	m.s.CustomElements = append(m.s.CustomElements[:i], m.s.CustomElements[i+1:]...)
	m.changed()
	return true
}

func (m *machine) toggleCustomElement(i int) bool {
	if !m.validElement(i) {
		return false
	}
	m.s.CustomElements[i].Enabled = !m.s.CustomElements[i].Enabled
	m.changed()
	return true
}

func (m *machine) setCustomElementSide(i int, side session.Side) bool {
	if !m.validElement(i) || (side != session.SidePrompt && side != session.SideNegative) {
		return false
	}
	m.s.CustomElements[i].Side = side
	m.changed()
	return true
}

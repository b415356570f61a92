package interview

import (
	"fmt"

	perrors "promptloom/src/errors"
	"promptloom/src/graph"
	"promptloom/src/session"
)

// EventType names a transition
type EventType string

const (
	EventSelectAnswer        EventType = "select_answer"
	EventSelectRefinement    EventType = "select_refinement"
	EventSetIntensity        EventType = "set_intensity"
	EventUpdateIntensity     EventType = "update_intensity"
	EventSetCustomExtension  EventType = "set_custom_extension"
	EventSetWeight           EventType = "set_weight"
	EventSetSliderEnabled    EventType = "set_slider_enabled"
	EventSetSliderFocused    EventType = "set_slider_focused"
	EventCommit              EventType = "commit"
	EventSkip                EventType = "skip"
	EventNext                EventType = "next"
	EventPrevious            EventType = "previous"
	EventJump                EventType = "jump"
	EventJumpCategory        EventType = "jump_category"
	EventRemoveSelection     EventType = "remove_selection"
	EventReset               EventType = "reset"
	EventSuggest             EventType = "suggest"
	EventAddCustomElement    EventType = "add_custom_element"
	EventRemoveCustomElement EventType = "remove_custom_element"
	EventToggleCustomElement EventType = "toggle_custom_element"
	EventSetCustomSide       EventType = "set_custom_side"
)

// Event is a transition as data. Only the fields its type reads are set.
type Event struct {
	Type        EventType    `json:"type"`
	NodeID      string       `json:"node_id,omitempty"`
	AnswerID    string       `json:"answer_id,omitempty"`
	WeightID    string       `json:"weight_id,omitempty"`
	SelectionID string       `json:"selection_id,omitempty"`
	Value       float64      `json:"value,omitempty"`
	Text        string       `json:"text,omitempty"`
	Template    string       `json:"template,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Enabled     bool         `json:"enabled,omitempty"`
	Index       int          `json:"index,omitempty"`
	Side        session.Side `json:"side,omitempty"`
}

// apply dispatches ev. An unknown type is an error; a known event that
// references something missing reports false.
func (m *machine) apply(ev Event) (bool, error) {
	nodeID := ev.NodeID
	if nodeID == "" {
		nodeID = m.s.CurrentNodeID
	}

	switch ev.Type {
	case EventSelectAnswer:
		return m.selectTempAnswer(ev.AnswerID), nil
	case EventSelectRefinement:
		return m.selectTempRefinement(ev.AnswerID), nil
	case EventSetIntensity:
		return m.setIntensity(nodeID, ev.Value), nil
	case EventUpdateIntensity:
		return m.updateCommittedIntensity(ev.Value), nil
	case EventSetCustomExtension:
		return m.setCustomExtension(nodeID, ev.Text), nil
	case EventSetWeight:
		return m.setWeight(ev.WeightID, ev.Value, ev.Template, ev.Tags), nil
	case EventSetSliderEnabled:
		return m.setSliderEnabled(ev.WeightID, ev.Enabled), nil
	case EventSetSliderFocused:
		return m.setSliderFocused(ev.WeightID, ev.Enabled), nil
	case EventCommit:
		return m.commit(), nil
	case EventSkip:
		return m.skipToNext(), nil
	case EventNext:
		return m.goToNext(), nil
	case EventPrevious:
		return m.previous(), nil
	case EventJump:
		return m.jumpTo(ev.NodeID), nil
	case EventJumpCategory:
		return m.jumpToCategory(ev.NodeID), nil
	case EventRemoveSelection:
		return m.removeSelection(ev.SelectionID), nil
	case EventReset:
		return m.reset(), nil
	case EventSuggest:
		return m.suggest(), nil
	case EventAddCustomElement:
		return m.addCustomElement(ev.Text), nil
	case EventRemoveCustomElement:
		return m.removeCustomElement(ev.Index), nil
	case EventToggleCustomElement:
		return m.toggleCustomElement(ev.Index), nil
	case EventSetCustomSide:
		return m.setCustomElementSide(ev.Index, ev.Side), nil
	}
	return false, fmt.Errorf("%w: %q", perrors.ErrInvalidEvent, ev.Type)
}

// Apply runs ev against the engine's state
func (e *Engine) Apply(ev Event) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.apply(ev)
}

// Transition is the pure form of Apply: it returns a new state and leaves
// s untouched.
func Transition(g *graph.Graph, s *session.State, ev Event, opts ...Option) (*session.State, bool, error) {
	m := newMachine(g, append(opts, WithState(s))...)
	ok, err := m.apply(ev)
	if err != nil {
		return s, false, err
	}
	return m.s, ok, nil
}

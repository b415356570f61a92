// Package interview drives one interview session through the question
// graph. An Engine is the single writer of its session state: every
// operation takes the engine lock, so callers on different goroutines see
// mutations in the order they were applied.
//
// Invalid references (unknown node, answer or custom element index) are
// no-ops reported through a false return value; nothing panics.
package interview

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptloom/src/composer"
	"promptloom/src/graph"
	"promptloom/src/logging"
	"promptloom/src/session"
)

// Engine owns one session's state over a shared read-only graph
type Engine struct {
	mu sync.Mutex
	m  machine
}

// Option configures an Engine
type Option func(*machine)

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(m *machine) { m.log = logging.OrNop(l) }
}

// WithIDGenerator replaces the committed selection id generator
func WithIDGenerator(gen func() string) Option {
	return func(m *machine) { m.newID = gen }
}

// WithAssembler replaces the prompt assembler
func WithAssembler(a *composer.Assembler) Option {
	return func(m *machine) { m.asm = a }
}

// WithClock replaces the clock used to stamp state updates
func WithClock(now func() time.Time) Option {
	return func(m *machine) { m.now = now }
}

// WithState starts the engine from a previously saved state
func WithState(s *session.State) Option {
	return func(m *machine) {
		cp := s.Clone()
		cp.Normalize()
		m.s = cp
	}
}

func newSelectionID() string {
	return "sel-" + uuid.NewString()
}

func newMachine(g *graph.Graph, opts ...Option) machine {
	m := machine{
		g:     g,
		newID: newSelectionID,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.asm == nil {
		m.asm = composer.New(composer.WithRootNode(g.Root()))
	}
	if m.s == nil {
		m.s = session.NewState(g.Root())
	}
	return m
}

// New creates an engine positioned at the graph root
func New(g *graph.Graph, opts ...Option) *Engine {
	return &Engine{m: newMachine(g, opts...)}
}

func (e *Engine) do(f func(m *machine) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return f(&e.m)
}

func (e *Engine) Graph() *graph.Graph {
	return e.m.g
}

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() *session.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.s.Clone()
}

// Restore replaces the session state with a copy of s
func (e *Engine) Restore(s *session.State) {
	cp := s.Clone()
	cp.Normalize()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m.s = cp
}

// SelectTempAnswer records answerID of the current node as its temporary
// selection, replacing any earlier one.
func (e *Engine) SelectTempAnswer(answerID string) bool {
	return e.do(func(m *machine) bool { return m.selectTempAnswer(answerID) })
}

// SelectTempRefinement records a temporary refinement selection and seeds
// the node's intensity with the default.
func (e *Engine) SelectTempRefinement(answerID string) bool {
	return e.do(func(m *machine) bool { return m.selectTempRefinement(answerID) })
}

func (e *Engine) SetIntensity(nodeID string, v float64) bool {
	return e.do(func(m *machine) bool { return m.setIntensity(nodeID, v) })
}

// UpdateCommittedIntensity sets the current node's intensity and updates
// the committed intensity value of its selection, if one exists.
func (e *Engine) UpdateCommittedIntensity(v float64) bool {
	return e.do(func(m *machine) bool { return m.updateCommittedIntensity(v) })
}

// SetCustomExtension stores free text appended to the node's selection.
// An empty string clears it.
func (e *Engine) SetCustomExtension(nodeID, text string) bool {
	return e.do(func(m *machine) bool { return m.setCustomExtension(nodeID, text) })
}

// SetWeight updates the draft value of a weight definition, clamped to its
// range, and marks the definition as touched.
func (e *Engine) SetWeight(defID string, v float64, template string, tags []string) bool {
	return e.do(func(m *machine) bool { return m.setWeight(defID, v, template, tags) })
}

func (e *Engine) SetSliderEnabled(weightID string, enabled bool) bool {
	return e.do(func(m *machine) bool { return m.setSliderEnabled(weightID, enabled) })
}

func (e *Engine) SetSliderFocused(weightID string, focused bool) bool {
	return e.do(func(m *machine) bool { return m.setSliderFocused(weightID, focused) })
}

// Commit promotes the current node's temporary selections and records its
// enabled weights.
func (e *Engine) Commit() bool {
	return e.do(func(m *machine) bool { return m.commit() })
}

func (e *Engine) SkipToNext() bool {
	return e.do(func(m *machine) bool { return m.skipToNext() })
}

func (e *Engine) GoToNext() bool {
	return e.do(func(m *machine) bool { return m.goToNext() })
}

func (e *Engine) Previous() bool {
	return e.do(func(m *machine) bool { return m.previous() })
}

func (e *Engine) JumpTo(nodeID string) bool {
	return e.do(func(m *machine) bool { return m.jumpTo(nodeID) })
}

func (e *Engine) JumpToCategory(nodeID string) bool {
	return e.do(func(m *machine) bool { return m.jumpToCategory(nodeID) })
}

// RemoveSelection deletes a committed selection and its weights
func (e *Engine) RemoveSelection(selectionID string) bool {
	return e.do(func(m *machine) bool { return m.removeSelection(selectionID) })
}

func (e *Engine) Reset() bool {
	return e.do(func(m *machine) bool { return m.reset() })
}

// Suggest temporarily selects the first answer of the current node
func (e *Engine) Suggest() bool {
	return e.do(func(m *machine) bool { return m.suggest() })
}

// AddCustomElement appends a disabled prompt-side element
func (e *Engine) AddCustomElement(text string) bool {
	return e.do(func(m *machine) bool { return m.addCustomElement(text) })
}

func (e *Engine) RemoveCustomElement(i int) bool {
	return e.do(func(m *machine) bool { return m.removeCustomElement(i) })
}

func (e *Engine) ToggleCustomElement(i int) bool {
	return e.do(func(m *machine) bool { return m.toggleCustomElement(i) })
}

func (e *Engine) SetCustomElementSide(i int, side session.Side) bool {
	return e.do(func(m *machine) bool { return m.setCustomElementSide(i, side) })
}

// Queries

func (e *Engine) CurrentNodeID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.s.CurrentNodeID
}

// CurrentNode returns the node being shown
func (e *Engine) CurrentNode() (*graph.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.current()
}

func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.m.s.History...)
}

func (e *Engine) StepCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.m.s.History)
}

func (e *Engine) IsFinished() bool {
	return e.do(func(m *machine) bool { return m.isFinished() })
}

// CurrentRefinement returns the refinement awaiting an answer, if any
func (e *Engine) CurrentRefinement() (graph.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.currentRefinement()
}

func (e *Engine) ActiveWeights() []ActiveWeight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.activeWeights()
}

func (e *Engine) SelectionSummary() []SummaryItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.selectionSummary()
}

// PreviewPrompt assembles the prompt pair from committed state
func (e *Engine) PreviewPrompt() composer.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.preview()
}

func (e *Engine) CurrentIntensity() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.m.currentIntensity()
}

func (e *Engine) CanGoToNext() bool {
	return e.do(func(m *machine) bool {
		_, ok := m.nextTarget()
		return ok
	})
}

func (e *Engine) CanAdd() bool {
	return e.do(func(m *machine) bool { return m.canAdd() })
}

func (e *Engine) ShowIntensitySlider() bool {
	return e.do(func(m *machine) bool { return m.showIntensitySlider() })
}

func (e *Engine) HasTempSelection() bool {
	return e.do(func(m *machine) bool { return m.hasTempSelection() })
}

func (e *Engine) HasCommittedSelection() bool {
	return e.do(func(m *machine) bool { return m.hasCommittedSelection() })
}

// CategoryHasCommittedSelections reports whether any node in nodeIDs has a
// committed selection.
func (e *Engine) CategoryHasCommittedSelections(nodeIDs []string) bool {
	return e.do(func(m *machine) bool { return m.categoryHasCommittedSelections(nodeIDs) })
}

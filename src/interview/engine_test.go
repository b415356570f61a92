package interview

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "promptloom/src/errors"
	"promptloom/src/graph"
	"promptloom/src/session"
)

const baseNegative = "deformed, distorted, extra limbs, low detail, low quality, bad anatomy"

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("sel-%d", n)
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	g, err := graph.LoadDefault()
	require.NoError(t, err)
	return New(g, WithIDGenerator(sequentialIDs()))
}

func TestRootCharacterPreview(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.Commit())

	got := e.PreviewPrompt()
	assert.Equal(t, "character", got.Prompt)
	assert.Equal(t, baseNegative, got.NegativePrompt)
}

func TestFullLips(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("face-lips"))
	require.True(t, e.SelectTempAnswer("full"))
	require.True(t, e.Commit())

	assert.Contains(t, e.PreviewPrompt().Prompt, "full lips")
}

func TestCurlIntensityWeight(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SelectTempAnswer("curly"))
	require.True(t, e.SetSliderEnabled("curl_intensity", true))
	require.True(t, e.SetWeight("curl_intensity", 1.18, "", nil))
	require.True(t, e.Commit())

	assert.Equal(t, "curly hair texture, (curly hair curl intensity:1.18)", e.PreviewPrompt().Prompt)

	w, ok := e.Snapshot().Weights.Get("weight-sel-1-curl_intensity")
	require.True(t, ok)
	assert.Equal(t, "sel-1", w.AssociatedSelectionID)
	assert.Equal(t, "Curly", w.AnswerLabel)
	assert.True(t, w.Committed)
}

func TestForbiddenTemplateNeverEmittedBare(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("anatomy-chest"))
	require.True(t, e.SetSliderEnabled("chest_definition", true))
	require.True(t, e.SetWeight("chest_definition", 1.1, "", nil))
	require.True(t, e.Commit())

	prompt := e.PreviewPrompt().Prompt
	assert.NotContains(t, prompt, "(subtle:")
	assert.Equal(t, "(body trait subtle:1.10)", prompt)

	_, ok := e.Snapshot().Weights.Get("weight-standalone-anatomy-chest-chest_definition")
	assert.True(t, ok)
}

func TestDuplicateTokensCollapse(t *testing.T) {
	g, err := graph.New([]graph.Node{
		{
			ID:       "root",
			Question: "What is the scene?",
			Weights: []graph.WeightDefinition{
				{ID: "fog_a", Template: "fog density", Min: 0, Max: 2, Default: 1},
				{ID: "fog_b", Template: "Fog Density", Min: 0, Max: 2, Default: 1},
			},
		},
	})
	require.NoError(t, err)
	e := New(g)

	e.SetSliderEnabled("fog_a", true)
	e.SetSliderEnabled("fog_b", true)
	e.SetWeight("fog_a", 1.2, "", nil)
	e.SetWeight("fog_b", 0.4, "", nil)
	require.True(t, e.Commit())

	assert.Equal(t, "(fog density:1.20)", e.PreviewPrompt().Prompt)
}

func TestCommitThenRemoveRestoresWeights(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("face-eyes"))
	require.True(t, e.SetWeight("eye_glow", 1.4, "", nil))
	before := e.Snapshot().Weights.Values()

	require.True(t, e.SelectTempAnswer("glowing"))
	require.True(t, e.SetSliderEnabled("eye_glow", true))
	require.True(t, e.SetSliderEnabled(session.IntensityID, true))
	require.True(t, e.SetIntensity("face-eyes", 1.3))
	require.True(t, e.Commit())

	snap := e.Snapshot()
	require.Len(t, snap.Committed, 1)
	assert.Len(t, snap.Weights.Committed(), 2)
	assert.Contains(t, e.PreviewPrompt().Prompt, "(glowing eyes:1.30)")

	require.True(t, e.RemoveSelection(snap.Committed[0].ID))
	assert.Equal(t, before, e.Snapshot().Weights.Values())
	assert.Empty(t, e.PreviewPrompt().Prompt)
	assert.False(t, e.RemoveSelection(snap.Committed[0].ID))
}

func TestGoToNextDisabledLeavesPosition(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.CanGoToNext())
	assert.False(t, e.GoToNext())
	assert.Equal(t, "root", e.CurrentNodeID())
	assert.Equal(t, []string{"root"}, e.History())

	// answer without a next pointer
	require.True(t, e.JumpTo("face-eyes"))
	require.True(t, e.SelectTempAnswer("round"))
	history := e.History()
	assert.False(t, e.CanGoToNext())
	assert.False(t, e.GoToNext())
	assert.Equal(t, "face-eyes", e.CurrentNodeID())
	assert.Equal(t, history, e.History())
}

func TestNavigation(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.CanGoToNext())
	require.True(t, e.GoToNext())
	assert.Equal(t, "character-identity-root", e.CurrentNodeID())
	assert.Equal(t, []string{"root", "character-identity-root"}, e.History())
	assert.Equal(t, 2, e.StepCount())
	assert.False(t, e.HasTempSelection())
	assert.Empty(t, e.Snapshot().Temp, "temp state of the left node is dropped")

	require.True(t, e.Previous())
	assert.Equal(t, "root", e.CurrentNodeID())
	assert.False(t, e.Previous())
}

func TestCommittedAnswerWinsForNavigation(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("landscape"))
	require.True(t, e.Commit())
	require.True(t, e.SelectTempAnswer("object"))
	require.True(t, e.GoToNext())
	assert.Equal(t, "env-root", e.CurrentNodeID())
}

func TestRevisitedNodesRepeatInHistory(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-body-root"))
	require.True(t, e.SelectTempAnswer("height"))
	require.True(t, e.GoToNext())
	require.True(t, e.SelectTempAnswer("short"))
	require.True(t, e.GoToNext())

	assert.Equal(t, []string{"root", "character-body-root", "character-height", "character-body-root"}, e.History())
}

func TestSkipToNext(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-body-root"))
	require.True(t, e.SelectTempAnswer("build"))
	require.True(t, e.SetSliderEnabled(session.IntensityID, true))
	require.True(t, e.SkipToNext())
	assert.Equal(t, "character-height", e.CurrentNodeID(), "skip follows the first answer")
	assert.Empty(t, e.Snapshot().Committed)
	assert.False(t, e.Snapshot().EnabledSliders[session.IntensityID])

	require.True(t, e.JumpTo("face-lips"))
	require.True(t, e.JumpTo("character-build"))
	assert.False(t, e.SkipToNext(), "no next pointers and no refinements")
}

func TestHubRedirect(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("anatomy-chest"))
	assert.True(t, e.CanGoToNext())
	require.True(t, e.GoToNext())
	assert.Equal(t, "anatomy-options", e.CurrentNodeID())

	require.True(t, e.JumpTo("anatomy-shoulders"))
	require.True(t, e.SkipToNext())
	assert.Equal(t, "anatomy-options", e.CurrentNodeID())
}

func TestEffectsIntensityStandalone(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("effects-fog-mist"))
	require.True(t, e.SetSliderEnabled(session.IntensityID, true))
	require.True(t, e.SetIntensity("effects-fog-mist", 1.25))
	require.True(t, e.Commit())

	assert.Equal(t, "(fog:1.25)", e.PreviewPrompt().Prompt)
	w, ok := e.Snapshot().Weights.Get("weight-effects-fog-mist-intensity")
	require.True(t, ok)
	assert.True(t, w.Standalone())
}

func TestAnswerIntensity(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("effects-rim-lighting"))
	require.True(t, e.SelectTempAnswer("subtle"))
	require.True(t, e.SetSliderEnabled(session.IntensityID, true))
	require.True(t, e.SetIntensity("effects-rim-lighting", 0.8))
	require.True(t, e.Commit())

	assert.Equal(t, "subtle lighting effect, (rim lighting:0.80)", e.PreviewPrompt().Prompt)

	// moving the slider after commit updates the committed value
	require.True(t, e.UpdateCommittedIntensity(1.4))
	assert.Equal(t, "subtle lighting effect, (rim lighting:1.40)", e.PreviewPrompt().Prompt)
	assert.InDelta(t, 1.4, e.CurrentIntensity(), 1e-9)
}

func TestRootNeverGetsIntensity(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.SetSliderEnabled(session.IntensityID, true))
	require.True(t, e.Commit())

	assert.Zero(t, e.Snapshot().Weights.Len())
	assert.False(t, e.ShowIntensitySlider())
}

func TestContextualAnswerFromHistory(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.Commit())
	require.True(t, e.GoToNext())

	require.True(t, e.SetSliderEnabled("otherworldliness", true))
	require.True(t, e.Commit())

	w, ok := e.Snapshot().Weights.Get("weight-sel-1-otherworldliness")
	require.True(t, ok)
	assert.Equal(t, "A character", w.AnswerLabel)
	assert.InDelta(t, 1.0, w.Value, 1e-9)
}

func TestWeightOnlyNodesStayStandalone(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.Commit())
	require.True(t, e.JumpTo("anatomy-chest"))

	// enabled but untouched and without an owner: nothing to commit
	require.True(t, e.SetSliderEnabled("breast_size_emphasis", true))
	require.True(t, e.Commit())
	assert.Empty(t, e.Snapshot().Weights.Committed())

	require.True(t, e.SetWeight("breast_size_emphasis", 1.3, "", nil))
	require.True(t, e.Commit())
	committed := e.Snapshot().Weights.Committed()
	require.Len(t, committed, 1)
	assert.True(t, committed[0].Standalone())
	assert.Empty(t, committed[0].AnswerLabel)
	assert.Equal(t, "character, (body trait breast size:1.30)", e.PreviewPrompt().Prompt)
}

func TestDisabledSlidersAreSkipped(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SelectTempAnswer("curly"))
	require.True(t, e.SetWeight("curl_intensity", 1.2, "", nil))
	require.True(t, e.Commit())

	assert.Empty(t, e.Snapshot().Weights.Committed())
}

func TestValuesAreClamped(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SetWeight("curl_intensity", 5, "", nil))
	require.True(t, e.SetIntensity("character-hair-root", 9))

	snap := e.Snapshot()
	draft, ok := snap.Weights.FindDraft("curl_intensity")
	require.True(t, ok)
	assert.InDelta(t, 1.5, draft.Value, 1e-9)
	assert.Equal(t, []string{"hair"}, draft.Tags)
	assert.InDelta(t, IntensityMax, snap.TempIntensities["character-hair-root"], 1e-9)

	// definitions elsewhere in the graph still clamp
	require.True(t, e.SetWeight("fog_density", -3, "fog density", nil))
	draft, _ = e.Snapshot().Weights.FindDraft("fog_density")
	assert.InDelta(t, 0, draft.Value, 1e-9)
}

func TestOneTempSelectionPerNode(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SelectTempAnswer("curly"))
	require.True(t, e.SelectTempAnswer("wavy"))
	assert.False(t, e.SelectTempAnswer("missing"))

	temp := e.Snapshot().Temp
	require.Len(t, temp, 1)
	assert.Equal(t, "wavy", temp["character-hair-root"].AnswerID)
}

func TestCustomExtension(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SetCustomExtension("character-hair-root", " with bangs "))
	require.True(t, e.SelectTempAnswer("curly"))
	assert.Equal(t, " with bangs ", e.Snapshot().Temp["character-hair-root"].CustomExtension)

	require.True(t, e.SelectTempAnswer("wavy"))
	assert.Equal(t, " with bangs ", e.Snapshot().Temp["character-hair-root"].CustomExtension, "reselection keeps the extension")

	require.True(t, e.Commit())
	snap := e.Snapshot()
	require.Len(t, snap.Committed, 1)
	assert.Equal(t, "with bangs", snap.Committed[0].CustomExtension)
	assert.Equal(t, "wavy hair texture with bangs", e.PreviewPrompt().Prompt)
}

func TestCustomExtensionCanBeCleared(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("character-hair-root"))
	require.True(t, e.SelectTempAnswer("curly"))
	require.True(t, e.SetCustomExtension("character-hair-root", "tight"))
	require.True(t, e.SetCustomExtension("character-hair-root", ""))
	require.True(t, e.Commit())

	assert.Equal(t, "curly hair texture", e.PreviewPrompt().Prompt)
}

func TestJumpToVersusJumpToCategory(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.JumpToCategory("face-lips"))
	assert.Contains(t, e.Snapshot().Temp, "root", "category jumps keep temp state")

	require.True(t, e.JumpToCategory("root"))
	assert.Equal(t, []string{"root", "face-lips"}, e.History())

	require.True(t, e.JumpTo("face-eyes"))
	assert.NotContains(t, e.Snapshot().Temp, "root", "jumps drop temp state of the left node")

	assert.False(t, e.JumpTo("nowhere"))
	assert.False(t, e.JumpToCategory("nowhere"))
	assert.Equal(t, "face-eyes", e.CurrentNodeID())
}

func TestAttachedRefinement(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("face-lips"))
	ref, ok := e.CurrentRefinement()
	require.True(t, ok)
	assert.Equal(t, "refine-lip-color", ref.ID)

	weights := e.ActiveWeights()
	require.Len(t, weights, 1)
	assert.Equal(t, "lip_color_saturation", weights[0].ID)
	assert.InDelta(t, 1.0, weights[0].Value, 1e-9)

	require.True(t, e.SelectTempAnswer("full"))
	require.True(t, e.SelectTempRefinement("red"))
	_, ok = e.CurrentRefinement()
	assert.False(t, ok, "a temporary refinement answers the refinement")
	assert.InDelta(t, IntensityDefault, e.Snapshot().TempIntensities["face-lips"], 1e-9)

	require.True(t, e.Commit())
	assert.Equal(t, "full lips, red lip color", e.PreviewPrompt().Prompt)
	assert.Empty(t, e.Snapshot().Temp)
	assert.True(t, e.HasCommittedSelection())

	summary := e.SelectionSummary()
	require.Len(t, summary, 2)
	assert.Equal(t, "What are the lips like?", summary[0].Question)
	assert.Equal(t, "What is the lip color?", summary[1].Question)
	assert.Equal(t, session.KindRefinement, summary[1].Kind)
}

func TestRefinementNodeVisitedDirectly(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.JumpTo("refine-hair-curl"))
	ref, ok := e.CurrentRefinement()
	require.True(t, ok)
	assert.Equal(t, "refine-hair-curl", ref.ID)
	assert.False(t, e.IsFinished())

	require.True(t, e.Suggest())
	assert.Equal(t, session.KindRefinement, e.Snapshot().Temp["refine-hair-curl"].Kind)
	assert.True(t, e.IsFinished())

	require.True(t, e.Commit())
	assert.Equal(t, "loose curls hair style", e.PreviewPrompt().Prompt)
}

func TestIsFinished(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.IsFinished())
	require.True(t, e.JumpTo("anatomy-chest"))
	assert.True(t, e.IsFinished(), "weight-only node")
	require.True(t, e.JumpTo("face-lips"))
	assert.False(t, e.IsFinished(), "pending refinements")
	require.True(t, e.JumpTo("face-eyes"))
	assert.True(t, e.IsFinished(), "no onward pointers")
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.Commit())
	require.True(t, e.AddCustomElement("film grain"))
	require.True(t, e.JumpTo("face-eyes"))
	require.True(t, e.SetWeight("eye_glow", 1.2, "", nil))

	require.True(t, e.Reset())
	snap := e.Snapshot()
	assert.Equal(t, "root", snap.CurrentNodeID)
	assert.Equal(t, []string{"root"}, snap.History)
	assert.Empty(t, snap.Committed)
	assert.Zero(t, snap.Weights.Len())
	assert.Empty(t, snap.CustomElements)
	assert.Empty(t, snap.Touched)
	assert.Empty(t, e.PreviewPrompt().Prompt)
}

func TestCustomElements(t *testing.T) {
	e := newTestEngine(t)

	require.True(t, e.AddCustomElement("film grain"))
	require.True(t, e.AddCustomElement("watermark"))
	assert.Empty(t, e.PreviewPrompt().Prompt, "new elements start disabled")

	require.True(t, e.ToggleCustomElement(0))
	require.True(t, e.ToggleCustomElement(1))
	require.True(t, e.SetCustomElementSide(1, session.SideNegative))
	assert.False(t, e.SetCustomElementSide(1, "sideways"))
	assert.False(t, e.ToggleCustomElement(5))

	got := e.PreviewPrompt()
	assert.Equal(t, "film grain", got.Prompt)
	assert.Equal(t, baseNegative+", watermark", got.NegativePrompt)

	require.True(t, e.RemoveCustomElement(0))
	assert.False(t, e.RemoveCustomElement(-1))
	assert.Empty(t, e.PreviewPrompt().Prompt)
}

func TestUIPredicates(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.CanAdd())
	require.True(t, e.JumpTo("character-body-root"))
	require.True(t, e.SelectTempAnswer("build"))
	assert.False(t, e.ShowIntensitySlider(), "navigation menu")
	assert.True(t, e.CanAdd())

	require.True(t, e.JumpTo("face-eyes"))
	assert.False(t, e.ShowIntensitySlider(), "nothing selected")
	require.True(t, e.SetSliderFocused("eye_glow", true))
	assert.True(t, e.CanAdd())
	require.True(t, e.SetSliderFocused("eye_glow", false))
	assert.False(t, e.CanAdd())
	require.True(t, e.SetWeight("eye_glow", 1.5, "", nil))
	assert.True(t, e.CanAdd(), "modified from default")

	require.True(t, e.SelectTempAnswer("almond"))
	assert.True(t, e.ShowIntensitySlider())
	assert.True(t, e.HasTempSelection())
}

func TestQuestionPredicates(t *testing.T) {
	yesNo := &graph.Node{ID: "x", Question: "Pick", Answers: []graph.Answer{{Label: "Yes"}, {Label: "No"}}}
	assert.True(t, IsYesNoQuestion(yesNo))
	assert.True(t, IsYesNoQuestion(&graph.Node{Question: "Would you like a hat?"}))
	assert.False(t, IsYesNoQuestion(&graph.Node{Question: "What are the lips like?"}))
	assert.False(t, IsYesNoQuestion(nil))

	assert.True(t, IsNavigationQuestion(&graph.Node{ID: "character-body-root", Question: "What body attribute would you like to adjust?"}))
	assert.True(t, IsNavigationQuestion(&graph.Node{ID: "anatomy-options", Question: "Which anatomy attribute would you like to configure?"}))
	assert.True(t, IsNavigationQuestion(&graph.Node{ID: "x-root", Question: "What is the character's body type?"}))
	assert.False(t, IsNavigationQuestion(&graph.Node{ID: "character-build", Question: "What is the character's build?"}))
}

func TestCategoryHasCommittedSelections(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.CategoryHasCommittedSelections([]string{"face-lips", "refine-lip-color"}))
	require.True(t, e.JumpTo("face-lips"))
	require.True(t, e.SelectTempRefinement("red"))
	require.True(t, e.Commit())
	assert.True(t, e.CategoryHasCommittedSelections([]string{"face-lips", "refine-lip-color"}))
	assert.False(t, e.CategoryHasCommittedSelections([]string{"face-eyes"}))
}

func TestApplyEvents(t *testing.T) {
	e := newTestEngine(t)

	events := []Event{
		{Type: EventJump, NodeID: "character-hair-root"},
		{Type: EventSelectAnswer, AnswerID: "curly"},
		{Type: EventSetSliderEnabled, WeightID: "curl_intensity", Enabled: true},
		{Type: EventSetWeight, WeightID: "curl_intensity", Value: 1.18},
		{Type: EventCommit},
	}
	for _, ev := range events {
		ok, err := e.Apply(ev)
		require.NoError(t, err)
		require.True(t, ok, "event %s", ev.Type)
	}
	assert.Equal(t, "curly hair texture, (curly hair curl intensity:1.18)", e.PreviewPrompt().Prompt)

	ok, err := e.Apply(Event{Type: EventSelectAnswer, AnswerID: "missing"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.Apply(Event{Type: "dance"})
	assert.True(t, errors.Is(err, perrors.ErrInvalidEvent))
}

func TestTransitionIsPure(t *testing.T) {
	g, err := graph.LoadDefault()
	require.NoError(t, err)

	s := session.NewState(g.Root())
	next, ok, err := Transition(g, s, Event{Type: EventSelectAnswer, AnswerID: "character"})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, s.Temp)
	assert.Zero(t, s.Version)
	assert.Equal(t, "character", next.Temp["root"].AnswerID)

	next, ok, err = Transition(g, next, Event{Type: EventCommit}, WithIDGenerator(func() string { return "sel-x" }))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sel-x", next.Committed[0].ID)
}

func TestRestoreFromSnapshot(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SelectTempAnswer("character"))
	require.True(t, e.Commit())
	snap := e.Snapshot()

	other := New(e.Graph(), WithState(snap))
	assert.Equal(t, e.PreviewPrompt(), other.PreviewPrompt())

	other.Reset()
	e.Restore(other.Snapshot())
	assert.Empty(t, e.PreviewPrompt().Prompt)
}

func TestConcurrentMutationsAreSerialised(t *testing.T) {
	e := newTestEngine(t)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e.SetWeight("curl_intensity", 0.5+float64(i)/100, "", nil)
			_ = e.PreviewPrompt()
		}(i)
	}
	wg.Wait()

	snap := e.Snapshot()
	assert.Equal(t, int64(n), snap.Version)
	assert.Equal(t, 1, snap.Weights.Len())
}

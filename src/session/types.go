// Package session holds the serializable state of one interview: where the
// user is, what they picked, and which weights they tuned. It carries no
// behaviour beyond bookkeeping; transitions live in the interview package.
package session

// IntensityID is the reserved weight definition id of the per-node
// intensity slider.
const IntensityID = "intensity"

// Kind distinguishes answer selections from refinement selections
type Kind string

const (
	KindAnswer     Kind = "answer"
	KindRefinement Kind = "refinement"
)

// Selection is a chosen answer or refinement
type Selection struct {
	ID              string `json:"id"`
	NodeID          string `json:"node_id"`
	AnswerID        string `json:"answer_id"`
	Label           string `json:"label"`
	QuestionText    string `json:"question_text,omitempty"`
	CustomExtension string `json:"custom_extension,omitempty"`
	Kind            Kind   `json:"kind"`
}

// WeightValue is a live instance of a weight definition. Drafts are written
// while a slider moves; committed values feed the prompt.
type WeightValue struct {
	ID                    string   `json:"id"`
	DefinitionID          string   `json:"definition_id"`
	Value                 float64  `json:"value"`
	Template              string   `json:"template"`
	Tags                  []string `json:"tags,omitempty"`
	AssociatedSelectionID string   `json:"associated_selection_id,omitempty"`
	AnswerLabel           string   `json:"answer_label,omitempty"`
	QuestionText          string   `json:"question_text,omitempty"`
	Committed             bool     `json:"committed"`
}

// Standalone reports a value not tied to any selection
func (w WeightValue) Standalone() bool {
	return w.AssociatedSelectionID == ""
}

func (w WeightValue) IsIntensity() bool {
	return w.DefinitionID == IntensityID
}

// Side says which prompt a custom element joins
type Side string

const (
	SidePrompt   Side = "prompt"
	SideNegative Side = "negative"
)

// CustomElement is free text the user adds outside the question flow
type CustomElement struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
	Side    Side   `json:"side"`
}

// IntensityWeightID is the instance id of the intensity value owned by a
// selection or, for answer-less nodes, by a node.
func IntensityWeightID(ownerID string) string {
	return "weight-" + ownerID + "-" + IntensityID
}

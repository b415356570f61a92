// Package composer turns committed interview state into the two output
// strings: a weighted positive prompt and a negative prompt.
package composer

import (
	"strconv"
	"strings"

	"promptloom/src/sanitizer"
	"promptloom/src/session"
)

const rootQuestion = "what are you imagining?"

// BaseNegative always leads the negative prompt
var BaseNegative = []string{"deformed", "distorted", "extra limbs", "low detail", "low quality", "bad anatomy"}

// descriptive templates are complete on their own and never take an
// answer-label prefix
var descriptiveTemplates = []string{
	"penis size", "breast size", "vagina size", "buttocks size",
	"penis detail", "breast detail", "vagina detail", "buttocks detail",
	"penis shape", "breast shape", "buttocks shape",
}

// Result is an assembled prompt pair
type Result struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// Assembler builds prompts from committed selections and weights. It holds
// no session state and is safe for concurrent use.
type Assembler struct {
	rootNode  string
	buildNode string
}

// Option configures an Assembler
type Option func(*Assembler)

// WithRootNode sets the node whose answers never receive intensity tokens
func WithRootNode(id string) Option {
	return func(a *Assembler) { a.rootNode = id }
}

// WithBuildNode sets the node whose answers are rendered as "<label> body type"
func WithBuildNode(id string) Option {
	return func(a *Assembler) { a.buildNode = id }
}

func New(opts ...Option) *Assembler {
	a := &Assembler{rootNode: "root", buildNode: "character-build"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble renders prompt parts in order: answers, refinements, weights,
// then enabled custom prompt elements. Weight tokens are deduplicated by
// their rendered text, first one wins.
func (a *Assembler) Assemble(answers, refinements []session.Selection, weights []session.WeightValue, custom []session.CustomElement) Result {
	var parts []string

	// 1. Answers
	for _, sel := range answers {
		parts = append(parts, a.answerPhrase(sel))
	}

	// 2. Refinements
	for _, sel := range refinements {
		parts = append(parts, a.refinementPhrase(sel))
	}

	// 3. Weights
	selections := make(map[string]session.Selection, len(answers)+len(refinements))
	for _, sel := range refinements {
		selections[sel.ID] = sel
	}
	for _, sel := range answers {
		selections[sel.ID] = sel
	}
	seen := make(map[string]bool)
	for _, w := range weights {
		var assoc *session.Selection
		if !w.Standalone() {
			sel, ok := selections[w.AssociatedSelectionID]
			if !ok {
				// orphaned by a removed selection
				continue
			}
			assoc = &sel
		}

		var token string
		var ok bool
		if w.IsIntensity() {
			token, ok = a.intensityToken(w, assoc)
		} else {
			token, ok = weightToken(w), true
		}
		if !ok || seen[token] {
			continue
		}
		seen[token] = true
		parts = append(parts, "("+token+":"+FormatValue(w.Value)+")")
	}

	// 4. Custom elements
	negative := append([]string(nil), BaseNegative...)
	for _, el := range custom {
		text := strings.TrimSpace(el.Text)
		if !el.Enabled || text == "" {
			continue
		}
		if el.Side == session.SideNegative {
			negative = append(negative, text)
		} else {
			parts = append(parts, text)
		}
	}

	return Result{
		Prompt:         strings.Join(parts, ", "),
		NegativePrompt: strings.Join(negative, ", "),
	}
}

func (a *Assembler) answerPhrase(sel session.Selection) string {
	label := sel.Label
	lower := strings.ToLower(strings.TrimSpace(sel.Label))
	q := strings.ToLower(strings.TrimSpace(sel.QuestionText))

	switch {
	case q != "" && ShouldExpand(sel.Label, q):
		label = ExpandAnswer(sel.Label, q)
	case sel.NodeID == a.buildNode:
		label = lower + " body type"
	case q == rootQuestion:
		if strings.HasPrefix(lower, "a character") && strings.TrimSpace(sel.CustomExtension) == "" {
			label = "character"
		} else {
			label = strings.TrimPrefix(strings.TrimPrefix(lower, "a "), "an ")
		}
	case q != "":
		if subject, ok := likeSubject.extract(q); ok && subject != "you imagining" && !strings.Contains(subject, "you ") {
			label = lower + " " + subject
		}
	}

	return joinWords(label, sel.CustomExtension)
}

func (a *Assembler) refinementPhrase(sel session.Selection) string {
	label := sel.Label
	lower := strings.ToLower(strings.TrimSpace(sel.Label))
	q := strings.ToLower(strings.TrimSpace(sel.QuestionText))

	switch {
	case q == "":
	case ShouldExpand(sel.Label, q):
		label = ExpandAnswer(sel.Label, q)
	case containsAny(q, "hair", "wavy", "curly", "coily"):
		switch {
		case containsAny(q, "style", "how wavy", "how curly", "how coily"):
			label = lower + " hair style"
		case strings.Contains(q, "texture"):
			label = lower + " hair texture"
		default:
			label = lower + " hair"
		}
	default:
		if subject, ok := refinementSubject.extract(q); ok && !placeholderSubjects[subject] {
			label = lower + " " + subject
		}
	}

	return joinWords(label, sel.CustomExtension)
}

// intensityToken labels an intensity value from its answer and question.
// It reports false for values that must not be emitted.
func (a *Assembler) intensityToken(w session.WeightValue, assoc *session.Selection) (string, bool) {
	if assoc != nil && assoc.Kind == session.KindAnswer && assoc.NodeID == a.rootNode {
		return "", false
	}

	label := strings.ToLower(strings.TrimSpace(w.AnswerLabel))
	question := w.QuestionText
	if question == "" && assoc != nil {
		question = assoc.QuestionText
	}
	if label == "" && strings.TrimSpace(question) == "" {
		return "", false
	}

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "saturated") && strings.Contains(q, "color"):
		label = joinWords(label, "image colors")
	case strings.Contains(q, "how intense"):
		if subject, ok := intenseSubject.extract(q); ok {
			label = joinWords(label, subject)
		}
	case containsAny(q, "how", "what"):
		if subject, ok := questionSubject.extract(q); ok {
			if containsAny(subject, "color", "saturation") {
				subject = "image " + subject
			}
			label = joinWords(label, subject)
		}
	}
	if label == "" {
		label = session.IntensityID
	}

	return sanitizer.Sanitize(label, w.Tags), true
}

func weightToken(w session.WeightValue) string {
	template := NormalizeTemplate(w.Template, w.Tags)
	if label := strings.ToLower(strings.TrimSpace(w.AnswerLabel)); label != "" {
		if !isDescriptive(template) && !strings.Contains(template, label) {
			template = label + " " + template
		}
	}
	return sanitizer.Sanitize(template, w.Tags)
}

func isDescriptive(template string) bool {
	return containsAny(template, descriptiveTemplates...)
}

// FormatValue renders a weight value with exactly two decimals
func FormatValue(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

package sanitizer

import (
	"fmt"
	"sort"
	"strings"

	"promptloom/src/graph"
)

// Issue is a single problem found in question bank records
type Issue struct {
	NodeID         string `json:"node_id"`
	WeightID       string `json:"weight_id,omitempty"`
	Problem        string `json:"problem"`
	Recommendation string `json:"recommendation,omitempty"`
}

func (i Issue) String() string {
	where := i.NodeID
	if i.WeightID != "" {
		where += "/" + i.WeightID
	}
	return fmt.Sprintf("%s: %s", where, i.Problem)
}

// Validate checks every weight definition and answer pointer in records.
// Issues are ordered by node id, then weight id.
func Validate(records []graph.Node) []Issue {
	known := make(map[string]bool)
	for _, n := range records {
		known[n.ID] = true
		for _, r := range n.Refinements {
			known[r.ID] = true
		}
	}

	var issues []Issue
	for _, n := range records {
		issues = append(issues, validateAnswers(n.ID, n.Answers, known)...)
		for _, w := range n.Weights {
			issues = append(issues, validateWeight(n.ID, w)...)
		}
		for _, r := range n.Refinements {
			issues = append(issues, validateAnswers(r.ID, r.Answers, known)...)
			for _, w := range r.Weights {
				issues = append(issues, validateWeight(r.ID, w)...)
			}
		}
	}

	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].NodeID != issues[b].NodeID {
			return issues[a].NodeID < issues[b].NodeID
		}
		return issues[a].WeightID < issues[b].WeightID
	})
	return issues
}

func validateAnswers(nodeID string, answers []graph.Answer, known map[string]bool) []Issue {
	var issues []Issue
	for _, a := range answers {
		if a.Next != "" && !known[a.Next] {
			issues = append(issues, Issue{
				NodeID:         nodeID,
				Problem:        fmt.Sprintf("answer %q points at missing node %q", a.ID, a.Next),
				Recommendation: "Fix the next pointer or add the node",
			})
		}
	}
	return issues
}

func validateWeight(nodeID string, w graph.WeightDefinition) []Issue {
	issue := func(problem, rec string) Issue {
		return Issue{NodeID: nodeID, WeightID: w.ID, Problem: problem, Recommendation: rec}
	}

	if strings.TrimSpace(w.Template) == "" {
		return []Issue{issue("Empty or missing template", "Add a descriptive template string")}
	}

	var issues []Issue
	t := strings.ToLower(strings.TrimSpace(w.Template))
	if forbidden[t] {
		issues = append(issues, issue(
			fmt.Sprintf("Forbidden template: %q", t),
			fmt.Sprintf("Use a more specific template; it currently renders as %q", Sanitize(w.Template, w.Tags)),
		))
	}
	if len(w.Tags) == 0 {
		issues = append(issues, issue("Missing tags array", `Add tags, e.g. ["hair"] or ["camera", "perspective"]`))
	}
	if sanitized := Sanitize(w.Template, w.Tags); forbidden[sanitized] {
		issues = append(issues, issue(fmt.Sprintf("Template %q would not be sanitized properly", t), ""))
	}
	if w.Min > w.Max {
		issues = append(issues, issue(fmt.Sprintf("min %.2f is greater than max %.2f", w.Min, w.Max), "Swap the bounds"))
	}
	if (w.Min != 0 || w.Max != 0) && (w.Default < w.Min || w.Default > w.Max) {
		issues = append(issues, issue(fmt.Sprintf("default %.2f is outside [%.2f, %.2f]", w.Default, w.Min, w.Max), ""))
	}
	if w.Step < 0 {
		issues = append(issues, issue(fmt.Sprintf("step %.2f is negative", w.Step), ""))
	}
	return issues
}

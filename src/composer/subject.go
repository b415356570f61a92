package composer

import (
	"regexp"
	"strings"
)

// A subjectRules list is tried in order; the first pattern that matches
// yields its first capture group, trimmed. The patterns are a
// compatibility surface: changing one changes emitted prompts.
type subjectRules []*regexp.Regexp

func (rules subjectRules) extract(question string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, re := range rules {
		if m := re.FindStringSubmatch(q); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

var (
	// "What are the lips like?" -> "lips", "What is the hair length?" -> "hair length"
	likeSubject = subjectRules{
		regexp.MustCompile(`what (?:are|is) (?:the )?(.+?) (?:like|like\?)$`),
		regexp.MustCompile(`what (?:are|is) (?:the )?(.+?)\?$`),
	}

	// "How glossy?" -> "glossy", "What is the lip color?" -> "lip color"
	refinementSubject = subjectRules{
		regexp.MustCompile(`how (.+?)\?$`),
		regexp.MustCompile(`what (?:is|are) (?:the )?(.+?)\?$`),
	}

	// "How intense should the rim lighting be?" -> "rim lighting"
	intenseSubject = subjectRules{
		regexp.MustCompile(`how intense should (?:the )?(.+?) be\?$`),
		regexp.MustCompile(`how intense should (.+?)\?$`),
	}

	// "How broad should the shoulders be?" -> "shoulders"
	shouldBeSubject = subjectRules{
		regexp.MustCompile(`how .+ should the (.+?) be\?$`),
		regexp.MustCompile(`how .+ should (.+?) be\?$`),
	}

	// intensity labels: "should be" phrasing first, then "what ... like"
	questionSubject = append(append(subjectRules{}, shouldBeSubject...), likeSubject...)
)

// EffectsSubject extracts the subject of a "how ... should the X be?"
// question, used to label intensity on nodes without answers.
func EffectsSubject(question string) (string, bool) {
	return shouldBeSubject.extract(question)
}

var placeholderSubjects = map[string]bool{"it": true, "this": true, "that": true}

func joinWords(words ...string) string {
	var kept []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

package composer

import "strings"

// abstractAnswers carry no visual meaning without the question they answer
var abstractAnswers = map[string]bool{
	"subtle":     true,
	"moderate":   true,
	"pronounced": true,
	"strong":     true,
	"focused":    true,
	"natural":    true,
	"intense":    true,
	"slight":     true,
	"minimal":    true,
	"extreme":    true,
	"soft":       true,
	"hard":       true,
}

var shapeKeywords = map[string]bool{
	"round":        true,
	"teardrop":     true,
	"full":         true,
	"shallow":      true,
	"athletic":     true,
	"wide-set":     true,
	"close-set":    true,
	"asymmetrical": true,
	"augmented":    true,
	"natural":      true,
}

var anatomicalCues = []string{"breast", "bust", "chest anatomy", "upper torso", "torso shape"}

// anatomical expansions, descriptive and non-sexual
var anatomicalPhrases = map[string]string{
	"subtle":     "subtle breast definition with gentle anatomical silhouette",
	"moderate":   "moderate breast definition with balanced curvature and natural proportions",
	"pronounced": "pronounced breast curvature with clearly defined upper-torso silhouette",
	"soft":       "soft breast contours with smooth anatomical transitions",
	"hard":       "firm breast contours with sculpted anatomical form",
	"minimal":    "minimal breast projection with understated chest anatomy",
	"extreme":    "highly emphasized breast curvature with dramatic anatomical silhouette",
	"strong":     "strongly defined breast shape with enhanced anatomical contour",
	"intense":    "intensely emphasized upper-torso anatomy and curvature",

	"round":        "round breast shape with balanced fullness",
	"teardrop":     "teardrop breast shape with lower-fullness profile",
	"full":         "full, evenly distributed breast volume",
	"shallow":      "shallow breast projection with gentle slope",
	"athletic":     "athletic chest anatomy with minimal projection",
	"wide-set":     "wide-set breast placement with visible sternum spacing",
	"wide set":     "wide-set breast placement with visible sternum spacing",
	"east-west":    "wide-set breast placement with visible sternum spacing",
	"east_west":    "wide-set breast placement with visible sternum spacing",
	"close-set":    "close-set breast placement with narrow anatomical spacing",
	"close set":    "close-set breast placement with narrow anatomical spacing",
	"side-set":     "close-set breast placement with narrow anatomical spacing",
	"side_set":     "close-set breast placement with narrow anatomical spacing",
	"asymmetric":   "naturally asymmetrical breast proportions",
	"asymmetrical": "naturally asymmetrical breast proportions",
	"augmented":    "augmented breast shape with structured curvature",
	"natural":      "natural breast shape with organic anatomical silhouette",
	"bell":         "bell-shaped breast profile with wider base and tapered top",
	"bell shape":   "bell-shaped breast profile with wider base and tapered top",
	"slender":      "slender breast profile with elongated anatomical form",
	"relaxed":      "relaxed breast tissue with natural downward contour",
	"conical":      "conical breast shape with pointed anatomical structure",
}

var otherworldlyPhrases = map[string]string{
	"subtle":     "subtle otherworldly presence",
	"moderate":   "moderate degree of otherworldly traits",
	"pronounced": "strongly pronounced supernatural features",
	"extreme":    "extremely vivid otherworldly appearance",
}

// questionCategory maps question keywords to the noun an abstract adjective
// is anchored to. Order is priority.
type questionCategory struct {
	cues   []string
	suffix string
}

var questionCategories = []questionCategory{
	{cues: []string{"intensity", "strength"}, suffix: "intensity level"},
	{cues: []string{"mood", "emotion", "personality"}, suffix: "emotional expression"},
	{cues: []string{"style"}, suffix: "stylistic effect"},
	{cues: []string{"camera", "perspective", "angle"}, suffix: "camera perspective adjustment"},
	{cues: []string{"light", "illumination"}, suffix: "lighting effect"},
	{cues: []string{"hair"}, suffix: "hair appearance"},
	{cues: []string{"body", "build", "shape"}, suffix: "physical trait"},
}

// IsAbstract reports whether label is one of the vague adjectives
func IsAbstract(label string) bool {
	return abstractAnswers[normalizeLabel(label)]
}

// IsShapeKeyword reports whether label names an anatomical shape
func IsShapeKeyword(label string) bool {
	return shapeKeywords[normalizeLabel(label)]
}

// IsAnatomicalContext reports whether question frames an upper-torso
// anatomy choice
func IsAnatomicalContext(question string) bool {
	return containsAny(strings.ToLower(question), anatomicalCues...)
}

// ShouldExpand reports whether ExpandAnswer would rewrite label
func ShouldExpand(label, question string) bool {
	if IsAbstract(label) {
		return true
	}
	if !IsAnatomicalContext(question) {
		return false
	}
	_, ok := anatomicalPhrases[normalizeLabel(label)]
	return ok
}

// ExpandAnswer turns a vague answer label into a concrete phrase using the
// question it answered. Labels that are neither abstract nor anatomical in
// an anatomical question come back unchanged.
func ExpandAnswer(label, question string) string {
	a := normalizeLabel(label)
	q := strings.ToLower(question)

	if IsAnatomicalContext(q) {
		if phrase, ok := anatomicalPhrases[a]; ok {
			return phrase
		}
		return label
	}
	if !abstractAnswers[a] {
		return label
	}

	if containsAny(q, "otherworld", "supernatural", "non-human") {
		if phrase, ok := otherworldlyPhrases[a]; ok {
			return phrase
		}
	}
	for _, c := range questionCategories {
		if containsAny(q, c.cues...) {
			return a + " " + c.suffix
		}
	}
	return a + " visual effect"
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

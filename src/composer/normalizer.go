package composer

import "strings"

type normalizeRule func(t string) string

func ensureNoun(noun, stem string) normalizeRule {
	return func(t string) string {
		if strings.Contains(t, stem) {
			return t
		}
		return noun + " " + t
	}
}

var normalizeRules = map[string]normalizeRule{
	"hair": func(t string) string {
		switch {
		case strings.Contains(t, "hair"):
			return t
		case strings.Contains(t, "volume"):
			return "voluminous hairstyle"
		case strings.Contains(t, "texture"):
			return "hair texture detailing"
		}
		return "hair " + t
	},
	"eyes": ensureNoun("eye", "eye"),
	"face": ensureNoun("facial", "face"),
	"environment": func(t string) string {
		if strings.Contains(t, "depth") {
			return "environment depth layering"
		}
		return ensureNoun("environment", "environment")(t)
	},
	"lighting": ensureNoun("lighting", "light"),
	"camera":   ensureNoun("camera", "camera"),
	"color":    ensureNoun("color style", "color"),
	"materials": func(t string) string {
		if strings.Contains(t, "material") {
			return t
		}
		return t + " material texture"
	},
	"clothing":   ensureNoun("clothing", "clothing"),
	"fabric":     ensureNoun("fabric", "fabric"),
	"armor":      ensureNoun("armor", "armor"),
	"magic":      ensureNoun("magical", "magic"),
	"expression": ensureNoun("expression", "expression"),
	"pose":       ensureNoun("pose", "pose"),
}

// NormalizeTemplate applies the rewrite rule of every tag, in tag order, so
// a template names the thing it weights. Unknown tags are ignored.
func NormalizeTemplate(template string, tags []string) string {
	t := strings.ToLower(strings.TrimSpace(template))
	for _, tag := range tags {
		if rule, ok := normalizeRules[tag]; ok {
			t = rule(t)
		}
	}
	return t
}

// Package sanitizer rewrites weight templates into tokens that are safe to
// emit as (token:value) emphasis markers. A bare abstract word such as
// "subtle" carries no visual meaning on its own, so it is either dropped or
// anchored to a category noun taken from the weight's tags.
package sanitizer

import "strings"

// forbidden templates must never be emitted verbatim
var forbidden = map[string]bool{
	"":           true,
	" ":          true,
	"height":     true,
	"very tall":  true,
	"slim":       true,
	"moderate":   true,
	"subtle":     true,
	"pronounced": true,
	"focused":    true,
	"strong":     true,
	"cursed":     true,
}

// filler words stripped from templates before category rewrites
var filler = map[string]bool{
	"pronounced":       true,
	"moderate":         true,
	"subtle":           true,
	"focused":          true,
	"otherworldliness": true,
	"emphasis":         true,
	"height":           true,
	"slim":             true,
	"strong":           true,
	"playful":          true,
	"seriousness":      true,
	"cursed":           true,
}

type rewriteRule func(t string) string

// prefixUnless prefixes noun onto t when t does not already mention stem
func prefixUnless(noun, stem string) rewriteRule {
	return func(t string) string {
		if strings.Contains(t, stem) {
			return t
		}
		return noun + " " + t
	}
}

var categoryRewrites = map[string]rewriteRule{
	"hair": func(t string) string {
		switch {
		case strings.Contains(t, "hair"):
			return t
		case strings.Contains(t, "volume"):
			return "hair volume"
		case strings.Contains(t, "color"):
			return "hair color intensity"
		}
		return "hair " + t
	},
	"face":    prefixUnless("facial", "fac"),
	"eyes":    prefixUnless("eye", "eye"),
	"emotion": prefixUnless("emotional", "emotion"),
	"body": func(t string) string {
		switch {
		case strings.Contains(t, "height"):
			return "tall body proportions"
		case strings.Contains(t, "slim"):
			return "slim body shape"
		case strings.Contains(t, "strong"):
			return "strong physique"
		case strings.Contains(t, "body"), strings.Contains(t, "physique"):
			return t
		}
		return "body trait " + t
	},
	"camera":      prefixUnless("camera perspective", "camera"),
	"perspective": prefixUnless("perspective", "perspective"),
	"lighting":    prefixUnless("lighting", "light"),
	"color":       prefixUnless("color", "color"),
}

// IsForbidden reports whether t, after lowercasing and trimming, is one of
// the bare words that may never be emitted as a token.
func IsForbidden(t string) bool {
	return forbidden[strings.ToLower(strings.TrimSpace(t))]
}

// Fallback anchors t to the first category noun found in tags
func Fallback(t string, tags []string) string {
	readable := strings.ToLower(strings.TrimSpace(t))
	prefix := "visual"
	switch {
	case hasTag(tags, "body"):
		prefix = "body trait"
	case hasTag(tags, "emotion"):
		prefix = "emotional"
	case hasTag(tags, "hair"):
		prefix = "hair"
	case hasTag(tags, "camera"):
		prefix = "camera"
	case hasTag(tags, "perspective"):
		prefix = "perspective"
	}
	return strings.TrimSpace(prefix + " " + readable)
}

// Sanitize turns a raw template into an emit-safe token. The result is
// never empty and never a forbidden word.
func Sanitize(template string, tags []string) string {
	original := strings.ToLower(strings.TrimSpace(template))
	if forbidden[original] {
		return Fallback(original, tags)
	}

	t := stripFiller(original)
	if t == "" {
		return Fallback(original, tags)
	}
	for _, tag := range tags {
		if rule, ok := categoryRewrites[tag]; ok {
			t = rule(t)
		}
	}

	t = strings.TrimSpace(t)
	if t == "" || forbidden[t] {
		return Fallback(original, tags)
	}
	return t
}

func stripFiller(t string) string {
	t = strings.ReplaceAll(t, "very tall", " ")
	words := strings.Fields(t)
	kept := words[:0]
	for _, w := range words {
		if !filler[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

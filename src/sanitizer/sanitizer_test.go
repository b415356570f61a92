package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeGolden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		tags     []string
		want     string
	}{
		{"forbidden body word", "subtle", []string{"body"}, "body trait subtle"},
		{"forbidden without tags", "Pronounced", nil, "visual pronounced"},
		{"forbidden emotion", "cursed", []string{"emotion"}, "emotional cursed"},
		{"forbidden camera", "focused", []string{"camera"}, "camera focused"},
		{"forbidden perspective", "strong", []string{"perspective"}, "perspective strong"},
		{"forbidden phrase", "very tall", []string{"hair"}, "hair very tall"},
		{"empty body", "", []string{"body"}, "body trait"},
		{"whitespace", "   ", nil, "visual"},
		{"hair already named", "curly hair curl intensity", []string{"hair"}, "curly hair curl intensity"},
		{"hair prefix", "curl intensity", []string{"hair"}, "hair curl intensity"},
		{"hair volume", "big volume", []string{"hair"}, "hair volume"},
		{"hair color", "bright color", []string{"hair"}, "hair color intensity"},
		{"filler stripped", "subtle glow emphasis", []string{"eyes"}, "eye glow"},
		{"filler only falls back", "subtle emphasis", []string{"body"}, "body trait subtle emphasis"},
		{"body prefix", "muscle definition", []string{"body"}, "body trait muscle definition"},
		{"camera tags in order", "tilt", []string{"camera", "perspective"}, "camera perspective tilt"},
		{"lighting", "contrast", []string{"lighting"}, "lighting contrast"},
		{"lighting named", "rim light", []string{"lighting"}, "rim light"},
		{"color", "lip", []string{"color"}, "color lip"},
		{"face", "freckles", []string{"face"}, "facial freckles"},
		{"unknown tag", "fog density", []string{"environment"}, "fog density"},
		{"case folded", "  Fog Density ", nil, "fog density"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Sanitize(tt.template, tt.tags))
		})
	}
}

func TestSanitizeNeverEmptyOrForbidden(t *testing.T) {
	tagSets := [][]string{nil, {"body"}, {"hair"}, {"emotion"}, {"camera", "perspective"}, {"lighting"}, {"unknown"}}
	templates := []string{"", " ", "height", "very tall", "slim", "moderate", "subtle", "pronounced",
		"focused", "strong", "cursed", "playful seriousness", "otherworldliness", "strong slim", "glow"}

	for _, tags := range tagSets {
		for _, tmpl := range templates {
			got := Sanitize(tmpl, tags)
			assert.NotEmpty(t, got, "template %q tags %v", tmpl, tags)
			assert.False(t, IsForbidden(got), "template %q tags %v produced %q", tmpl, tags, got)
		}
	}
}

// Re-sanitizing is not guaranteed to be a no-op in general; these pin the
// cases where it is.
func TestSanitizeStableCases(t *testing.T) {
	cases := []struct {
		template string
		tags     []string
	}{
		{"curl intensity", []string{"hair"}},
		{"tilt", []string{"camera", "perspective"}},
		{"muscle definition", []string{"body"}},
		{"fog density", nil},
	}
	for _, c := range cases {
		once := Sanitize(c.template, c.tags)
		assert.Equal(t, once, Sanitize(once, c.tags), c.template)
	}
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "body trait slim", Fallback(" Slim ", []string{"hair", "body"}))
	assert.Equal(t, "hair x", Fallback("x", []string{"camera", "hair"}))
	assert.Equal(t, "visual x", Fallback("x", []string{"color"}))
}

package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		label    string
		question string
		want     string
	}{
		{"anatomical abstract", "Subtle", "What is the torso shape?", "subtle breast definition with gentle anatomical silhouette"},
		{"anatomical shape", "Teardrop", "What is the bust like?", "teardrop breast shape with lower-fullness profile"},
		{"anatomical alias", "East-West", "Describe the breast placement?", "wide-set breast placement with visible sternum spacing"},
		{"anatomical beats hair", "Soft", "What is the upper torso and hair like?", "soft breast contours with smooth anatomical transitions"},
		{"anatomical unknown", "Slight", "What is the chest anatomy like?", "Slight"},
		{"shape outside anatomy", "Full", "What are the lips like?", "Full"},
		{"plain label", "Curly", "What is the hair texture?", "Curly"},
		{"otherworldly", "Pronounced", "How otherworldly is the character?", "strongly pronounced supernatural features"},
		{"otherworldly fallthrough", "Soft", "How supernatural is the glow?", "soft visual effect"},
		{"intensity", "Strong", "What strength should it have?", "strong intensity level"},
		{"mood", "Intense", "What is the mood?", "intense emotional expression"},
		{"style", "Minimal", "What art style?", "minimal stylistic effect"},
		{"camera", "Extreme", "Which camera angle?", "extreme camera perspective adjustment"},
		{"lighting", "Hard", "How is the light?", "hard lighting effect"},
		{"hair", "Moderate", "How much hair?", "moderate hair appearance"},
		{"body", "Focused", "What is the build?", "focused physical trait"},
		{"fallback", "Natural", "Anything else?", "natural visual effect"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandAnswer(tt.label, tt.question))
		})
	}
}

func TestShouldExpand(t *testing.T) {
	assert.True(t, ShouldExpand(" subtle ", "anything"))
	assert.True(t, ShouldExpand("Round", "What is the torso shape?"))
	assert.True(t, ShouldExpand("conical", "What is the bust like?"))
	assert.False(t, ShouldExpand("Round", "What are the eyes like?"))
	assert.False(t, ShouldExpand("Curly", "What is the torso shape?"))

	assert.True(t, IsShapeKeyword("wide-set"))
	assert.False(t, IsShapeKeyword("conical"))
	assert.True(t, IsAnatomicalContext("WHAT IS THE BUST LIKE?"))
}

func TestNormalizeTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		tags     []string
		want     string
	}{
		{"hair prefix", "curl intensity", []string{"hair"}, "hair curl intensity"},
		{"hair named", "Hair Shine", []string{"hair"}, "hair shine"},
		{"hair volume", "volume", []string{"hair"}, "voluminous hairstyle"},
		{"hair texture", "texture", []string{"hair"}, "hair texture detailing"},
		{"eyes", "glow", []string{"eyes"}, "eye glow"},
		{"face", "freckles", []string{"face"}, "facial freckles"},
		{"environment depth", "depth", []string{"environment"}, "environment depth layering"},
		{"environment", "fog density", []string{"environment"}, "environment fog density"},
		{"lighting", "contrast", []string{"lighting"}, "lighting contrast"},
		{"camera", "tilt", []string{"camera", "perspective"}, "camera tilt"},
		{"color", "lip color", []string{"color"}, "lip color"},
		{"color prefix", "vibrance", []string{"color"}, "color style vibrance"},
		{"materials", "leather", []string{"materials"}, "leather material texture"},
		{"clothing", "layers", []string{"clothing"}, "clothing layers"},
		{"fabric", "sheen", []string{"fabric"}, "fabric sheen"},
		{"armor", "plates", []string{"armor"}, "armor plates"},
		{"magic", "aura", []string{"magic"}, "magical aura"},
		{"expression", "smile", []string{"expression"}, "expression smile"},
		{"pose", "lean", []string{"pose"}, "pose lean"},
		{"tags in order", "shine", []string{"fabric", "armor"}, "armor fabric shine"},
		{"unknown", "  Thing ", []string{"nope"}, "thing"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeTemplate(tt.template, tt.tags))
		})
	}
}

func TestSubjectRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rules    subjectRules
		question string
		want     string
		ok       bool
	}{
		{"like", likeSubject, "What are the lips like?", "lips", true},
		{"like without article", likeSubject, "What is skin like?", "skin", true},
		{"plain what", likeSubject, "What is the hair texture?", "hair texture", true},
		{"no match", likeSubject, "Pick one", "", false},
		{"refinement how", refinementSubject, "How glossy?", "glossy", true},
		{"refinement what", refinementSubject, "What is the lip color?", "lip color", true},
		{"intense", intenseSubject, "How intense should the rim lighting be?", "rim lighting", true},
		{"intense no be", intenseSubject, "How intense should it glow?", "it glow", true},
		{"should be", shouldBeSubject, "How broad should the shoulders be?", "shoulders", true},
		{"should be no article", shouldBeSubject, "How saturated should colors be?", "colors", true},
		{"question falls to what", questionSubject, "What is the eye color?", "eye color", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.rules.extract(tt.question)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	subject, ok := EffectsSubject("How intense should the fog be?")
	assert.True(t, ok)
	assert.Equal(t, "fog", subject)
}

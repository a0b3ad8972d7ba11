// internal/endpoints/recipe-suggest/endpoint_test.go
package recipesuggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-gateway/internal/pipeline"
)

func TestBuildPrompt(t *testing.T) {
	fields := map[string]interface{}{
		"ingredients": "eggs, spinach, feta",
		"language":    "Greek",
	}

	prompt := buildPrompt(fields)

	assert.Contains(t, prompt, "eggs, spinach, feta")
	assert.Contains(t, prompt, "Greek")
	assert.Contains(t, prompt, "## Steps")
	assert.Equal(t, prompt, buildPrompt(fields), "prompt is deterministic")
}

func TestBuildPrompt_DefaultLanguage(t *testing.T) {
	prompt := buildPrompt(map[string]interface{}{"ingredients": "rice"})
	assert.Contains(t, prompt, "English")
}

func TestEndpointDefinition(t *testing.T) {
	ep := New()

	assert.Equal(t, "recipe-suggest", ep.Name)
	assert.Equal(t, pipeline.ShapeMarkdown, ep.Shape)
	assert.Nil(t, ep.Schema)
	assert.True(t, ep.Rules[0].Required)
	assert.Equal(t, 1000, ep.Rules[0].MaxLength)
}

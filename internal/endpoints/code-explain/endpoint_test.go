// internal/endpoints/code-explain/endpoint_test.go
package codeexplain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-gateway/internal/pipeline"
)

func TestBuildPrompt(t *testing.T) {
	fields := map[string]interface{}{
		"code":     "func add(a, b int) int { return a + b }",
		"language": "Go",
	}

	prompt := buildPrompt(fields)

	assert.Contains(t, prompt, "func add(a, b int) int")
	assert.Contains(t, prompt, "language: Go")
	assert.Contains(t, prompt, "## Walkthrough")
	assert.Equal(t, prompt, buildPrompt(fields), "prompt is deterministic")
}

func TestBuildPrompt_UnknownLanguage(t *testing.T) {
	prompt := buildPrompt(map[string]interface{}{"code": "print(1)"})
	assert.Contains(t, prompt, "language: not specified")
}

func TestEndpointDefinition(t *testing.T) {
	ep := New()

	assert.Equal(t, "code-explain", ep.Name)
	assert.Equal(t, pipeline.ShapeMarkdown, ep.Shape)
	assert.Equal(t, 20000, ep.Rules[0].MaxLength)
}

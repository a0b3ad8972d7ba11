// internal/pipeline/normalize_test.go
package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "ai-gateway/internal/common/errors"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence with language tag",
			input:    "```json\n{\"a\": 1}\n```",
			expected: "{\"a\": 1}",
		},
		{
			name:     "fence without language tag",
			input:    "```\n{\"a\": 1}\n```",
			expected: "{\"a\": 1}",
		},
		{
			name:     "markdown language tag",
			input:    "```markdown\n# Heading\n\nBody text.\n```",
			expected: "# Heading\n\nBody text.",
		},
		{
			name:     "no fences is a no-op",
			input:    "{\"a\": 1}",
			expected: "{\"a\": 1}",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n[1, 2, 3]\n```\n  ",
			expected: "[1, 2, 3]",
		},
		{
			name:     "content on the opening fence line",
			input:    "```{\"a\": 1}\n```",
			expected: "{\"a\": 1}",
		},
		{
			name:     "plain prose untouched",
			input:    "A recipe for pancakes.",
			expected: "A recipe for pancakes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestStripFences_Idempotent(t *testing.T) {
	input := "```json\n{\"a\": 1}\n```"

	once := StripFences(input)
	twice := StripFences(once)

	assert.Equal(t, once, twice)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name:     "object with commentary prefix",
			input:    "Sure, here is the result: {\"a\": 1} Hope that helps!",
			expected: "{\"a\": 1}",
			found:    true,
		},
		{
			name:     "array with commentary prefix",
			input:    "Here you go:\n[1, 2, 3]",
			expected: "[1, 2, 3]",
			found:    true,
		},
		{
			name:     "nested objects",
			input:    "{\"a\": {\"b\": [1, 2]}} trailing",
			expected: "{\"a\": {\"b\": [1, 2]}}",
			found:    true,
		},
		{
			name:     "brace inside string value",
			input:    "{\"text\": \"use } carefully\"}",
			expected: "{\"text\": \"use } carefully\"}",
			found:    true,
		},
		{
			name:     "escaped quote inside string",
			input:    "{\"text\": \"she said \\\"}\\\" loudly\"}",
			expected: "{\"text\": \"she said \\\"}\\\" loudly\"}",
			found:    true,
		},
		{
			name:  "no json at all",
			input: "I cannot answer that.",
			found: false,
		},
		{
			name:  "unterminated object",
			input: "{\"a\": 1",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestNormalize_Markdown(t *testing.T) {
	res, err := Normalize(ShapeMarkdown, "# Recipe\n\nSome steps.", nil)

	require.NoError(t, err)
	assert.Equal(t, ShapeMarkdown, res.Shape)
	assert.Equal(t, "# Recipe\n\nSome steps.", res.String())
	assert.Nil(t, res.JSON)
}

func TestNormalize_JSON(t *testing.T) {
	schema := MustSchema(`{
		"type": "object",
		"required": ["a"],
		"properties": {"a": {"type": "number"}}
	}`)

	tests := []struct {
		name        string
		raw         string
		expectErr   bool
		expectedDoc string
	}{
		{
			name:        "clean json",
			raw:         `{"a": 1}`,
			expectedDoc: `{"a": 1}`,
		},
		{
			name:        "fenced json",
			raw:         "```json\n{\"a\": 1}\n```",
			expectedDoc: `{"a": 1}`,
		},
		{
			name:        "commentary around json",
			raw:         "Here is the result:\n{\"a\": 1}\nLet me know if you need more.",
			expectedDoc: `{"a": 1}`,
		},
		{
			name:      "not json at all",
			raw:       "I am sorry, I cannot do that.",
			expectErr: true,
		},
		{
			name:      "schema violation wrong type",
			raw:       `{"a": "one"}`,
			expectErr: true,
		},
		{
			name:      "schema violation missing key",
			raw:       `{"b": 2}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Normalize(ShapeJSON, tt.raw, schema)

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidResponseFormat))
				apiErr := apierrors.Normalize(err)
				assert.Equal(t, "invalid response format from AI", apiErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ShapeJSON, res.Shape)
			assert.JSONEq(t, tt.expectedDoc, string(res.JSON))
			assert.True(t, json.Valid([]byte(res.String())))
		})
	}
}

func TestNormalize_SchemaRejectsDefaults(t *testing.T) {
	// A document missing a required key must fail outright, never be
	// back-filled with a default value.
	schema := MustSchema(`{
		"type": "object",
		"required": ["riskLevel"],
		"properties": {"riskLevel": {"type": "string", "enum": ["low", "medium", "high"]}}
	}`)

	_, err := Normalize(ShapeJSON, `{"summary": "fine"}`, schema)

	require.Error(t, err)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidResponseFormat))
}

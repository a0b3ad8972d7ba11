// internal/endpoints/image-describe/endpoint_test.go
package imagedescribe

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachment_ValidDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png bytes"))
	fields := map[string]interface{}{"image": "data:image/png;base64," + payload}

	att := attachment(fields)

	require.NotNil(t, att)
	assert.Equal(t, "image/png", att.MIMEType)
	assert.Equal(t, []byte("png bytes"), att.Data)
}

func TestAttachment_MalformedDegradesToNone(t *testing.T) {
	tests := []struct {
		name  string
		image interface{}
	}{
		{name: "plain url", image: "https://example.com/cat.png"},
		{name: "missing base64 flag", image: "data:image/png,abcd"},
		{name: "invalid base64", image: "data:image/png;base64,not!!valid"},
		{name: "not a string", image: 42.0},
		{name: "empty", image: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, attachment(map[string]interface{}{"image": tt.image}))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(map[string]interface{}{"question": "What breed is this dog?"})
	assert.Contains(t, prompt, "What breed is this dog?")

	prompt = buildPrompt(map[string]interface{}{})
	assert.Contains(t, prompt, "Describe this image in detail.")
}

func TestEndpointDefinition(t *testing.T) {
	ep := New()

	assert.Equal(t, "image-describe", ep.Name)
	assert.NotNil(t, ep.Attachment)
	require.Len(t, ep.Rules, 2)
	assert.True(t, ep.Rules[0].Required)
}

// internal/gemini/datauri_test.go
package gemini

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))

	tests := []struct {
		name     string
		uri      string
		wantMIME string
		ok       bool
	}{
		{
			name:     "valid png",
			uri:      "data:image/png;base64," + payload,
			wantMIME: "image/png",
			ok:       true,
		},
		{
			name:     "valid jpeg",
			uri:      "data:image/jpeg;base64," + payload,
			wantMIME: "image/jpeg",
			ok:       true,
		},
		{name: "missing data prefix", uri: "image/png;base64," + payload},
		{name: "missing comma", uri: "data:image/png;base64"},
		{name: "not base64 encoded flag", uri: "data:image/png," + payload},
		{name: "empty mime type", uri: "data:;base64," + payload},
		{name: "empty payload", uri: "data:image/png;base64,"},
		{name: "invalid base64", uri: "data:image/png;base64,not!!valid"},
		{name: "plain url", uri: "https://example.com/cat.png"},
		{name: "empty string", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att, ok := ParseDataURI(tt.uri)

			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, att)
				return
			}
			require.NotNil(t, att)
			assert.Equal(t, tt.wantMIME, att.MIMEType)
			assert.Equal(t, []byte("image bytes"), att.Data)
		})
	}
}

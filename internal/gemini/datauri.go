// internal/gemini/datauri.go
package gemini

import (
	"encoding/base64"
	"strings"
)

// Attachment is one inlined binary input to a generation request.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI splits a data:<mime>;base64,<payload> string into an
// Attachment. A malformed URI is reported as (nil, false) so callers treat
// it as "no attachment" rather than failing the request.
func ParseDataURI(uri string) (*Attachment, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}

	rest := strings.TrimPrefix(uri, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return nil, false
	}

	meta := rest[:comma]
	payload := rest[comma+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return nil, false
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" || payload == "" {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}

	return &Attachment{MIMEType: mimeType, Data: data}, true
}

// internal/pipeline/normalize.go
package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	apierrors "ai-gateway/internal/common/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Shape declares what the endpoint expects back from the model.
type Shape string

const (
	ShapeMarkdown Shape = "markdown"
	ShapeJSON     Shape = "json"
)

// Result is the normalized model output. JSON is set only for ShapeJSON.
type Result struct {
	Shape Shape
	Text  string
	JSON  json.RawMessage
}

// String returns the client-facing result string: the Markdown text, or the
// cleaned JSON document.
func (r Result) String() string {
	if r.Shape == ShapeJSON {
		return string(r.JSON)
	}
	return r.Text
}

// StripFences removes a Markdown code-fence wrapper from model output.
// Running it on fence-free text is a no-op, so normalization is idempotent.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag on the opening fence, e.g. ```json
	if nl := strings.Index(trimmed, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(trimmed[:nl])
		if !strings.ContainsAny(firstLine, " \t{[") {
			trimmed = trimmed[nl+1:]
		}
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// ExtractJSON returns the first balanced top-level {...} or [...] block.
// Models sometimes prefix structured output with commentary; bracket
// matching is string- and escape-aware so braces inside values don't
// terminate the scan early.
func ExtractJSON(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// Normalize cleans raw model text into the expected shape. For JSON shapes
// the text is fence-stripped, the first JSON document extracted, parsed, and
// validated against the endpoint schema; any failure is the typed
// invalid-response-format error, never malformed text passed to the client.
func Normalize(shape Shape, raw string, schema *gojsonschema.Schema) (Result, error) {
	if shape == ShapeMarkdown {
		return Result{Shape: ShapeMarkdown, Text: raw}, nil
	}

	cleaned := StripFences(raw)
	if !json.Valid([]byte(cleaned)) {
		extracted, ok := ExtractJSON(cleaned)
		if !ok {
			return Result{}, apierrors.NewInvalidResponseFormatError("no JSON document found in model output")
		}
		cleaned = extracted
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Result{}, apierrors.NewInvalidResponseFormatError(fmt.Sprintf("parse model output: %v", err))
	}

	if schema != nil {
		docLoader := gojsonschema.NewStringLoader(cleaned)
		res, err := schema.Validate(docLoader)
		if err != nil {
			return Result{}, apierrors.NewInvalidResponseFormatError(fmt.Sprintf("validate model output: %v", err))
		}
		if !res.Valid() {
			msgs := make([]string, 0, len(res.Errors()))
			for _, e := range res.Errors() {
				msgs = append(msgs, e.String())
			}
			return Result{}, apierrors.NewInvalidResponseFormatError(strings.Join(msgs, "; "))
		}
	}

	return Result{Shape: ShapeJSON, Text: cleaned, JSON: json.RawMessage(cleaned)}, nil
}

// MustSchema compiles a JSON schema literal at package init time.
func MustSchema(schemaJSON string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid endpoint schema: %v", err))
	}
	return schema
}

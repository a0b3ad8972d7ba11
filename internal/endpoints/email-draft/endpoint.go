// internal/endpoints/email-draft/endpoint.go
package emaildraft

import (
	"fmt"

	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/pipeline"
)

const Name = "email-draft"

var draftSchema = pipeline.MustSchema(`{
	"type": "object",
	"required": ["subject", "body"],
	"properties": {
		"subject": {"type": "string"},
		"body": {"type": "string"}
	}
}`)

// Draft is the bespoke success body for a drafted email.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func New() pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "purpose", Type: "string", Required: true, MaxLength: 500},
			{Field: "recipient", Type: "string", Required: true, MaxLength: 200},
			{Field: "tone", Type: "string", Enum: []string{"formal", "friendly", "neutral"}},
		},
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeJSON,
		Schema: draftSchema,
		Respond: func(res pipeline.Result) (interface{}, error) {
			return pipeline.DecodeInto(res, &Draft{})
		},
	}
}

func buildPrompt(fields map[string]interface{}) string {
	purpose := pipeline.StringField(fields, "purpose", "not specified")
	recipient := pipeline.StringField(fields, "recipient", "not specified")
	tone := pipeline.StringField(fields, "tone", "neutral")

	return fmt.Sprintf(`You are an expert business communication writer.
Draft an email.
Purpose: %s
Recipient: %s
Tone: %s

Return ONLY a raw JSON object with these keys and no surrounding text:
- "subject": a subject line of at most 80 characters
- "body": the email body, plain text, at most 200 words

Do not wrap the JSON in Markdown code fences.`, purpose, recipient, tone)
}

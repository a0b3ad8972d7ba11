// internal/endpoints/code-explain/endpoint.go
package codeexplain

import (
	"fmt"

	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/pipeline"
)

const Name = "code-explain"

func New() pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "code", Type: "string", Required: true, MaxLength: 20000},
			{Field: "language", Type: "string"},
		},
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeMarkdown,
	}
}

func buildPrompt(fields map[string]interface{}) string {
	code := pipeline.StringField(fields, "code", "")
	language := pipeline.StringField(fields, "language", "not specified")

	return fmt.Sprintf(`You are an expert software engineer and code reviewer.
Explain the following code (language: %s):

%s

Answer as Markdown with these headings in order:
## Summary
## Walkthrough
## Pitfalls

Keep the whole answer under 400 words and do not repeat the code back.`,
		language, code)
}

// internal/endpoints/image-describe/endpoint.go
package imagedescribe

import (
	"fmt"

	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/gemini"
	"ai-gateway/internal/pipeline"
)

const Name = "image-describe"

func New() pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "image", Type: "string", Required: true},
			{Field: "question", Type: "string", MaxLength: 500},
		},
		Prompt:     buildPrompt,
		Shape:      pipeline.ShapeMarkdown,
		Attachment: attachment,
	}
}

// attachment decodes the data URI. A malformed URI degrades to a text-only
// request; the model then answers from the prompt alone.
func attachment(fields map[string]interface{}) *gemini.Attachment {
	uri, _ := fields["image"].(string)
	att, ok := gemini.ParseDataURI(uri)
	if !ok {
		return nil
	}
	return att
}

func buildPrompt(fields map[string]interface{}) string {
	question := pipeline.StringField(fields, "question", "Describe this image in detail.")

	return fmt.Sprintf(`You are an expert at visual analysis.
%s

Answer as Markdown. If no image is attached, say so briefly instead of guessing.
Keep the answer under 250 words.`, question)
}

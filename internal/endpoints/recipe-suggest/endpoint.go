// internal/endpoints/recipe-suggest/endpoint.go
package recipesuggest

import (
	"fmt"

	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/pipeline"
)

const Name = "recipe-suggest"

func New() pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "ingredients", Type: "string", Required: true, MaxLength: 1000},
			{Field: "language", Type: "string"},
		},
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeMarkdown,
	}
}

func buildPrompt(fields map[string]interface{}) string {
	ingredients := pipeline.StringField(fields, "ingredients", "not specified")
	language := pipeline.StringField(fields, "language", "English")

	return fmt.Sprintf(`You are an expert home cook.
Suggest one recipe that uses these ingredients: %s

Answer in %s, formatted as Markdown with these headings in order:
## Name
## Ingredients
## Steps
## Tip

Keep the whole answer under 350 words. Assume common pantry staples are available.`,
		ingredients, language)
}

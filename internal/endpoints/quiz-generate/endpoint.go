// internal/endpoints/quiz-generate/endpoint.go
package quizgenerate

import (
	"fmt"

	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/pipeline"
)

const Name = "quiz-generate"

// questionSchema pins the model output to exactly five questions with four
// options each. Anything else fails normalization instead of reaching the
// client half-formed.
var questionSchema = pipeline.MustSchema(`{
	"type": "array",
	"minItems": 5,
	"maxItems": 5,
	"items": {
		"type": "object",
		"required": ["question", "options", "answer", "explanation"],
		"properties": {
			"question": {"type": "string"},
			"options": {"type": "array", "minItems": 4, "maxItems": 4, "items": {"type": "string"}},
			"answer": {"type": "string"},
			"explanation": {"type": "string"}
		}
	}
}`)

func New() pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "topic", Type: "string", Required: true, MaxLength: 200},
			{Field: "difficulty", Type: "string", Enum: []string{"easy", "medium", "hard"}},
		},
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeJSON,
		Schema: questionSchema,
	}
}

func buildPrompt(fields map[string]interface{}) string {
	topic := pipeline.StringField(fields, "topic", "general knowledge")
	difficulty := pipeline.StringField(fields, "difficulty", "medium")

	return fmt.Sprintf(`You are an expert quiz author.
Create a multiple-choice quiz about: %s
Difficulty level: %s

Return ONLY a raw JSON array with exactly 5 elements and no surrounding text.
Each element must be an object with these keys:
- "question": the question text
- "options": an array of exactly 4 answer options
- "answer": the correct option, copied verbatim from "options"
- "explanation": one sentence explaining the correct answer

Do not wrap the JSON in Markdown code fences.`, topic, difficulty)
}

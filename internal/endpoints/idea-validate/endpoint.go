// internal/endpoints/idea-validate/endpoint.go
package ideavalidate

import (
	"fmt"

	"ai-gateway/internal/common/config"
	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/pipeline"
)

const Name = "idea-validate"

var verdictSchema = pipeline.MustSchema(`{
	"type": "object",
	"required": ["category", "riskLevel", "adviceText"],
	"properties": {
		"category": {"type": "string"},
		"riskLevel": {"type": "string", "enum": ["low", "medium", "high"]},
		"adviceText": {"type": "string"}
	}
}`)

// Verdict is the bespoke success body for an idea assessment.
type Verdict struct {
	Category   string `json:"category"`
	RiskLevel  string `json:"riskLevel"`
	AdviceText string `json:"adviceText"`
}

func New(limits config.LimitsConfig) pipeline.Endpoint {
	return pipeline.Endpoint{
		Name: Name,
		Rules: []validation.Rule{
			{Field: "idea", Type: "string", Required: true, MaxLength: limits.IdeaMaxChars},
		},
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeJSON,
		Schema: verdictSchema,
		Respond: func(res pipeline.Result) (interface{}, error) {
			return pipeline.DecodeInto(res, &Verdict{})
		},
	}
}

func buildPrompt(fields map[string]interface{}) string {
	idea := pipeline.StringField(fields, "idea", "not specified")

	return fmt.Sprintf(`You are an expert startup advisor and market analyst.
Assess the following business idea:

%s

Return ONLY a raw JSON object with these keys and no surrounding text:
- "category": the market category of the idea, in 2-4 words
- "riskLevel": one of "low", "medium", "high"
- "adviceText": actionable advice in at most 120 words

Do not wrap the JSON in Markdown code fences.`, idea)
}

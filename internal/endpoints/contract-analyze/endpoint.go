// internal/endpoints/contract-analyze/endpoint.go
package contractanalyze

import (
	"fmt"
	"io"
	"net/http"

	"ai-gateway/internal/common/config"
	apierrors "ai-gateway/internal/common/errors"
	"ai-gateway/internal/common/extract"
	"ai-gateway/internal/pipeline"
)

const Name = "contract-analyze"

// FileField is the multipart form field carrying the contract document.
const FileField = "contract"

var analysisSchema = pipeline.MustSchema(`{
	"type": "object",
	"required": ["summary", "riskLevel", "keyClauses"],
	"properties": {
		"summary": {"type": "string"},
		"riskLevel": {"type": "string", "enum": ["low", "medium", "high"]},
		"keyClauses": {"type": "array", "items": {"type": "string"}}
	}
}`)

// Analysis is the bespoke success body for a contract review.
type Analysis struct {
	Summary    string   `json:"summary"`
	RiskLevel  string   `json:"riskLevel"`
	KeyClauses []string `json:"keyClauses"`
}

// Extractor converts document bytes to plain text. Injected so tests can
// stub the document collaborator.
type Extractor func(filename string, data []byte) (string, error)

func New(limits config.LimitsConfig, extractText Extractor) pipeline.Endpoint {
	if extractText == nil {
		extractText = extract.Text
	}

	return pipeline.Endpoint{
		Name:   Name,
		Parse:  parseUpload(limits.UploadMaxBytes, extractText),
		Prompt: buildPrompt,
		Shape:  pipeline.ShapeJSON,
		Schema: analysisSchema,
		Respond: func(res pipeline.Result) (interface{}, error) {
			return pipeline.DecodeInto(res, &Analysis{})
		},
	}
}

// parseUpload validates the multipart upload and runs text extraction. A
// file at exactly the byte limit is accepted; one byte over is rejected.
func parseUpload(maxBytes int64, extractText Extractor) func(r *http.Request) (map[string]interface{}, error) {
	return func(r *http.Request) (map[string]interface{}, error) {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, apierrors.NewValidationError(FileField, "request is not a valid multipart form")
		}

		file, header, err := r.FormFile(FileField)
		if err != nil {
			return nil, apierrors.NewValidationError(FileField, "file is required")
		}
		defer file.Close()

		if header.Size > maxBytes {
			return nil, apierrors.NewValidationError(FileField,
				fmt.Sprintf("file exceeds the %d byte limit", maxBytes))
		}
		if !extract.SupportedType(header.Filename) {
			return nil, apierrors.NewValidationError(FileField, "file must be a PDF or DOCX document")
		}

		data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
		if err != nil {
			return nil, apierrors.NewInternalError(err)
		}
		if int64(len(data)) > maxBytes {
			return nil, apierrors.NewValidationError(FileField,
				fmt.Sprintf("file exceeds the %d byte limit", maxBytes))
		}

		text, err := extractText(header.Filename, data)
		if err != nil {
			return nil, apierrors.NewExtractionFailedError(err.Error())
		}

		return map[string]interface{}{
			"contractText": text,
			"filename":     header.Filename,
		}, nil
	}
}

func buildPrompt(fields map[string]interface{}) string {
	text := pipeline.StringField(fields, "contractText", "")

	return fmt.Sprintf(`You are an expert contract lawyer.
Review the following contract text:

%s

Return ONLY a raw JSON object with these keys and no surrounding text:
- "summary": a plain-language summary in at most 150 words
- "riskLevel": one of "low", "medium", "high" for the signing party
- "keyClauses": an array of short strings, one per clause worth attention

Do not wrap the JSON in Markdown code fences.`, text)
}

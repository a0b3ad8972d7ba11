// internal/endpoints/idea-validate/endpoint_test.go
package ideavalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-gateway/internal/common/config"
	"ai-gateway/internal/common/logger"
	"ai-gateway/internal/common/observability"
	"ai-gateway/internal/gemini"
	"ai-gateway/internal/pipeline"
)

type stubGenerator struct {
	calls    int
	response string
}

func (s *stubGenerator) Ready() bool { return true }

func (s *stubGenerator) Generate(ctx context.Context, req gemini.Request) (string, error) {
	s.calls++
	return s.response, nil
}

func post(t *testing.T, gen gemini.Generator, body string) *httptest.ResponseRecorder {
	t.Helper()
	p := pipeline.New(gen, logger.NewTestLogger(t), &observability.Observability{})
	handler := p.Handler(New(config.LimitsConfig{IdeaMaxChars: 500}))

	req := httptest.NewRequest(http.MethodPost, "/api/ai/idea-validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const verdictJSON = `{
	"category": "food delivery",
	"riskLevel": "medium",
	"adviceText": "Validate demand with a small pilot before scaling."
}`

func TestIdeaValidate_Success(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + verdictJSON + "\n```"}

	rec := post(t, gen, `{"idea": "an app that delivers soup by drone"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var verdict Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.Equal(t, "food delivery", verdict.Category)
	assert.Equal(t, "medium", verdict.RiskLevel)
	assert.NotEmpty(t, verdict.AdviceText)
}

func TestIdeaValidate_LengthBoundary(t *testing.T) {
	gen := &stubGenerator{response: verdictJSON}

	body, err := json.Marshal(map[string]string{"idea": strings.Repeat("a", 500)})
	require.NoError(t, err)
	rec := post(t, gen, string(body))
	assert.Equal(t, http.StatusOK, rec.Code, "500 characters is within the limit")

	gen = &stubGenerator{response: verdictJSON}
	body, err = json.Marshal(map[string]string{"idea": strings.Repeat("a", 501)})
	require.NoError(t, err)
	rec = post(t, gen, string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestIdeaValidate_MissingIdea(t *testing.T) {
	gen := &stubGenerator{response: verdictJSON}

	rec := post(t, gen, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "idea")
	assert.Equal(t, 0, gen.calls)
}

func TestIdeaValidate_UnknownRiskLevelRejected(t *testing.T) {
	gen := &stubGenerator{response: `{
		"category": "food delivery",
		"riskLevel": "catastrophic",
		"adviceText": "Do not."
	}`}

	rec := post(t, gen, `{"idea": "soup drones"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid response format from AI")
}

func TestIdeaValidate_MissingKeyNotDefaulted(t *testing.T) {
	// A verdict without adviceText fails outright rather than being
	// back-filled with an empty string.
	gen := &stubGenerator{response: `{"category": "food delivery", "riskLevel": "low"}`}

	rec := post(t, gen, `{"idea": "soup drones"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid response format from AI")
}

func TestBuildPrompt(t *testing.T) {
	fields := map[string]interface{}{"idea": "soup drones"}

	prompt := buildPrompt(fields)

	assert.Contains(t, prompt, "soup drones")
	assert.Contains(t, prompt, `"riskLevel"`)
	assert.Equal(t, prompt, buildPrompt(fields), "prompt is deterministic")
}

// internal/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-gateway/internal/common/config"
	apierrors "ai-gateway/internal/common/errors"
	"ai-gateway/internal/common/logger"
	"ai-gateway/internal/common/metrics"
)

// Request is one prompt sent to the generative model, with at most one
// inlined attachment.
type Request struct {
	Prompt     string
	Attachment *Attachment
}

// Generator is the model gateway injected into every endpoint handler.
// Ready reports whether a credential is configured; handlers must check it
// before Generate so an unconfigured gateway is never invoked.
type Generator interface {
	Ready() bool
	Generate(ctx context.Context, req Request) (string, error)
}

// Unconfigured is the typed no-credential variant of the gateway. Every
// Generate call fails with the stable "not configured" error.
type Unconfigured struct{}

func (Unconfigured) Ready() bool { return false }

func (Unconfigured) Generate(ctx context.Context, req Request) (string, error) {
	return "", apierrors.NewNotConfiguredError()
}

// Client calls the generativelanguage :generateContent endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	maxAttempts int
	backoff     time.Duration
	httpClient  *http.Client
	logger      logger.Logger

	// sleep is swapped out in tests to assert the backoff schedule.
	sleep func(time.Duration)
}

// NewClient builds the gateway from configuration. When no API key is
// present it returns the Unconfigured variant so callers are forced to
// handle the missing-credential case.
func NewClient(cfg config.GeminiConfig, log logger.Logger) Generator {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Unconfigured{}
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		maxAttempts: cfg.MaxAttempts,
		backoff:     config.GetDuration(cfg.RetryBackoff),
		httpClient:  &http.Client{
			// No client timeout; cancellation comes from the request context.
		},
		logger: log.With(map[string]interface{}{"component": "gemini", "model": cfg.Model}),
		sleep:  time.Sleep,
	}
}

func (c *Client) Ready() bool { return true }

// Generate sends the prompt and returns the raw model text. Rate-limit
// responses are retried with a fixed backoff, up to maxAttempts total
// attempts; every other failure is returned on the first occurrence.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return "", apierrors.NewInternalError(fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	start := time.Now()
	defer func() {
		metrics.ModelCallDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.ModelRetriesTotal.WithLabelValues(c.model).Inc()
			c.logger.Warn("rate limited, backing off", map[string]interface{}{
				"attempt": attempt,
				"backoff": c.backoff.String(),
			})
			c.sleep(c.backoff)
			if ctx.Err() != nil {
				return "", apierrors.NewUpstreamFailedError(ctx.Err())
			}
		}

		text, retryable, err := c.doAttempt(ctx, url, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", apierrors.NewRateLimitedError(fmt.Sprintf("gave up after %d attempts: %v", c.maxAttempts, lastErr))
}

// doAttempt performs one HTTP round trip. retryable is true only for the
// rate-limit case.
func (c *Client) doAttempt(ctx context.Context, url string, body []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, apierrors.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", false, apierrors.NewUpstreamFailedError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, apierrors.NewUpstreamFailedError(err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, apierrors.NewRateLimitedError(strings.TrimSpace(string(respBody)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, apierrors.NewUpstreamFailedError(
			fmt.Errorf("model API status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", false, apierrors.NewUpstreamFailedError(fmt.Errorf("decode response: %w", err))
	}
	if genResp.Error != nil {
		return "", false, apierrors.NewUpstreamFailedError(fmt.Errorf("model API error: %s", genResp.Error.Message))
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", false, apierrors.NewUpstreamFailedError(fmt.Errorf("no completion returned"))
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), false, nil
}

func (c *Client) buildRequest(req Request) generateRequest {
	parts := []part{{Text: req.Prompt}}
	if req.Attachment != nil {
		parts = append(parts, part{
			InlineData: &inlineData{
				MIMEType: req.Attachment.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(req.Attachment.Data),
			},
		})
	}

	return generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	}
}

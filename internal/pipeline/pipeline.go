// internal/pipeline/pipeline.go

// Package pipeline implements the shared request pipeline behind every AI
// endpoint: validate fields, render the prompt, call the model gateway,
// normalize the output, and map failures onto the error taxonomy. Endpoints
// differ only in their Endpoint definition.
package pipeline

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	apierrors "ai-gateway/internal/common/errors"
	"ai-gateway/internal/common/logger"
	"ai-gateway/internal/common/metrics"
	"ai-gateway/internal/common/observability"
	"ai-gateway/internal/common/validation"
	"ai-gateway/internal/gemini"

	"github.com/xeipuuv/gojsonschema"
)

// maxJSONBody bounds plain JSON request bodies. File uploads have their own
// limit in the endpoint's Parse.
const maxJSONBody = 1 << 20

// Endpoint defines one member of the AI endpoint family. Prompt must be a
// pure function of its fields.
type Endpoint struct {
	Name  string
	Rules []validation.Rule

	// Parse overrides the default JSON body decoding, e.g. for multipart
	// uploads. It may return an *APIError for validation failures.
	Parse func(r *http.Request) (map[string]interface{}, error)

	Prompt func(fields map[string]interface{}) string

	Shape  Shape
	Schema *gojsonschema.Schema

	// Attachment extracts an optional inlined binary from the fields.
	Attachment func(fields map[string]interface{}) *gemini.Attachment

	// Respond maps the normalized result onto a bespoke success body. When
	// nil the endpoint answers with {result: string}.
	Respond func(res Result) (interface{}, error)
}

// ResultEnvelope is the default success body.
type ResultEnvelope struct {
	Result string `json:"result"`
}

// Pipeline holds the collaborators shared by all endpoints.
type Pipeline struct {
	generator gemini.Generator
	logger    logger.Logger
	obs       *observability.Observability
}

func New(generator gemini.Generator, log logger.Logger, obs *observability.Observability) *Pipeline {
	return &Pipeline{
		generator: generator,
		logger:    log,
		obs:       obs,
	}
}

// Handler builds the http.HandlerFunc for one endpoint definition.
func (p *Pipeline) Handler(ep Endpoint) http.HandlerFunc {
	log := p.logger.With(map[string]interface{}{"endpoint": ep.Name})

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := log
		if id := RequestIDFromContext(r.Context()); id != "" {
			reqLog = log.With(map[string]interface{}{"requestId": id})
		}

		body, err := p.process(r, ep, reqLog)
		if err != nil {
			p.recordFailure(r, ep.Name, err, start)
			apierrors.WriteError(w, reqLog, err)
			return
		}

		metrics.RequestsTotal.WithLabelValues(ep.Name, "ok").Inc()
		metrics.RequestDuration.WithLabelValues(ep.Name).Observe(time.Since(start).Seconds())
		p.obs.RecordRequest(r.Context(), ep.Name, "ok")
		p.obs.RecordRequestDuration(r.Context(), ep.Name, time.Since(start))

		reqLog.Info("request completed", map[string]interface{}{
			"durationMs": time.Since(start).Milliseconds(),
		})

		writeJSON(w, http.StatusOK, body)
	}
}

// process runs the pipeline stages for one request. Validation rejects
// before any network call; the gateway is only invoked once Ready.
func (p *Pipeline) process(r *http.Request, ep Endpoint, log logger.Logger) (interface{}, error) {
	fields, err := p.parse(r, ep)
	if err != nil {
		return nil, err
	}

	if result := validation.Check(fields, ep.Rules); !result.Valid {
		violation := result.First()
		return nil, apierrors.NewValidationError(violation.Field, violation.Message)
	}

	if !p.generator.Ready() {
		return nil, apierrors.NewNotConfiguredError()
	}

	req := gemini.Request{Prompt: ep.Prompt(fields)}
	if ep.Attachment != nil {
		req.Attachment = ep.Attachment(fields)
	}

	raw, err := p.generator.Generate(r.Context(), req)
	if err != nil {
		return nil, err
	}

	res, err := Normalize(ep.Shape, raw, ep.Schema)
	if err != nil {
		return nil, err
	}

	if ep.Respond != nil {
		return ep.Respond(res)
	}
	return ResultEnvelope{Result: res.String()}, nil
}

func (p *Pipeline) parse(r *http.Request, ep Endpoint) (map[string]interface{}, error) {
	if ep.Parse != nil {
		return ep.Parse(r)
	}
	return decodeJSONBody(r)
}

func (p *Pipeline) recordFailure(r *http.Request, endpoint string, err error, start time.Time) {
	apiErr := apierrors.Normalize(err)
	metrics.RequestsTotal.WithLabelValues(endpoint, "error").Inc()
	metrics.RequestsFailed.WithLabelValues(endpoint, string(apiErr.Code)).Inc()
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	p.obs.RecordRequest(r.Context(), endpoint, "error")
	p.obs.RecordRequestDuration(r.Context(), endpoint, time.Since(start))
}

// decodeJSONBody reads the request body into a field map. An unparsable or
// non-object body is a validation failure, not an internal error.
func decodeJSONBody(r *http.Request) (map[string]interface{}, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return nil, apierrors.NewMalformedBodyError(err)
	}

	fields := map[string]interface{}{}
	if len(body) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apierrors.NewMalformedBodyError(err)
	}
	return fields, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeInto unmarshals a JSON-shaped result into a bespoke response struct.
// A mismatch here means the schema and the struct disagree, which is a
// server bug, not a model failure.
func DecodeInto(res Result, out interface{}) (interface{}, error) {
	if err := json.Unmarshal(res.JSON, out); err != nil {
		return nil, apierrors.NewInternalError(errors.New("response struct does not match endpoint schema"))
	}
	return out, nil
}

// StringField returns a string field, or fallback when absent or empty.
func StringField(fields map[string]interface{}, name, fallback string) string {
	if v, ok := fields[name].(string); ok && v != "" {
		return v
	}
	return fallback
}

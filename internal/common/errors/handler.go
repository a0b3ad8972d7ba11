// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the JSON body returned on every failure path.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// Logger is the minimal logging surface the writer needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// WriteError converts any error into the ErrorEnvelope and writes it with
// the mapped status. Internal details are logged, never sent to the client.
func WriteError(w http.ResponseWriter, log Logger, err error) {
	apiErr := Normalize(err)

	log.Error("request failed", map[string]interface{}{
		"errorCode":     string(apiErr.Code),
		"message":       apiErr.Message,
		"details":       apiErr.Details,
		"retryable":     apiErr.Retryable,
		"errorCategory": GetErrorCategory(apiErr.Code),
		"status":        apiErr.HTTPStatus(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus())
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{Error: apiErr.Message})
}

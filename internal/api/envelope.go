// Package api is the HTTP surface: request decoding, the response
// envelope and the router.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/log"
	"github.com/tailtown/pricingservice/internal/metrics"
)

// Envelope is the single response shape for every endpoint: exactly one
// of Data or Error is set.
type Envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries a machine-readable code with a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: data})
}

// respondError maps domain error codes onto HTTP statuses. Anything
// without a domain code is an internal error and the message is not
// echoed to the client.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	body := ErrorBody{Code: domain.ErrCodeInternal, Message: "internal error"}
	status := http.StatusInternalServerError

	if de := domain.GetDomainError(err); de != nil {
		body = ErrorBody{Code: de.Code, Message: de.Message, Details: de.Details}
		switch de.Code {
		case domain.ErrCodeInvalidInput:
			status = http.StatusBadRequest
		case domain.ErrCodeNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeInvalidConfig:
			status = http.StatusUnprocessableEntity
		}
	}

	if status == http.StatusInternalServerError {
		log.Error(ctx, "request failed", zap.Error(err))
		metrics.RecordError("internal", "api")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Error: &body})
}

func decodeJSON(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.NewInvalidInputError("malformed request body", err.Error())
	}
	return nil
}

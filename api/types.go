// Package api - request and response types for the HTTP surface.
// Domain payloads (profiles, specs, estimates) keep their camelCase wire
// names; envelopes and metadata use snake_case.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cloudguide/adapters/storage"
	"cloudguide/core/advisory"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// DiskTypeResponse is the answer to GET /pricing/disk-type
type DiskTypeResponse struct {
	UseCase  types.UseCase  `json:"use_case"`
	DiskType types.DiskType `json:"disk_type"`
}

// CreateAnalysisRequest is the body of POST /analyses
type CreateAnalysisRequest struct {
	UserID    string                   `json:"user_id"`
	Title     string                   `json:"title"`
	Config    storage.AnalysisConfig   `json:"config"`
	Estimates []types.ProviderEstimate `json:"estimates"`
	Advisory  *advisory.Result         `json:"advisory,omitempty"`
	Trends    json.RawMessage          `json:"trends,omitempty"`
}

// ListAnalysesResponse wraps a page of analyses
type ListAnalysesResponse struct {
	Analyses []*storage.SavedAnalysis `json:"analyses"`
	Count    int                      `json:"count"`
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Deleted string `json:"deleted"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// statusFor maps a domain error type to an HTTP status
func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeInput, errors.TypeParsing:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypeConfig:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Parsing("invalid request body", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	requestID := RequestIDFrom(r.Context())

	fields := []zap.Field{
		logging.RequestID(requestID),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logging.Error("request failed", fields...)
	} else {
		logging.Debug("request rejected", fields...)
	}

	message := err.Error()
	var e *errors.Error
	if errors.As(err, &e) {
		message = e.Message
		if e.Cause != nil {
			message += ": " + e.Cause.Error()
		}
	}
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:      string(errors.TypeOf(err)),
		Message:   message,
		RequestID: requestID,
	}}, status)
}

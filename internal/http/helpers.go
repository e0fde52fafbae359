package http

import (
	"encoding/json"
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/dogbodymind/go-site/internal/content"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

const requestIDHeader = "X-Request-ID"

// errUnroutablePath marks a request whose locale path segment is not a
// supported locale, which only happens for paths the rewrite middleware never
// produced.
var errUnroutablePath = errors.New("http: no route for path")

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, logger interfaces.Logger, err error) {
	status, payload := mapError(err)
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, errUnroutablePath) {
		return http.StatusNotFound, errorResponse{Error: "not_found"}
	}

	var invalidLanguage *content.InvalidLanguageError
	if errors.As(err, &invalidLanguage) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Code:    invalidLanguage.Code(),
			Message: invalidLanguage.Error(),
		}
	}

	var missing *content.MissingReferenceError
	if errors.As(err, &missing) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Code:    missing.Code(),
			Message: missing.Error(),
		}
	}

	var required *content.RequiredFieldError
	if errors.As(err, &required) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "unprocessable",
			Code:    required.Code(),
			Message: required.Error(),
		}
	}

	var query *content.QueryFailedError
	if errors.As(err, &query) {
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_error",
			Code:    query.Code(),
			Message: query.Error(),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// requestID tags every request with a correlation ID, preserving one supplied
// by an upstream proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, status int, v any, logger logrus.FieldLogger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.WithError(err).Error("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.WithError(err).Warn("Error writing response")
	}
}

// writeError maps domain failures to 4xx and anything else to a generic 500.
func writeError(w http.ResponseWriter, err error, logger logrus.FieldLogger) {
	var tradeErr *domain.TradeError
	switch {
	case errors.As(err, &tradeErr):
		writeJSON(w, statusForKind(tradeErr.Kind), errorResponse{
			Error:   string(tradeErr.Kind),
			Message: tradeErr.Message,
			Key:     tradeErr.Key,
		}, logger)
	case errors.Is(err, service.ErrEmptyQuestion), errors.Is(err, service.ErrQuestionTooLong):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "InvalidQuestionError",
			Message: err.Error(),
		}, logger)
	default:
		logger.WithError(err).Error("Unexpected error handling request")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "InternalError",
			Message: "internal server error",
		}, logger)
	}
}

func writeBadRequest(w http.ResponseWriter, message string, logger logrus.FieldLogger) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "BadRequest",
		Message: message,
	}, logger)
}

func statusForKind(kind domain.ErrorKind) int {
	if kind == domain.KindCostOverflow {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// requireJSON rejects bodies that are not declared as JSON.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

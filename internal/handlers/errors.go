package handlers

import (
	"errors"
	"net/http"
	"time"

	"studyBuddy/internal/logger"
	"studyBuddy/internal/service"

	"go.uber.org/zap"
)

const msgInternal = "Internal server error"

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Business error",
		zap.String("error_code", businessErr.Code),
		zap.String("message", businessErr.Message),
		zap.Any("details", businessErr.Details),
		zap.Int("http_status", statusCode))

	responseWithError(w, statusCode, businessErr.Message)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// responseWithServiceError writes a business error as is and hides anything
// else behind a 500.
func responseWithServiceError(w http.ResponseWriter, r *http.Request, err error, operation string, start time.Time) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Service error", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr),
		zap.Duration("ms", time.Since(start)))

	responseWithError(w, http.StatusInternalServerError, msgInternal)
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"studyBuddy/internal/logger"

	"go.uber.org/zap"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgUnsupportedContent = "Content-Type must be application/json"

	maxBodyBytes = 1 << 20
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// requireJSON answers 415 when the request does not declare a JSON body.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if checkContentType(r, "application/json") {
		return true
	}

	logger.Warn("HTTP: Wrong content type",
		zap.String("expected", "application/json"),
		zap.String("received", r.Header.Get("Content-Type")),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusUnsupportedMediaType, msgUnsupportedContent)
	return false
}

// decodeJSON reads the body into dst. An empty body decodes as an empty
// object, leaving dst at its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func isTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-machine/src/eventmodels"
)

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("SetResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

// setWebErrorResponse takes the status from a wrapped WebError, falling back to 500.
func setWebErrorResponse(errType string, err error, w http.ResponseWriter) error {
	var webErr *eventmodels.WebError
	if errors.As(err, &webErr) {
		return setErrorResponse(errType, webErr.StatusCode, err, w)
	}

	log.Warnf("failed to get status code from error: %v", err)
	return setErrorResponse(errType, 500, err, w)
}

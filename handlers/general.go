// Package handlers provides HTTP handlers for the settings service.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/picdiskslimmer/picdisk/errors"
	log "github.com/sirupsen/logrus"
)

var (
	EmptyBodyError = &errors.RequestError{
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("empty body"),
	}
	InvalidBodyError = &errors.RequestError{
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("invalid body"),
	}
)

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.
		WithFields(log.Fields{"error": err, "path": r.URL.Path}).
		Warn("Error while handling request")

	// Check if the error was an errors.RequestError
	var reqErr *errors.RequestError
	if stderrors.As(err, &reqErr) {
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	// Otherwise do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return EmptyBodyError
	}
	return nil
}

package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bwise1/lifegroup_locator/util"
	"github.com/bwise1/lifegroup_locator/util/tracing"
)

// ServerResponse is the envelope every handler returns.
type ServerResponse struct {
	Err        error       `json:"-"`
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	if tc != nil {
		log.Printf("[Error]: %s: %v (%s)", message, err, tc)
	} else {
		log.Printf("[Error]: %s: %v", message, err)
	}

	return &ServerResponse{
		Err:        err,
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, content []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(content); err != nil {
		log.Printf("[Error]: unable to write json response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	log.Printf("[Error]: %s: %v", message, err)

	resp := ServerResponse{Message: message, Status: status}
	content, _ := json.Marshal(resp)
	writeJSONResponse(w, content, util.StatusCode(status))
}

package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/odezzy/wall_api/util"
	"github.com/odezzy/wall_api/util/tracing"
)

// ServerResponse is the uniform response envelope.
type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	requestID := ""
	if tc != nil {
		requestID = tc.RequestID
	}
	if err != nil {
		log.Printf("[%s] %s: %v", requestID, message, err)
	} else {
		log.Printf("[%s] %s", requestID, message)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	resp := ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
	respByte, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

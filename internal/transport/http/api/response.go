package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody matches the error shape the previous incarnation of this API
// exposed: a single detail string plus optional per-field diagnostics.
type ErrorBody struct {
	Detail    string `json:"detail"`
	Fields    any    `json:"fields,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Fail(w http.ResponseWriter, status int, detail, requestID string) {
	WriteJSON(w, status, ErrorBody{Detail: detail, RequestID: requestID})
}

func FailWithFields(w http.ResponseWriter, status int, detail string, fields any, requestID string) {
	WriteJSON(w, status, ErrorBody{Detail: detail, Fields: fields, RequestID: requestID})
}

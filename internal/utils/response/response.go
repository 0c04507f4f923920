// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// The error bodies are part of the API contract and fixed:
//
//	404             → {"detail": "Not found"}
//	400 (PATCH)     → {"message": "Invalid data"}
//	422             → {"detail": [{"field": "...", "error": "..."}, ...]}
//	500             → {"status": "error", "error": "..."}
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the generic envelope for unexpected (5xx) errors.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Detail carries the fixed not-found body.
type Detail struct {
	Detail string `json:"detail"`
}

// Message carries the fixed invalid-data body used by PATCH.
type Message struct {
	Message string `json:"message"`
}

// FieldError names one offending field and the kind of rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationFailure is the 422 body: a machine-readable list of
// per-field diagnostics, produced before any store access happens.
type ValidationFailure struct {
	Detail []FieldError `json:"detail"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// json.NewEncoder(w) streams directly into w, avoiding an
	// intermediate buffer. Encode() appends a trailing newline.
	return json.NewEncoder(w).Encode(data)
}

// NotFound returns the fixed body shared by every id-based lookup miss.
func NotFound() Detail {
	return Detail{Detail: "Not found"}
}

// InvalidData returns the fixed body for PATCH rejections.
func InvalidData() Message {
	return Message{Message: "Invalid data"}
}

// GeneralError wraps any Go error into the generic envelope.
// Use this for unexpected errors (DB failures and the like).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// FieldFailure builds a single-entry ValidationFailure. Handlers use it
// for problems the validator never sees: undecodable bodies and
// non-integer path parameters.
func FieldFailure(field, kind string) ValidationFailure {
	return ValidationFailure{Detail: []FieldError{{Field: field, Error: kind}}}
}

// ValidationError converts go-playground/validator failures into the
// 422 body, one entry per failing field.
//
// e.Field() yields the Go struct field name ("Name"); the wire contract
// wants the JSON key ("body.name"). All request fields are single
// lowercase words, so lowering the struct name is the JSON name.
func ValidationError(errs validator.ValidationErrors) ValidationFailure {
	fields := make([]FieldError, 0, len(errs))

	for _, e := range errs {
		fields = append(fields, FieldError{
			Field: "body." + strings.ToLower(e.Field()),
			Error: e.ActualTag(),
		})
	}

	return ValidationFailure{Detail: fields}
}

package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/logger"
)

const maxBodyBytes = 1 << 20

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes a simplified RFC 7807 problem body.
func WriteProblem(w http.ResponseWriter, code int, typ, detail string) {
	WriteJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError is the single place classified errors become responses.
// Internal errors are logged with their cause and answered generically.
func WriteError(w http.ResponseWriter, r *http.Request, lg *logger.Logger, err error) {
	code := StatusFor(err)
	kind := apperr.KindOf(err)
	if code >= http.StatusInternalServerError {
		lg.WithContext(r.Context()).Error("request_failed", err, map[string]any{
			"method": r.Method, "path": r.URL.Path,
		})
	} else {
		lg.WithContext(r.Context()).Debug("request_rejected", map[string]any{
			"method": r.Method, "path": r.URL.Path, "kind": string(kind), "detail": err.Error(),
		})
	}
	WriteProblem(w, code, string(kind), apperr.PublicMessage(err))
}

// DecodeJSON reads a JSON body into v. Malformed bodies are validation
// errors.
func DecodeJSON(r *http.Request, op string, v any) error {
	if r.Body == nil {
		return apperr.Validation(op, "body", "request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation(op, "body", "request body is required")
		}
		return apperr.Validation(op, "body", fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

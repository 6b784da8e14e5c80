// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/olegiv/taproom/internal/model"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes data as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes a single JSON object from the request body into dst.
// Failures wrap model.ErrValidation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", model.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", model.ErrValidation)
	}
	return nil
}

// statusForError maps an error to its HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrAuthentication), errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, model.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the message shown to clients for err. Internal
// failures are never described.
func publicMessage(err error) string {
	switch statusForError(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusUnauthorized:
		if errors.Is(err, model.ErrAuthentication) {
			return "invalid credentials"
		}
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusTooManyRequests:
		return "too many login attempts, try again later"
	default:
		return "internal error"
	}
}

// writeError logs nothing; callers log internal failures before calling it.
func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusForError(err), publicMessage(err))
}

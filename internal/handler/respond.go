package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/caviteventure/caviteventure-api/internal/payload"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error contract shared by every endpoint: a non-2xx
// status with a stable message field.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, payload.MessageResponse{Message: message})
}

// decodeJSON strictly decodes the request body into v, rejecting unknown
// fields before the payload reaches validation.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is required")
		}

		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

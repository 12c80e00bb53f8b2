// Package httpx has small JSON response helpers shared by the stub backend.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON payload with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[httpx] failed to encode response: %v", err)
	}
}

// RespondError writes an {error} payload with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondEnvelope writes a {success: true, data} payload.
func RespondEnvelope(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, map[string]any{"success": true, "data": data})
}

// RespondFailure writes a {success: false, error} payload.
func RespondFailure(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]any{"success": false, "error": message})
}

// RespondAudio writes a binary audio payload.
func RespondAudio(w http.ResponseWriter, contentType string, audio []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("[httpx] failed to write audio response: %v", err)
	}
}

package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with status code
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// JSONError writes a machine-readable error key in JSON. The presentation
// layer localizes the key; handlers never emit human sentences.
func JSONError(w http.ResponseWriter, status int, key string) {
	JSON(w, status, map[string]string{"error": key})
}

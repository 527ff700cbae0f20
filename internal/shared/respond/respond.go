// Package respond writes the JSON response envelope shared by every endpoint.
package respond

import (
	"encoding/json"
	"net/http"

	apperrors "worktrack/internal/shared/errors"
)

// Envelope is the top-level response shape. Success responses carry Data,
// error responses carry Error.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes a 200 response with a {success:true, data} body.
func Success(w http.ResponseWriter, data any) {
	SuccessStatus(w, http.StatusOK, data)
}

// SuccessStatus writes a success envelope with an explicit status code.
func SuccessStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// Error writes a {success:false, error} body. Application errors keep their
// status code and message; anything else becomes a generic 500 so internal
// detail never reaches the caller.
func Error(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		appErr = apperrors.Internal()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Error: appErr.Message})
}

// IsSuccess reports whether a serialized envelope has its success flag set.
// Malformed payloads count as unsuccessful.
func IsSuccess(payload []byte) bool {
	var env struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return false
	}
	return env.Success
}

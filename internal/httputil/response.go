package httputil

import (
	"encoding/json"
	"net/http"
)

// Result is the envelope every JSON endpoint answers with.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespondWithError writes a {success:false,message} payload.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Result{Success: false, Message: message})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		code = http.StatusInternalServerError
		response = []byte(`{"success":false,"message":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}


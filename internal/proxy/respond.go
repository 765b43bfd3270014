package proxy

import (
	"encoding/json"
	"io"
	"net/http"
)

// errorBody is the JSON envelope every endpoint uses for its own failures.
// Relayed upstream responses bypass it.
type errorBody struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// relay copies the upstream response to the caller verbatim: status code,
// raw body bytes, and the upstream content type when present. The body is
// never reinterpreted.
func relay(w http.ResponseWriter, resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

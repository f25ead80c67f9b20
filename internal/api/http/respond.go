package http

import (
	"encoding/json"
	nethttp "net/http"
)

// Handlers only — routes remain in main.go

// ActionResult is the uniform envelope for mutating endpoints. Message is
// always human-readable; ID is set on successful creates and updates.
type ActionResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w nethttp.ResponseWriter, message, id string) {
	writeJSON(w, nethttp.StatusOK, ActionResult{OK: true, Message: message, ID: id})
}

func fail(w nethttp.ResponseWriter, status int, message string) {
	writeJSON(w, status, ActionResult{OK: false, Message: message})
}

// errMessage prefers the storage error text, falling back to the per-op
// default when there is none.
func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, nethttp.StatusBadRequest, "bad json")
		return false
	}
	return true
}

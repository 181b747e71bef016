package handlers

import (
	"net/http"
)

// RequestStats reports process-lifetime request volume for the health
// endpoint. The router wires this to its atomic counters; it is nil in
// tests that construct handlers directly, in which case the fields are
// omitted from the response.
var RequestStats func() (inFlight, total int64)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{"status": "ok"}
	if RequestStats != nil {
		inFlight, total := RequestStats()
		res["requests_in_flight"] = inFlight
		res["requests_total"] = total
	}
	writeJSON(w, r, http.StatusOK, res)
}

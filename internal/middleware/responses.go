package middleware

import (
	"encoding/json"
	"net/http"
)

// refusal is the JSON body handed to htmx requests that are rejected before
// reaching a handler, so the client never swaps an HTML error page into a
// fragment target.
type refusal struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(refusal{Message: msg, Status: code})
		return
	}
	http.Error(w, msg, code)
}

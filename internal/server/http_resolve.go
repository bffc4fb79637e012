package server

import (
	"net/http"

	"github.com/alfredjeanlab/golink/internal/resolver"
)

// handleResolve handles GET /go and GET /v1/resolve. A matched keyword
// answers with a 302 to the target; anything else answers 200 with the
// ranked suggestion list.
func (s *LinkServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	out, err := s.resolver.Resolve(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve query")
		return
	}

	switch v := out.(type) {
	case resolver.Redirect:
		http.Redirect(w, r, v.URL, http.StatusFound)
	case resolver.Suggestions:
		writeJSON(w, http.StatusOK, v)
	default:
		writeError(w, http.StatusInternalServerError, "unknown resolution outcome")
	}
}

package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /healthz and the public
// resolution endpoint GET /go) must include a valid
// Authorization: Bearer <token> header.
func (s *LinkServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /go", s.handleResolve)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /v1/resolve", s.handleResolve)
	mux.HandleFunc("POST /v1/links", s.handleCreateLink)
	mux.HandleFunc("GET /v1/links", s.handleListLinks)
	mux.HandleFunc("GET /v1/links/{keyword}", s.handleGetLink)
	mux.HandleFunc("PATCH /v1/links/{keyword}", s.handleUpdateLink)
	mux.HandleFunc("DELETE /v1/links/{keyword}", s.handleDeleteLink)
	mux.HandleFunc("PUT /v1/links/{keyword}/lists", s.handleSetLinkLists)
	mux.HandleFunc("POST /v1/links/{keyword}/refresh-search", s.handleRefreshSearch)
	mux.HandleFunc("GET /v1/lists", s.handleListLists)
	mux.HandleFunc("GET /v1/lists/{slug}", s.handleGetList)
	mux.HandleFunc("DELETE /v1/lists/{slug}", s.handleDeleteList)
	mux.HandleFunc("POST /v1/import", s.handleImport)
	mux.HandleFunc("GET /v1/export", s.handleExport)

	var h http.Handler = mux
	h = AuthMiddleware(authToken, h)
	h = LoggingMiddleware(s.logger, h)
	h = RecoveryMiddleware(s.logger, h)
	return h
}

// handleHealth handles GET /healthz.
func (s *LinkServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

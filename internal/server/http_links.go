package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/golink/internal/model"
	"github.com/alfredjeanlab/golink/internal/store"
)

// handleCreateLink handles POST /v1/links.
func (s *LinkServer) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var in createLinkInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	link, err := s.createLink(r.Context(), in)
	if err != nil {
		writeOpError(w, err, "failed to create link")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// handleListLinks handles GET /v1/links.
func (s *LinkServer) handleListLinks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.LinkFilter{
		Search: q.Get("search"),
		List:   q.Get("list"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	links, err := s.store.ListLinks(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list links")
		return
	}

	// Ensure links is never null in JSON output.
	if links == nil {
		links = []*model.Link{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": links, "total": len(links)})
}

// handleGetLink handles GET /v1/links/{keyword}.
func (s *LinkServer) handleGetLink(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	link, err := s.store.GetLink(r.Context(), keyword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get link")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}

	lists, err := s.store.GetLinkLists(r.Context(), link.Keyword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get link lists")
		return
	}
	link.Lists = lists

	writeJSON(w, http.StatusOK, link)
}

// handleUpdateLink handles PATCH /v1/links/{keyword}.
func (s *LinkServer) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	var in updateLinkInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	link, err := s.updateLink(r.Context(), r.PathValue("keyword"), in)
	if err != nil {
		writeOpError(w, err, "failed to update link")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// handleDeleteLink handles DELETE /v1/links/{keyword}.
func (s *LinkServer) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.deleteLink(r.Context(), r.PathValue("keyword"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete link")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSetLinkLists handles PUT /v1/links/{keyword}/lists.
func (s *LinkServer) handleSetLinkLists(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")

	var in struct {
		Lists []string `json:"lists"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	link, err := s.store.GetLink(r.Context(), keyword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get link")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}

	if err := s.setLinkLists(r.Context(), link.Keyword, in.Lists); err != nil {
		writeOpError(w, err, "failed to set link lists")
		return
	}

	lists, err := s.store.GetLinkLists(r.Context(), link.Keyword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get link lists")
		return
	}
	link.Lists = lists
	writeJSON(w, http.StatusOK, link)
}

// handleRefreshSearch handles POST /v1/links/{keyword}/refresh-search.
func (s *LinkServer) handleRefreshSearch(w http.ResponseWriter, r *http.Request) {
	found, link, err := s.refreshSearch(r.Context(), r.PathValue("keyword"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to refresh search descriptor")
		return
	}
	if link == nil {
		writeError(w, http.StatusNotFound, "link not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"keyword":        link.Keyword,
		"search_enabled": found,
	})
}

// writeOpError maps a core-operation error to an HTTP response.
func writeOpError(w http.ResponseWriter, err error, fallback string) {
	var ie inputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

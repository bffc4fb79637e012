package server

import (
	"net/http"

	"github.com/alfredjeanlab/golink/internal/events"
	"github.com/alfredjeanlab/golink/internal/model"
)

// handleListLists handles GET /v1/lists.
func (s *LinkServer) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListLists(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list lists")
		return
	}
	if lists == nil {
		lists = []*model.List{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists, "total": len(lists)})
}

// handleGetList handles GET /v1/lists/{slug}: the list plus its members.
func (s *LinkServer) handleGetList(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	list, err := s.store.GetList(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	links, err := s.store.ListLinks(r.Context(), model.LinkFilter{List: list.Slug})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if links == nil {
		links = []*model.Link{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"list": list, "links": links})
}

// handleDeleteList handles DELETE /v1/lists/{slug}. Memberships go with the
// list; the member links stay.
func (s *LinkServer) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	list, err := s.store.GetList(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	if err := s.store.DeleteList(r.Context(), slug); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}
	s.publish(r.Context(), events.TopicListDeleted, events.ListDeleted{Slug: list.Slug})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

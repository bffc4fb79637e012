package server

import (
	"net/http"

	"github.com/alfredjeanlab/golink/internal/events"
	"github.com/alfredjeanlab/golink/internal/importer"
	"github.com/alfredjeanlab/golink/internal/model"
)

// handleImport handles POST /v1/import. The body is a CSV document in the
// export format; the response is a per-row summary. Rejected rows never abort
// the rest of the batch.
func (s *LinkServer) handleImport(w http.ResponseWriter, r *http.Request) {
	rows, rejected, err := importer.ParseCSV(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sum, err := importer.Apply(r.Context(), s.store, rows, s.logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to apply import")
		return
	}
	sum.Rejected = append(rejected, sum.Rejected...)

	s.publish(r.Context(), events.TopicImportCompleted, events.ImportCompleted{
		Created:  sum.Created,
		Updated:  sum.Updated,
		Deleted:  sum.Deleted,
		Rejected: len(sum.Rejected),
	})
	writeJSON(w, http.StatusOK, sum)
}

// handleExport handles GET /v1/export, streaming all links as CSV.
func (s *LinkServer) handleExport(w http.ResponseWriter, r *http.Request) {
	links, err := s.store.ListLinks(r.Context(), model.LinkFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list links")
		return
	}
	for _, l := range links {
		lists, err := s.store.GetLinkLists(r.Context(), l.Keyword)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get link lists")
			return
		}
		l.Lists = lists
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="links.csv"`)
	if err := importer.FormatCSV(w, links); err != nil {
		s.logger.Warn("failed to stream export", "error", err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/bm/internal/bookmarks"
	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/logger"
)

type addLinksRequest struct {
	URLs []string `json:"urls"`
	Tags []string `json:"tags,omitempty"`
}

type removeRequest struct {
	Targets []string `json:"targets"`
}

type listLinksResponse struct {
	Links []domain.Link `json:"links"`
	Count int           `json:"count"`
}

// ListLinks returns every stored link.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Manager.ListLinks()
		if err != nil {
			d.Logger.Error("failed to list links", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list links")
			return
		}
		writeJSON(w, http.StatusOK, listLinksResponse{Links: all, Count: len(all)})
	}
}

// AddLinks runs an add batch. Per-URL failures are part of the report and
// do not change the status code.
func AddLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addLinksRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(req.URLs) == 0 {
			writeError(w, http.StatusBadRequest, "urls is required")
			return
		}

		report := d.Manager.AddLinks(r.Context(), req.URLs, req.Tags)
		d.Logger.Info("links added via api",
			logger.Int("created", report.Created),
			logger.Int("failed", report.Failed))
		writeJSON(w, http.StatusOK, report)
	}
}

// RemoveLinks runs a remove batch.
func RemoveLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removeRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(req.Targets) == 0 {
			writeError(w, http.StatusBadRequest, "targets is required")
			return
		}

		report, err := d.Manager.RemoveLinks(req.Targets)
		if err != nil {
			if errors.Is(err, bookmarks.ErrNoStore) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			d.Logger.Error("failed to remove links", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to remove links")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

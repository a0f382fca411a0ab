package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/logger"
)

type addResourcesRequest struct {
	URLs []string `json:"urls"`
	Note string   `json:"note,omitempty"`
}

type listResourcesResponse struct {
	Resources []domain.Resource `json:"resources"`
	Count     int               `json:"count"`
}

func ListResources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := d.Manager.ListResources()
		if err != nil {
			d.Logger.Error("failed to list resources", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list resources")
			return
		}
		writeJSON(w, http.StatusOK, listResourcesResponse{Resources: all, Count: len(all)})
	}
}

func AddResources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addResourcesRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(req.URLs) == 0 {
			writeError(w, http.StatusBadRequest, "urls is required")
			return
		}

		report, err := d.Manager.AddResources(r.Context(), req.URLs, req.Note)
		if err != nil {
			d.Logger.Error("failed to add resources", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to add resources")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func RemoveResources(d deps.Deps) http.HandlerFunc {
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

		report, err := d.Manager.RemoveResources(req.Targets)
		if err != nil {
			d.Logger.Error("failed to remove resources", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to remove resources")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

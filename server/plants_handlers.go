package server

import (
	"net/http"
	"strconv"

	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/plants"
)

// PlantsHandler lists the encyclopedia.
func (s *Server) PlantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r, 50)
		list, err := s.repos.Plants.List(r.Context(), offset, limit)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if list == nil {
			list = []*plants.Plant{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"plants": list})
	}
}

// PlantHandler returns one encyclopedia entry.
func (s *Server) PlantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plantID := r.PathValue("id")
		plant, err := s.repos.Plants.Get(r.Context(), plantID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "plant %s", plantID))
			return
		}
		writeJSON(w, http.StatusOK, plant)
	}
}

// SubmitPlantHandler files a user-proposed encyclopedia entry for review.
func (s *Server) SubmitPlantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req plantRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.CommonName == "" {
			writeError(w, http.StatusBadRequest, "commonName is required")
			return
		}

		user := s.currentUser(r)
		submission := &plants.Submission{
			UserID:         user.ID,
			UserEmail:      user.Email,
			CommonName:     req.CommonName,
			Species:        req.Species,
			Description:    req.Description,
			SunRequirement: req.SunRequirement,
			DaysToHarvest:  req.DaysToHarvest,
			Status:         plants.SubmissionPending,
			CreatedAt:      s.nowTime(),
		}
		if err := s.repos.Submissions.Upsert(r.Context(), submission); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "submission": submission})
	}
}

// PendingSubmissionsHandler lists submissions awaiting review.
func (s *Server) PendingSubmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r, 50)
		list, err := s.repos.Submissions.ListByStatus(r.Context(), plants.SubmissionPending, offset, limit)
		if err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if list == nil {
			list = []*plants.Submission{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"submissions": list})
	}
}

func pageParams(r *http.Request, defaultLimit int) (offset, limit int) {
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return offset, limit
}

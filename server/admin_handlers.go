package server

import (
	"encoding/json"
	"net/http"

	"github.com/seedvault/seedvault/audit"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/seedvault/seedvault/plants"
	"github.com/seedvault/seedvault/users"
)

// Every administrative mutation below records exactly one audit entry.
// The mutation is performed first; if the audit append then fails the
// request reports the failure so the gap is never silent.

// AdminDeleteUserHandler removes an account and its sessions.
func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := s.currentUser(r)
		targetID := r.PathValue("id")

		target, err := s.repos.Users.GetByID(r.Context(), targetID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "user %s", targetID))
			return
		}
		if target.ID == admin.ID {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrInvalidOperation, "cannot delete your own account"))
			return
		}

		if err := s.repos.Users.Delete(r.Context(), targetID); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if err := s.repos.Sessions.DeleteForUser(r.Context(), targetID); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		previous, _ := json.Marshal(target.Snapshot())
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionUserDelete,
			TargetType:    audit.TargetUser,
			TargetID:      target.ID,
			TargetEmail:   target.Email,
			Reason:        r.URL.Query().Get("reason"),
			PreviousState: previous,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

type changeRoleRequest struct {
	Role users.RoleType `json:"role"`
}

// AdminChangeRoleHandler promotes or demotes an account.
func (s *Server) AdminChangeRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID := r.PathValue("id")

		var req changeRoleRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}
		if req.Role != users.RoleUser && req.Role != users.RoleAdmin {
			writeError(w, http.StatusBadRequest, "role must be user or admin")
			return
		}

		target, err := s.repos.Users.GetByID(r.Context(), targetID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "user %s", targetID))
			return
		}

		if err := s.repos.Users.SetRole(r.Context(), targetID, req.Role); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		previous, _ := json.Marshal(map[string]any{"role": target.Role})
		next, _ := json.Marshal(map[string]any{"role": req.Role})
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionUserRoleChange,
			TargetType:    audit.TargetUser,
			TargetID:      target.ID,
			TargetEmail:   target.Email,
			PreviousState: previous,
			NewState:      next,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

type plantRequest struct {
	CommonName     string `json:"commonName"`
	Species        string `json:"species"`
	Description    string `json:"description"`
	SunRequirement string `json:"sunRequirement"`
	DaysToHarvest  int    `json:"daysToHarvest"`
}

// AdminCreatePlantHandler adds an encyclopedia entry.
func (s *Server) AdminCreatePlantHandler() http.HandlerFunc {
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

		now := s.nowTime()
		plant := &plants.Plant{
			CommonName:     req.CommonName,
			Species:        req.Species,
			Description:    req.Description,
			SunRequirement: req.SunRequirement,
			DaysToHarvest:  req.DaysToHarvest,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repos.Plants.Upsert(r.Context(), plant); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		next, _ := json.Marshal(plant)
		if err := s.recordAudit(r, &audit.Entry{
			Action:     audit.ActionPlantCreate,
			TargetType: audit.TargetPlant,
			TargetID:   plant.ID,
			NewState:   next,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "plant": plant})
	}
}

// AdminUpdatePlantHandler replaces an entry's fields.
func (s *Server) AdminUpdatePlantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plantID := r.PathValue("id")

		var req plantRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		existing, err := s.repos.Plants.Get(r.Context(), plantID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "plant %s", plantID))
			return
		}

		updated := *existing
		updated.CommonName = req.CommonName
		updated.Species = req.Species
		updated.Description = req.Description
		updated.SunRequirement = req.SunRequirement
		updated.DaysToHarvest = req.DaysToHarvest
		updated.UpdatedAt = s.nowTime()

		if err := s.repos.Plants.Upsert(r.Context(), &updated); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		previous, _ := json.Marshal(existing)
		next, _ := json.Marshal(&updated)
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionPlantUpdate,
			TargetType:    audit.TargetPlant,
			TargetID:      plantID,
			PreviousState: previous,
			NewState:      next,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "plant": &updated})
	}
}

// AdminDeletePlantHandler removes an entry, keeping its last state in the
// audit record.
func (s *Server) AdminDeletePlantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plantID := r.PathValue("id")

		existing, err := s.repos.Plants.Get(r.Context(), plantID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "plant %s", plantID))
			return
		}

		if err := s.repos.Plants.Delete(r.Context(), plantID); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		previous, _ := json.Marshal(existing)
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionPlantDelete,
			TargetType:    audit.TargetPlant,
			TargetID:      plantID,
			PreviousState: previous,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// AdminApproveSubmissionHandler copies a pending submission into the
// catalog and marks it approved.
func (s *Server) AdminApproveSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID := r.PathValue("id")

		submission, err := s.repos.Submissions.Get(r.Context(), submissionID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "submission %s", submissionID))
			return
		}
		if submission.Status != plants.SubmissionPending {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrInvalidOperation, "submission already %s", submission.Status))
			return
		}

		now := s.nowTime()
		plant := &plants.Plant{
			CommonName:     submission.CommonName,
			Species:        submission.Species,
			Description:    submission.Description,
			SunRequirement: submission.SunRequirement,
			DaysToHarvest:  submission.DaysToHarvest,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repos.Plants.Upsert(r.Context(), plant); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		previous, _ := json.Marshal(submission)
		submission.Status = plants.SubmissionApproved
		if err := s.repos.Submissions.Upsert(r.Context(), submission); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		next, _ := json.Marshal(submission)
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionSubmissionApprove,
			TargetType:    audit.TargetSubmission,
			TargetID:      submission.ID,
			TargetEmail:   submission.UserEmail,
			PreviousState: previous,
			NewState:      next,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "plant": plant})
	}
}

type rejectSubmissionRequest struct {
	Reason string `json:"reason"`
}

// AdminRejectSubmissionHandler marks a pending submission rejected with a
// reason.
func (s *Server) AdminRejectSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID := r.PathValue("id")

		var req rejectSubmissionRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		submission, err := s.repos.Submissions.Get(r.Context(), submissionID)
		if err != nil {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrNotFound, "submission %s", submissionID))
			return
		}
		if submission.Status != plants.SubmissionPending {
			writeErrorFromErr(w, errors.Wrapf(errors.ErrInvalidOperation, "submission already %s", submission.Status))
			return
		}

		previous, _ := json.Marshal(submission)
		submission.Status = plants.SubmissionRejected
		submission.Reason = req.Reason
		if err := s.repos.Submissions.Upsert(r.Context(), submission); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		next, _ := json.Marshal(submission)
		if err := s.recordAudit(r, &audit.Entry{
			Action:        audit.ActionSubmissionReject,
			TargetType:    audit.TargetSubmission,
			TargetID:      submission.ID,
			TargetEmail:   submission.UserEmail,
			Reason:        req.Reason,
			PreviousState: previous,
			NewState:      next,
		}); err != nil {
			writeErrorFromErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// recordAudit stamps the acting admin and request attribution onto an
// entry before appending it.
func (s *Server) recordAudit(r *http.Request, entry *audit.Entry) error {
	admin := s.currentUser(r)
	entry.AdminID = admin.ID
	entry.AdminEmail = admin.Email

	meta := requestMeta(r)
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent

	_, err := s.auditLog.Record(r.Context(), entry)
	return err
}

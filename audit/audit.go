// Package audit is the append-only record of administrative actions. The
// application writes entries and reads them back with filters; nothing ever
// updates or deletes one.
package audit

import (
	"encoding/json"
	"time"
)

// Action is the closed set of administrative actions that produce an entry.
type Action string

const (
	ActionUserDelete        Action = "user_delete"
	ActionUserRoleChange    Action = "user_role_change"
	ActionSubmissionApprove Action = "submission_approve"
	ActionSubmissionReject  Action = "submission_reject"
	ActionPlantCreate       Action = "plant_create"
	ActionPlantUpdate       Action = "plant_update"
	ActionPlantDelete       Action = "plant_delete"
	ActionImpersonateStart  Action = "impersonate_start"
	ActionImpersonateEnd    Action = "impersonate_end"
)

// Valid reports whether the action is one of the known kinds
func (a Action) Valid() bool {
	switch a {
	case ActionUserDelete, ActionUserRoleChange,
		ActionSubmissionApprove, ActionSubmissionReject,
		ActionPlantCreate, ActionPlantUpdate, ActionPlantDelete,
		ActionImpersonateStart, ActionImpersonateEnd:
		return true
	}
	return false
}

// TargetType identifies what kind of entity an action was applied to.
type TargetType string

const (
	TargetUser       TargetType = "user"
	TargetPlant      TargetType = "plant"
	TargetSubmission TargetType = "submission"
)

// Entry is one audit record. Details, PreviousState and NewState are opaque
// structured payloads; the log stores them verbatim and does not interpret
// their shape.
type Entry struct {
	ID            string          `json:"id"`
	AdminID       string          `json:"adminId"`
	AdminEmail    string          `json:"adminEmail"`
	Action        Action          `json:"action"`
	TargetType    TargetType      `json:"targetType"`
	TargetID      string          `json:"targetId"`
	TargetEmail   string          `json:"targetEmail,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	PreviousState json.RawMessage `json:"previousState,omitempty"`
	NewState      json.RawMessage `json:"newState,omitempty"`
	IPAddress     string          `json:"ipAddress,omitempty"`
	UserAgent     string          `json:"userAgent,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Package plants holds the plant encyclopedia and user-submitted entries
// awaiting review.
package plants

import "time"

type Plant struct {
	ID             string    `json:"id"`
	CommonName     string    `json:"commonName"`
	Species        string    `json:"species,omitempty"`
	Description    string    `json:"description,omitempty"`
	SunRequirement string    `json:"sunRequirement,omitempty"` // full-sun, partial-shade, shade
	DaysToHarvest  int       `json:"daysToHarvest,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SubmissionStatus tracks a user submission through review.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a user-proposed encyclopedia entry. Approval copies it into
// the catalog; rejection records a reason.
type Submission struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	UserEmail      string           `json:"userEmail,omitempty"`
	CommonName     string           `json:"commonName"`
	Species        string           `json:"species,omitempty"`
	Description    string           `json:"description,omitempty"`
	SunRequirement string           `json:"sunRequirement,omitempty"`
	DaysToHarvest  int              `json:"daysToHarvest,omitempty"`
	Status         SubmissionStatus `json:"status"`
	Reason         string           `json:"reason,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

package entities

import (
	"strings"
	"time"
)

// ActionItemStatus tracks submission by the assignee
type ActionItemStatus string

const (
	ActionItemStatusPending   ActionItemStatus = "Pending"
	ActionItemStatusSubmitted ActionItemStatus = "Submitted"
)

// Judgment is the organizer's verdict on a submission
type Judgment string

const (
	JudgmentUnjudged Judgment = "Unjudged"
	JudgmentAccepted Judgment = "Accepted"
	JudgmentRejected Judgment = "Rejected"
)

// IsValid checks the judgment against the known values
func (j Judgment) IsValid() bool {
	switch j {
	case JudgmentUnjudged, JudgmentAccepted, JudgmentRejected:
		return true
	}
	return false
}

// ActionItem is a task assigned to a user within a meeting
type ActionItem struct {
	ID                    ID               `json:"id"`
	Description           string           `json:"description"`
	Type                  string           `json:"type"`
	Deadline              *time.Time       `json:"deadline,omitempty"`
	AssignedToUserID      ID               `json:"assignedToUserId"`
	Status                ActionItemStatus `json:"status"`
	Judgment              Judgment         `json:"judgment"`
	AssignmentAttachments []string         `json:"assignmentAttachments"`
	SubmissionAttachments []string         `json:"submissionAttachments"`
}

// IsSubmitted reports whether the assignee has submitted
func (a ActionItem) IsSubmitted() bool {
	return strings.EqualFold(string(a.Status), string(ActionItemStatusSubmitted))
}

// IsOverdue reports whether the deadline passed without a submission
func (a ActionItem) IsOverdue(now time.Time) bool {
	return a.Deadline != nil && !a.IsSubmitted() && a.Deadline.Before(now)
}

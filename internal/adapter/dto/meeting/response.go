package meeting

import (
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// MeetingResponse is a meeting with its times rendered for the UI
type MeetingResponse struct {
	entities.Meeting
	StartLocal   string `json:"startLocal"`
	EndLocal     string `json:"endLocal"`
	StartDisplay string `json:"startDisplay"`
	EndDisplay   string `json:"endDisplay"`
	IsOrganizer  bool   `json:"isOrganizer"`
	IsPast       bool   `json:"isPast"`
}

// DetailResponse adds the derived subsets of the detail page
type DetailResponse struct {
	MeetingResponse
	PendingInvitees  []entities.Invitee    `json:"pendingInvitees"`
	AnsweredInvitees []entities.Invitee    `json:"answeredInvitees"`
	MyActionItems    []entities.ActionItem `json:"myActionItems"`
	Stale            bool                  `json:"stale"`
}

// SectionResponse is one list view section
type SectionResponse struct {
	Name        string            `json:"name"`
	Page        int               `json:"page"`
	Items       []MeetingResponse `json:"items"`
	Loading     bool              `json:"loading"`
	HasNext     bool              `json:"hasNext"`
	HasPrevious bool              `json:"hasPrevious"`
}

// ListViewResponse is the whole list page
type ListViewResponse struct {
	Sections      []SectionResponse `json:"sections"`
	SnapshotCount int               `json:"snapshotCount"`
}

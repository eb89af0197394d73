package meeting

import (
	"fmt"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/pkg/timezone"
)

// MeetingRequest is the meeting form. Times are Beirut wall-clock values in
// the date/time input layout.
type MeetingRequest struct {
	Title              string        `json:"title" validate:"required,max=200"`
	Agenda             string        `json:"agenda"`
	StartLocal         string        `json:"startLocal" validate:"required"`
	EndLocal           string        `json:"endLocal" validate:"required"`
	RoomID             entities.ID   `json:"roomId" validate:"required"`
	Status             string        `json:"status,omitempty"`
	RecurringBookingID *entities.ID  `json:"recurringBookingId,omitempty"`
	InviteeUserIDs     []entities.ID `json:"inviteeUserIds,omitempty"`
}

// ToInput converts the form into the API body, times in UTC
func (r MeetingRequest) ToInput() (repositories.MeetingInput, error) {
	start, err := timezone.ParseInput(r.StartLocal)
	if err != nil {
		return repositories.MeetingInput{}, fmt.Errorf("startLocal: %w", err)
	}
	end, err := timezone.ParseInput(r.EndLocal)
	if err != nil {
		return repositories.MeetingInput{}, fmt.Errorf("endLocal: %w", err)
	}
	return repositories.MeetingInput{
		Title:              r.Title,
		Agenda:             r.Agenda,
		StartTime:          start,
		EndTime:            end,
		RoomID:             r.RoomID,
		Status:             entities.MeetingStatus(r.Status),
		RecurringBookingID: r.RecurringBookingID,
		InviteeUserIDs:     r.InviteeUserIDs,
	}, nil
}

// InviteeRequest adds an invitee by user id or email
type InviteeRequest struct {
	UserID entities.ID `json:"userId" validate:"required_without=Email"`
	Email  string      `json:"email" validate:"omitempty,email"`
}

// NoteRequest is the note form
type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// JudgmentRequest is the organizer's verdict on a submission
type JudgmentRequest struct {
	Judgment entities.Judgment `json:"judgment" validate:"required,oneof=Unjudged Accepted Rejected"`
}

// ActionItemForm is the multipart action item form without its files
type ActionItemForm struct {
	Description      string      `form:"description" json:"description" validate:"required"`
	Type             string      `form:"type" json:"type"`
	DeadlineLocal    string      `form:"deadlineLocal" json:"deadlineLocal"`
	AssignedToUserID entities.ID `form:"assignedToUserId" json:"assignedToUserId" validate:"required"`
}

// ToInput converts the form; files are attached by the handler
func (f ActionItemForm) ToInput() (repositories.ActionItemInput, error) {
	in := repositories.ActionItemInput{
		Description:      f.Description,
		Type:             f.Type,
		AssignedToUserID: f.AssignedToUserID,
	}
	if f.DeadlineLocal != "" {
		d, err := timezone.ParseInput(f.DeadlineLocal)
		if err != nil {
			return in, fmt.Errorf("deadlineLocal: %w", err)
		}
		in.Deadline = &d
	}
	return in, nil
}

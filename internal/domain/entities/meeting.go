package entities

import (
	"strings"
	"time"
)

// MeetingStatus is free text owned by the server
type MeetingStatus string

// Meeting is the client's copy of a server-owned meeting
type Meeting struct {
	ID                 ID            `json:"id"`
	Title              string        `json:"title"`
	Agenda             string        `json:"agenda"`
	StartTime          time.Time     `json:"startTime"`
	EndTime            time.Time     `json:"endTime"`
	Status             MeetingStatus `json:"status"`
	OrganizerID        ID            `json:"organizerId"`
	RoomID             ID            `json:"roomId"`
	RecurringBookingID *ID           `json:"recurringBookingId,omitempty"`
	Invitees           []Invitee     `json:"invitees"`
	Notes              []Note        `json:"notes"`
	ActionItems        []ActionItem  `json:"actionItems"`
	Attachments        []string      `json:"attachments"`
}

// IsOrganizer reports whether userID organizes the meeting
func (m *Meeting) IsOrganizer(userID ID) bool {
	return m != nil && !userID.IsZero() && m.OrganizerID == userID
}

// IsPast reports whether the meeting has ended at now
func (m *Meeting) IsPast(now time.Time) bool {
	return !m.EndTime.IsZero() && m.EndTime.Before(now)
}

// MatchesQuery is a case-insensitive substring match over title and agenda
func (m *Meeting) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Agenda), q)
}

// FindInvitee returns the invitee record with the given id
func (m *Meeting) FindInvitee(inviteeID ID) (*Invitee, bool) {
	for i := range m.Invitees {
		if m.Invitees[i].ID == inviteeID {
			return &m.Invitees[i], true
		}
	}
	return nil, false
}

// FindActionItem returns the action item with the given id
func (m *Meeting) FindActionItem(itemID ID) (*ActionItem, bool) {
	for i := range m.ActionItems {
		if m.ActionItems[i].ID == itemID {
			return &m.ActionItems[i], true
		}
	}
	return nil, false
}

// InviteeStatus is the response state of an invitee
type InviteeStatus string

const (
	InviteeStatusPending  InviteeStatus = "Pending"
	InviteeStatusAnswered InviteeStatus = "Answered"
)

// Attendance records the answer; the API conflates it with the status.
type Attendance string

const (
	AttendanceAccepted Attendance = "Accepted"
	AttendanceDeclined Attendance = "Declined"
)

// Invitee is a user invited to a meeting
type Invitee struct {
	ID         ID            `json:"id"`
	UserID     ID            `json:"userId"`
	Email      string        `json:"email"`
	Status     InviteeStatus `json:"status"`
	Attendance Attendance    `json:"attendance,omitempty"`
}

// IsPending reports whether the invitee has not answered yet
func (i Invitee) IsPending() bool {
	return strings.EqualFold(string(i.Status), string(InviteeStatusPending))
}

// Accepted reports whether the invitee answered yes
func (i Invitee) Accepted() bool {
	return !i.IsPending() && strings.EqualFold(string(i.Attendance), string(AttendanceAccepted))
}

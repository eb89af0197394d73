package repositories

import (
	"context"
	"io"
	"time"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// MeetingList names one of the paginated meeting collections of the signed-in user
type MeetingList string

const (
	MeetingListOrganized MeetingList = "organized"
	MeetingListAccepted  MeetingList = "accepted"
	MeetingListPending   MeetingList = "pending"
	MeetingListPrevious  MeetingList = "previous"
)

// MeetingLists is the fixed display order of the list view
var MeetingLists = []MeetingList{
	MeetingListOrganized,
	MeetingListAccepted,
	MeetingListPending,
	MeetingListPrevious,
}

// MeetingInput is the body of the meeting create/edit form
type MeetingInput struct {
	Title              string                 `json:"title"`
	Agenda             string                 `json:"agenda"`
	StartTime          time.Time              `json:"startTime"`
	EndTime            time.Time              `json:"endTime"`
	RoomID             entities.ID            `json:"roomId"`
	Status             entities.MeetingStatus `json:"status,omitempty"`
	RecurringBookingID *entities.ID           `json:"recurringBookingId,omitempty"`
	InviteeUserIDs     []entities.ID          `json:"inviteeUserIds,omitempty"`
}

// Validate checks the fields the form requires
func (in MeetingInput) Validate() error {
	if in.Title == "" {
		return entities.ErrMissingTitle
	}
	if !in.EndTime.After(in.StartTime) {
		return entities.ErrInvalidTimes
	}
	return nil
}

// InviteeInput adds a user to a meeting, by id or by email
type InviteeInput struct {
	UserID entities.ID `json:"userId,omitempty"`
	Email  string      `json:"email,omitempty"`
}

// ActionItemInput is the body of the action item form
type ActionItemInput struct {
	Description      string      `json:"description"`
	Type             string      `json:"type"`
	Deadline         *time.Time  `json:"deadline,omitempty"`
	AssignedToUserID entities.ID `json:"assignedToUserId"`
	Files            []File      `json:"-"`
}

// File is one uploaded file part
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// MeetingRepository defines access to meetings and their sub-resources
type MeetingRepository interface {
	// ListPage retrieves one page of a meeting collection
	ListPage(ctx context.Context, list MeetingList, page, pageSize int) (entities.Page[entities.Meeting], error)

	// ListAll retrieves every meeting of the user, unpaginated
	ListAll(ctx context.Context) ([]entities.Meeting, error)

	// FindByID retrieves a meeting with its invitees, notes, action items and attachments
	FindByID(ctx context.Context, id entities.ID) (*entities.Meeting, error)

	Create(ctx context.Context, input MeetingInput) (*entities.Meeting, error)
	Update(ctx context.Context, id entities.ID, input MeetingInput) (*entities.Meeting, error)
	Delete(ctx context.Context, id entities.ID) error

	AddInvitee(ctx context.Context, meetingID entities.ID, input InviteeInput) (*entities.Invitee, error)
	RemoveInvitee(ctx context.Context, meetingID, inviteeID entities.ID) error
	AcceptInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error)
	DeclineInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error)

	AddNote(ctx context.Context, meetingID entities.ID, content string) (*entities.Note, error)
	DeleteNote(ctx context.Context, meetingID, noteID entities.ID) error

	CreateActionItem(ctx context.Context, meetingID entities.ID, input ActionItemInput) (*entities.ActionItem, error)
	ToggleActionItemStatus(ctx context.Context, meetingID, itemID entities.ID, files []File) (*entities.ActionItem, error)
	ToggleActionItemJudgment(ctx context.Context, meetingID, itemID entities.ID, judgment entities.Judgment) (*entities.ActionItem, error)
	DeleteActionItem(ctx context.Context, meetingID, itemID entities.ID) error

	// UploadAttachments stores files on the meeting and returns the new attachment URLs
	UploadAttachments(ctx context.Context, meetingID entities.ID, files []File) ([]string, error)

	// DownloadAttachment streams an attachment into w and returns its content type
	DownloadAttachment(ctx context.Context, meetingID entities.ID, fileName string, w io.Writer) (string, error)
}

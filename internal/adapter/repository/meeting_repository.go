package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/aseeltahaa/smartspace/errors"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

var listPaths = map[repositories.MeetingList]string{
	repositories.MeetingListOrganized: "/Users/me/meetings/organized",
	repositories.MeetingListAccepted:  "/Users/me/invites/accepted",
	repositories.MeetingListPending:   "/Users/me/invites/pending",
	repositories.MeetingListPrevious:  "/Users/me/meetings/all",
}

// meetingRepository implements MeetingRepository over the REST API
type meetingRepository struct {
	api APIClient
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(api APIClient) repositories.MeetingRepository {
	return &meetingRepository{api: api}
}

// ListPage retrieves one page of a meeting collection
func (r *meetingRepository) ListPage(ctx context.Context, list repositories.MeetingList, page, pageSize int) (entities.Page[entities.Meeting], error) {
	var out entities.Page[entities.Meeting]
	p, ok := listPaths[list]
	if !ok {
		return out, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown meeting list %q", list))
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	if err := r.api.Get(ctx, p, q, &out); err != nil {
		return out, err
	}
	if out.Page == 0 {
		out.Page = page
	}
	if out.PageSize == 0 {
		out.PageSize = pageSize
	}
	return out, nil
}

// ListAll retrieves every meeting of the user
func (r *meetingRepository) ListAll(ctx context.Context) ([]entities.Meeting, error) {
	var out entities.Page[entities.Meeting]
	if err := r.api.Get(ctx, "/Users/me/meetings/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id entities.ID) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.api.Get(ctx, path("Meeting", id.String()), nil, &m); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrMeetingNotFound(id.String())
		}
		return nil, err
	}
	return &m, nil
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, input repositories.MeetingInput) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.api.Post(ctx, "/Meeting", input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Update replaces the editable fields of a meeting
func (r *meetingRepository) Update(ctx context.Context, id entities.ID, input repositories.MeetingInput) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.api.Put(ctx, path("Meeting", id.String()), input, &m); err != nil {
		return nil, err
	}
	if m.ID.IsZero() {
		m.ID = id
	}
	return &m, nil
}

// Delete deletes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id entities.ID) error {
	return r.api.Delete(ctx, path("Meeting", id.String()))
}

func (r *meetingRepository) AddInvitee(ctx context.Context, meetingID entities.ID, input repositories.InviteeInput) (*entities.Invitee, error) {
	var inv entities.Invitee
	if err := r.api.Post(ctx, path("Meeting", meetingID.String(), "invitees"), input, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *meetingRepository) RemoveInvitee(ctx context.Context, meetingID, inviteeID entities.ID) error {
	return r.api.Delete(ctx, path("Meeting", meetingID.String(), "invitees", inviteeID.String()))
}

// AcceptInvite moves an invitee to Answered/Accepted
func (r *meetingRepository) AcceptInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return r.answer(ctx, meetingID, inviteeID, "accept")
}

// DeclineInvite moves an invitee to Answered/Declined
func (r *meetingRepository) DeclineInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return r.answer(ctx, meetingID, inviteeID, "decline")
}

func (r *meetingRepository) answer(ctx context.Context, meetingID, inviteeID entities.ID, verb string) (*entities.Invitee, error) {
	var inv entities.Invitee
	if err := r.api.Put(ctx, path("Meeting", meetingID.String(), "invitees", inviteeID.String(), verb), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *meetingRepository) AddNote(ctx context.Context, meetingID entities.ID, content string) (*entities.Note, error) {
	var n entities.Note
	body := map[string]string{"content": content}
	if err := r.api.Post(ctx, path("Meeting", meetingID.String(), "notes"), body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *meetingRepository) DeleteNote(ctx context.Context, meetingID, noteID entities.ID) error {
	return r.api.Delete(ctx, path("Meeting", meetingID.String(), "notes", noteID.String()))
}

// CreateActionItem posts the form with its assignment files as multipart
func (r *meetingRepository) CreateActionItem(ctx context.Context, meetingID entities.ID, input repositories.ActionItemInput) (*entities.ActionItem, error) {
	fields := map[string]string{
		"description":      input.Description,
		"type":             input.Type,
		"assignedToUserId": input.AssignedToUserID.String(),
	}
	if input.Deadline != nil {
		fields["deadline"] = input.Deadline.UTC().Format(time.RFC3339)
	}

	var item entities.ActionItem
	err := r.api.PostMultipart(ctx, path("Meeting", meetingID.String(), "action-items"), fields, fileParts("files", input.Files), &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleActionItemStatus flips submission state, attaching submission files if any
func (r *meetingRepository) ToggleActionItemStatus(ctx context.Context, meetingID, itemID entities.ID, files []repositories.File) (*entities.ActionItem, error) {
	var item entities.ActionItem
	p := path("Meeting", meetingID.String(), "action-items", itemID.String(), "toggle-status")
	if err := r.api.PutMultipart(ctx, p, nil, fileParts("files", files), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleActionItemJudgment records the organizer's verdict
func (r *meetingRepository) ToggleActionItemJudgment(ctx context.Context, meetingID, itemID entities.ID, judgment entities.Judgment) (*entities.ActionItem, error) {
	var item entities.ActionItem
	p := path("Meeting", meetingID.String(), "action-items", itemID.String(), "toggle-judgment")
	if err := r.api.Put(ctx, p, map[string]entities.Judgment{"judgment": judgment}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *meetingRepository) DeleteActionItem(ctx context.Context, meetingID, itemID entities.ID) error {
	return r.api.Delete(ctx, path("Meeting", meetingID.String(), "action-items", itemID.String()))
}

// UploadAttachments posts files and returns the attachment URLs the API reports
func (r *meetingRepository) UploadAttachments(ctx context.Context, meetingID entities.ID, files []repositories.File) ([]string, error) {
	var raw json.RawMessage
	if err := r.api.PostMultipart(ctx, path("Meeting", meetingID.String(), "attachments"), nil, fileParts("files", files), &raw); err != nil {
		return nil, err
	}
	return decodeAttachmentList(raw)
}

// DownloadAttachment streams an attachment blob
func (r *meetingRepository) DownloadAttachment(ctx context.Context, meetingID entities.ID, fileName string, w io.Writer) (string, error) {
	return r.api.Download(ctx, path("files", "meetings", meetingID.String(), fileName), w)
}

// decodeAttachmentList accepts `["a"]`, `{"attachments": ["a"]}` or a meeting body
func decodeAttachmentList(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, apperrors.ErrDecodeFailed("attachments", err)
		}
		return list, nil
	}
	var obj struct {
		Attachments []string `json:"attachments"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, apperrors.ErrDecodeFailed("attachments", err)
	}
	return obj.Attachments, nil
}

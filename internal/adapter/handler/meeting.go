package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/errors"
	meetingDTO "github.com/aseeltahaa/smartspace/internal/adapter/dto/meeting"
	"github.com/aseeltahaa/smartspace/internal/adapter/presenter"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	meetingUsecase "github.com/aseeltahaa/smartspace/internal/usecase/meeting"
)

// Meeting handles the meeting list and detail pages
type Meeting struct {
	lists   *meetingUsecase.Orchestrator
	editors *meetingUsecase.Service
	logger  *zap.Logger
	now     func() time.Time
}

// NewMeeting creates a new meeting handler
func NewMeeting(lists *meetingUsecase.Orchestrator, editors *meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		lists:   lists,
		editors: editors,
		logger:  logger,
		now:     time.Now,
	}
}

// List loads every section and the search snapshot
// @Summary      Meeting list view
// @Description  Loads the organized, accepted, pending and previous sections plus the search snapshot
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  meeting.ListViewResponse  "All four sections"
// @Failure      401  {object}  common.ErrorResponse      "Not signed in"
// @Failure      502  {object}  common.ErrorResponse      "SmartSpace API unreachable"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	if err := h.lists.Load(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToListViewResponse(h.lists.View(), currentUserID(c), h.now()))
}

// NextPage moves one section forward
// POST /v1/meetings/sections/:section/next
func (h *Meeting) NextPage(c echo.Context) error {
	sec, err := h.lists.Next(c.Request().Context(), repositories.MeetingList(c.Param("section")))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSectionResponse(sec, currentUserID(c), h.now()))
}

// PreviousPage moves one section back
// POST /v1/meetings/sections/:section/previous
func (h *Meeting) PreviousPage(c echo.Context) error {
	sec, err := h.lists.Previous(c.Request().Context(), repositories.MeetingList(c.Param("section")))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSectionResponse(sec, currentUserID(c), h.now()))
}

// Search matches the snapshot by title or agenda
// GET /v1/meetings/search?q=
func (h *Meeting) Search(c echo.Context) error {
	items := h.lists.Search(c.QueryParam("q"))
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponses(items, currentUserID(c), h.now()))
}

// Accept answers an invitation with yes
// @Summary      Accept an invitation
// @Tags         Meetings
// @Produce      json
// @Param        id         path  string  true  "Meeting ID"
// @Param        inviteeId  path  string  true  "Invitee ID"
// @Success      200  {object}  common.SuccessResponse  "Invitation answered, lists refreshed"
// @Router       /meetings/{id}/invitees/{inviteeId}/accept [post]
func (h *Meeting) Accept(c echo.Context) error {
	return h.answer(c, h.lists.Accept)
}

// Decline answers an invitation with no
// POST /v1/meetings/:id/invitees/:inviteeId/decline
func (h *Meeting) Decline(c echo.Context) error {
	return h.answer(c, h.lists.Decline)
}

func (h *Meeting) answer(c echo.Context, call func(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error)) error {
	meetingID, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	inviteeID, err := paramID(c, "inviteeId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	inv, err := call(c.Request().Context(), meetingID, inviteeID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, inv)
}

// Get opens the detail page of a meeting
// @Summary      Meeting detail
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string                  true  "Meeting ID"
// @Success      200  {object}  meeting.DetailResponse  "Meeting with invitees, notes and action items"
// @Failure      401  {object}  common.ErrorResponse    "Not signed in"
// @Failure      404  {object}  common.ErrorResponse    "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.editors.Open(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.detail(c, m.ID)
}

func (h *Meeting) detail(c echo.Context, id entities.ID) error {
	scope := h.editors.Scope(id)
	m, err := scope.Meeting(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDetailResponse(m, scope, currentUserID(c), h.now()))
}

// Create creates a meeting
// @Summary      Create a meeting
// @Description  Creates a meeting and notifies its invitees
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.MeetingRequest  true  "Meeting form"
// @Success      201      {object}  meeting.DetailResponse  "Meeting created"
// @Failure      400      {object}  common.ErrorResponse    "Missing title or end before start"
// @Failure      401      {object}  common.ErrorResponse    "Not signed in"
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	var req meetingDTO.MeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input, err := req.ToInput()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.editors.Create(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m, currentUserID(c), h.now()))
}

// Update saves the meeting form
// PUT /v1/meetings/:id
func (h *Meeting) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meetingDTO.MeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input, err := req.ToInput()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.editors.Update(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m, currentUserID(c), h.now()))
}

// Delete removes a meeting
// DELETE /v1/meetings/:id
func (h *Meeting) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.editors.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddInvitee invites a user by id or email
// POST /v1/meetings/:id/invitees
func (h *Meeting) AddInvitee(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meetingDTO.InviteeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	inv, err := h.editors.AddInvitee(c.Request().Context(), id, repositories.InviteeInput{UserID: req.UserID, Email: req.Email})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, inv)
}

// RemoveInvitee uninvites a user
// DELETE /v1/meetings/:id/invitees/:inviteeId
func (h *Meeting) RemoveInvitee(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	inviteeID, err := paramID(c, "inviteeId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.editors.RemoveInvitee(c.Request().Context(), id, inviteeID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddNote appends a note
// POST /v1/meetings/:id/notes
func (h *Meeting) AddNote(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meetingDTO.NoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	note, err := h.editors.AddNote(c.Request().Context(), id, req.Content)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, note)
}

// DeleteNote removes a note
// DELETE /v1/meetings/:id/notes/:noteId
func (h *Meeting) DeleteNote(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	noteID, err := paramID(c, "noteId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.editors.DeleteNote(c.Request().Context(), id, noteID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateActionItem assigns a task, with optional assignment files
// POST /v1/meetings/:id/action-items (multipart)
func (h *Meeting) CreateActionItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var form meetingDTO.ActionItemForm
	if err := bindAndValidate(c, &form); err != nil {
		return HandleError(h.logger, c, err)
	}
	input, err := form.ToInput()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	files, closeFiles, err := formFiles(c, "files")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer closeFiles()
	input.Files = files

	item, err := h.editors.CreateActionItem(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, item)
}

// ToggleStatus submits or withdraws an action item
// PUT /v1/meetings/:id/action-items/:itemId/toggle-status (multipart, optional files)
func (h *Meeting) ToggleStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	files, closeFiles, err := formFiles(c, "files")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer closeFiles()

	item, err := h.editors.ToggleStatus(c.Request().Context(), id, itemID, files)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, item)
}

// ToggleJudgment records the organizer's verdict
// PUT /v1/meetings/:id/action-items/:itemId/toggle-judgment
func (h *Meeting) ToggleJudgment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meetingDTO.JudgmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.editors.ToggleJudgment(c.Request().Context(), id, itemID, req.Judgment)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, item)
}

// DeleteActionItem removes an action item
// DELETE /v1/meetings/:id/action-items/:itemId
func (h *Meeting) DeleteActionItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.editors.DeleteActionItem(c.Request().Context(), id, itemID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadAttachments attaches files to a meeting
// POST /v1/meetings/:id/attachments (multipart "files")
func (h *Meeting) UploadAttachments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	files, closeFiles, err := formFiles(c, "files")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer closeFiles()

	urls, err := h.editors.UploadAttachments(c.Request().Context(), id, files)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, map[string]interface{}{
		"attachments": urls,
		"count":       len(urls),
	})
}

// DownloadAttachment streams one attachment
// GET /v1/meetings/:id/attachments/:file
func (h *Meeting) DownloadAttachment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	name := meetingUsecase.AttachmentName(c.Param("file"))
	if name == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing file"))
	}

	var buf bytes.Buffer
	contentType, err := h.editors.DownloadAttachment(c.Request().Context(), id, name, &buf)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+name+"\"")
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// formFiles opens every file part of field. A request without a multipart
// body yields no files.
func formFiles(c echo.Context, field string) ([]repositories.File, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, errors.ErrInvalidPayload()
	}

	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	var files []repositories.File
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, errors.ErrInvalidArgument("cannot read " + fh.Filename)
		}
		opened = append(opened, f)
		files = append(files, repositories.File{
			Name:        fh.Filename,
			ContentType: partType(fh),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

func partType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get(echo.HeaderContentType); ct != "" {
		return ct
	}
	return echo.MIMEOctetStream
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

package meeting

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
)

// Notifier sends best-effort notifications; it never reports failures
type Notifier interface {
	Notify(ctx context.Context, userID entities.ID, subject, body string)
	NotifyBulk(ctx context.Context, userIDs []entities.ID, subject, body string)
}

// SessionReader exposes the signed-in session
type SessionReader interface {
	Current() entities.Session
}

// Service holds the meeting detail editors. Every mutation calls the API,
// reconciles the meeting scope and then notifies the affected users.
type Service struct {
	repo     repositories.MeetingRepository
	notifier Notifier
	sessions SessionReader
	logger   *zap.Logger

	mu     sync.Mutex
	scopes map[entities.ID]*Scope
}

// NewService creates the editors service
func NewService(
	repo repositories.MeetingRepository,
	notifier Notifier,
	sessions SessionReader,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		sessions: sessions,
		logger:   logger,
		scopes:   make(map[entities.ID]*Scope),
	}
}

// Scope returns the shared scope of meeting id, creating it when needed
func (s *Service) Scope(id entities.ID) *Scope {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scopes[id]
	if !ok {
		sc = NewScope(s.repo, id, s.logger)
		s.scopes[id] = sc
	}
	return sc
}

func (s *Service) forget(id entities.ID) {
	s.mu.Lock()
	delete(s.scopes, id)
	s.mu.Unlock()
}

// Reset drops every scope
func (s *Service) Reset() {
	s.mu.Lock()
	s.scopes = make(map[entities.ID]*Scope)
	s.mu.Unlock()
}

// Open loads the meeting into its scope
func (s *Service) Open(ctx context.Context, id entities.ID) (*entities.Meeting, error) {
	return s.Scope(id).Load(ctx)
}

// Create creates a meeting and notifies its invitees
func (s *Service) Create(ctx context.Context, input repositories.MeetingInput) (*entities.Meeting, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ucErrors.ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	m := created
	if !created.ID.IsZero() {
		sc := s.Scope(created.ID)
		sc.Reconcile(ctx)
		if fresh, ok := sc.Cached(); ok {
			m = fresh
		}
	}

	// The reload may lag behind the invitee list that was just submitted.
	withInput := *m
	for _, id := range input.InviteeUserIDs {
		withInput.Invitees = append(withInput.Invitees, entities.Invitee{UserID: id})
	}
	subject, body := createdMessage(m)
	s.notifyAll(ctx, Recipients(&withInput, s.actor()), subject, body)

	if s.logger != nil {
		s.logger.Info("📅 Meeting created", zap.String("meeting_id", m.ID.String()))
	}
	return m, nil
}

// Update saves the meeting form and notifies everyone in the meeting
func (s *Service) Update(ctx context.Context, id entities.ID, input repositories.MeetingInput) (*entities.Meeting, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ucErrors.ErrInvalidInput, err)
	}
	sc := s.Scope(id)
	if err := s.requireOrganizer(ctx, sc); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	m := s.reconciled(ctx, sc, updated)

	subject, body := updatedMessage(m)
	s.notifyAll(ctx, Recipients(m, s.actor()), subject, body)
	return m, nil
}

// Delete removes the meeting. Recipients are taken from the copy loaded
// before the deletion.
func (s *Service) Delete(ctx context.Context, id entities.ID) error {
	sc := s.Scope(id)
	m, err := sc.Meeting(ctx)
	if err != nil {
		return err
	}
	if err := s.checkOrganizer(m); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(id)

	subject, body := deletedMessage(m)
	s.notifyAll(ctx, Recipients(m, s.actor()), subject, body)

	if s.logger != nil {
		s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	}
	return nil
}

// AddInvitee invites a user by id or email and notifies them
func (s *Service) AddInvitee(ctx context.Context, meetingID entities.ID, input repositories.InviteeInput) (*entities.Invitee, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.UserID.IsZero() && input.Email == "" {
		return nil, fmt.Errorf("%w: user id or email is required", ucErrors.ErrInvalidInput)
	}
	sc := s.Scope(meetingID)
	if err := s.requireOrganizer(ctx, sc); err != nil {
		return nil, err
	}

	inv, err := s.repo.AddInvitee(ctx, meetingID, input)
	if err != nil {
		return nil, err
	}
	sc.Reconcile(ctx)

	m, _ := sc.Cached()
	userID := inv.UserID
	if userID.IsZero() && m != nil {
		for _, existing := range m.Invitees {
			if strings.EqualFold(existing.Email, input.Email) {
				userID = existing.UserID
				break
			}
		}
	}
	if userID.IsZero() {
		userID = input.UserID
	}
	if m == nil {
		m = &entities.Meeting{ID: meetingID}
	}

	subject, body := invitedMessage(m)
	s.notifyAll(ctx, only(userID, s.actor()), subject, body)
	return inv, nil
}

// RemoveInvitee uninvites a user
func (s *Service) RemoveInvitee(ctx context.Context, meetingID, inviteeID entities.ID) error {
	sc := s.Scope(meetingID)
	m, err := sc.Meeting(ctx)
	if err != nil {
		return err
	}
	if err := s.checkOrganizer(m); err != nil {
		return err
	}
	if _, ok := m.FindInvitee(inviteeID); !ok {
		// The cached copy may predate the invitation.
		if m, err = sc.Load(ctx); err != nil {
			return err
		}
		if _, ok := m.FindInvitee(inviteeID); !ok {
			return ucErrors.ErrInviteeNotFound
		}
	}
	if err := s.repo.RemoveInvitee(ctx, meetingID, inviteeID); err != nil {
		return err
	}
	sc.Reconcile(ctx)
	return nil
}

// AddNote appends a note and notifies everyone in the meeting
func (s *Service) AddNote(ctx context.Context, meetingID entities.ID, content string) (*entities.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ucErrors.ErrEmptyNote
	}

	note, err := s.repo.AddNote(ctx, meetingID, content)
	if err != nil {
		return nil, err
	}
	sc := s.Scope(meetingID)
	sc.Reconcile(ctx)

	if m, ok := sc.Cached(); ok {
		subject, body := noteMessage(m)
		s.notifyAll(ctx, Recipients(m, s.actor()), subject, body)
	}
	return note, nil
}

// DeleteNote removes a note
func (s *Service) DeleteNote(ctx context.Context, meetingID, noteID entities.ID) error {
	if err := s.repo.DeleteNote(ctx, meetingID, noteID); err != nil {
		return err
	}
	s.Scope(meetingID).Reconcile(ctx)
	return nil
}

// CreateActionItem assigns a task and notifies the assignee
func (s *Service) CreateActionItem(ctx context.Context, meetingID entities.ID, input repositories.ActionItemInput) (*entities.ActionItem, error) {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" || input.AssignedToUserID.IsZero() {
		return nil, fmt.Errorf("%w: description and assignee are required", ucErrors.ErrInvalidInput)
	}
	sc := s.Scope(meetingID)
	if err := s.requireOrganizer(ctx, sc); err != nil {
		return nil, err
	}

	item, err := s.repo.CreateActionItem(ctx, meetingID, input)
	if err != nil {
		return nil, err
	}
	m := s.reconciled(ctx, sc, &entities.Meeting{ID: meetingID})

	notified := *item
	if notified.AssignedToUserID.IsZero() {
		notified.AssignedToUserID = input.AssignedToUserID
	}
	subject, body := assignedMessage(m, &notified)
	s.notifyAll(ctx, only(notified.AssignedToUserID, s.actor()), subject, body)
	return item, nil
}

// ToggleStatus flips the submission state of an action item, optionally
// attaching submission files, and notifies the organizer.
func (s *Service) ToggleStatus(ctx context.Context, meetingID, itemID entities.ID, files []repositories.File) (*entities.ActionItem, error) {
	sc := s.Scope(meetingID)
	m, err := sc.Meeting(ctx)
	if err != nil {
		return nil, err
	}
	current, ok := m.FindActionItem(itemID)
	if !ok {
		return nil, ucErrors.ErrActionItemMissing
	}
	if actor := s.actor(); !actor.IsZero() && !current.AssignedToUserID.IsZero() && current.AssignedToUserID != actor {
		return nil, ucErrors.ErrNotAssignee
	}

	item, err := s.repo.ToggleActionItemStatus(ctx, meetingID, itemID, files)
	if err != nil {
		return nil, err
	}
	m = s.reconciled(ctx, sc, m)

	notified := mergeItem(current, item)
	subject, body := submittedMessage(m, &notified)
	s.notifyAll(ctx, only(m.OrganizerID, s.actor()), subject, body)
	return item, nil
}

// ToggleJudgment records the organizer's verdict and notifies the assignee
func (s *Service) ToggleJudgment(ctx context.Context, meetingID, itemID entities.ID, judgment entities.Judgment) (*entities.ActionItem, error) {
	if !judgment.IsValid() {
		return nil, entities.ErrInvalidJudgment
	}
	sc := s.Scope(meetingID)
	m, err := sc.Meeting(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkOrganizer(m); err != nil {
		return nil, err
	}
	current, ok := m.FindActionItem(itemID)
	if !ok {
		return nil, ucErrors.ErrActionItemMissing
	}

	item, err := s.repo.ToggleActionItemJudgment(ctx, meetingID, itemID, judgment)
	if err != nil {
		return nil, err
	}
	m = s.reconciled(ctx, sc, m)

	notified := mergeItem(current, item)
	if notified.Judgment == "" {
		notified.Judgment = judgment
	}
	subject, body := judgedMessage(m, &notified)
	s.notifyAll(ctx, only(notified.AssignedToUserID, s.actor()), subject, body)
	return item, nil
}

// DeleteActionItem removes an action item
func (s *Service) DeleteActionItem(ctx context.Context, meetingID, itemID entities.ID) error {
	sc := s.Scope(meetingID)
	if err := s.requireOrganizer(ctx, sc); err != nil {
		return err
	}
	if err := s.repo.DeleteActionItem(ctx, meetingID, itemID); err != nil {
		return err
	}
	sc.Reconcile(ctx)
	return nil
}

// UploadAttachments stores files on the meeting and notifies everyone in it
func (s *Service) UploadAttachments(ctx context.Context, meetingID entities.ID, files []repositories.File) ([]string, error) {
	if len(files) == 0 {
		return nil, ucErrors.ErrNoAttachments
	}

	urls, err := s.repo.UploadAttachments(ctx, meetingID, files)
	if err != nil {
		return nil, err
	}
	sc := s.Scope(meetingID)
	sc.Reconcile(ctx)

	if m, ok := sc.Cached(); ok {
		subject, body := attachmentMessage(m, len(files))
		s.notifyAll(ctx, Recipients(m, s.actor()), subject, body)
	}
	return urls, nil
}

// DownloadAttachment streams one attachment into w
func (s *Service) DownloadAttachment(ctx context.Context, meetingID entities.ID, fileName string, w io.Writer) (string, error) {
	return s.repo.DownloadAttachment(ctx, meetingID, fileName, w)
}

func (s *Service) actor() entities.ID {
	if s.sessions == nil {
		return ""
	}
	return s.sessions.Current().UserID()
}

func (s *Service) notifyAll(ctx context.Context, userIDs []entities.ID, subject, body string) {
	if s.notifier == nil || len(userIDs) == 0 {
		return
	}
	s.notifier.NotifyBulk(ctx, userIDs, subject, body)
}

// requireOrganizer loads the meeting and checks the actor organizes it
func (s *Service) requireOrganizer(ctx context.Context, sc *Scope) error {
	m, err := sc.Meeting(ctx)
	if err != nil {
		return err
	}
	return s.checkOrganizer(m)
}

// checkOrganizer only applies when both ids are known; the API has the
// final say otherwise.
func (s *Service) checkOrganizer(m *entities.Meeting) error {
	actor := s.actor()
	if actor.IsZero() || m.OrganizerID.IsZero() {
		return nil
	}
	if !m.IsOrganizer(actor) {
		return ucErrors.ErrNotOrganizer
	}
	return nil
}

// reconciled reloads the scope and returns the fresh copy, or fallback when
// the reload failed.
func (s *Service) reconciled(ctx context.Context, sc *Scope, fallback *entities.Meeting) *entities.Meeting {
	sc.Reconcile(ctx)
	if m, ok := sc.Cached(); ok && !sc.Stale() {
		return m
	}
	return fallback
}

// mergeItem overlays the server's answer on the item known before the change
func mergeItem(before *entities.ActionItem, after *entities.ActionItem) entities.ActionItem {
	out := *before
	if after == nil {
		return out
	}
	if after.Description != "" {
		out.Description = after.Description
	}
	if !after.AssignedToUserID.IsZero() {
		out.AssignedToUserID = after.AssignedToUserID
	}
	if after.Status != "" {
		out.Status = after.Status
	}
	if after.Judgment != "" {
		out.Judgment = after.Judgment
	}
	return out
}

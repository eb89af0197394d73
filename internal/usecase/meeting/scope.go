package meeting

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

// Scope is the meeting-scoped data boundary shared by the detail editors. It
// holds the client's copy of one meeting and replaces it wholesale whenever
// the server copy is reloaded.
type Scope struct {
	id     entities.ID
	repo   repositories.MeetingRepository
	logger *zap.Logger

	mu      sync.RWMutex
	meeting *entities.Meeting
	stale   bool
	// gen identifies the newest fetch; older results are not applied.
	gen uint64
}

// NewScope creates an empty scope for meeting id
func NewScope(repo repositories.MeetingRepository, id entities.ID, logger *zap.Logger) *Scope {
	return &Scope{id: id, repo: repo, logger: logger}
}

// ID returns the meeting id
func (s *Scope) ID() entities.ID {
	return s.id
}

// Load fetches the meeting from the server and replaces the local copy. A
// fetch overtaken by a newer one returns its result without applying it.
func (s *Scope) Load(ctx context.Context) (*entities.Meeting, error) {
	m, _, err := s.load(ctx)
	return m, err
}

// load reports whether the result is still the newest one
func (s *Scope) load(ctx context.Context) (*entities.Meeting, bool, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	m, err := s.repo.FindByID(ctx, s.id)

	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.gen == gen
	if err != nil {
		return nil, current, err
	}
	if current {
		s.meeting = m
		s.stale = false
	}
	return cloneMeeting(m), current, nil
}

// Meeting returns a copy of the meeting, loading it first when the scope is
// empty or stale.
func (s *Scope) Meeting(ctx context.Context) (*entities.Meeting, error) {
	s.mu.RLock()
	m, stale := s.meeting, s.stale
	s.mu.RUnlock()

	if m == nil || stale {
		return s.Load(ctx)
	}
	return cloneMeeting(m), nil
}

// Cached returns the local copy without touching the server
func (s *Scope) Cached() (*entities.Meeting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.meeting == nil {
		return nil, false
	}
	return cloneMeeting(s.meeting), true
}

// Stale reports whether the last reconcile failed
func (s *Scope) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Reconcile reloads the meeting after a mutation. A failed reload marks the
// scope stale so the next read retries; it is not reported to the caller.
func (s *Scope) Reconcile(ctx context.Context) {
	if _, current, err := s.load(ctx); err != nil {
		if current {
			s.mu.Lock()
			s.stale = true
			s.mu.Unlock()
		}

		if s.logger != nil {
			s.logger.Warn("⚠️ Meeting not reconciled after change",
				zap.String("meeting_id", s.id.String()),
				zap.Error(err),
			)
		}
	}
}

// PendingInvitees returns invitees who have not answered
func (s *Scope) PendingInvitees() []entities.Invitee {
	return s.invitees(func(i entities.Invitee) bool { return i.IsPending() })
}

// AnsweredInvitees returns invitees who accepted or declined
func (s *Scope) AnsweredInvitees() []entities.Invitee {
	return s.invitees(func(i entities.Invitee) bool { return !i.IsPending() })
}

func (s *Scope) invitees(keep func(entities.Invitee) bool) []entities.Invitee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.Invitee
	if s.meeting == nil {
		return out
	}
	for _, inv := range s.meeting.Invitees {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	return out
}

// ActionItemsFor returns the action items assigned to userID
func (s *Scope) ActionItemsFor(userID entities.ID) []entities.ActionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.ActionItem
	if s.meeting == nil {
		return out
	}
	for _, it := range s.meeting.ActionItems {
		if it.AssignedToUserID == userID {
			out = append(out, it)
		}
	}
	return out
}

// Notes returns the notes oldest first
func (s *Scope) Notes() []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.meeting == nil {
		return nil
	}
	out := append([]entities.Note(nil), s.meeting.Notes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func cloneMeeting(m *entities.Meeting) *entities.Meeting {
	if m == nil {
		return nil
	}
	c := *m
	c.Invitees = append([]entities.Invitee(nil), m.Invitees...)
	c.Notes = append([]entities.Note(nil), m.Notes...)
	c.Attachments = append([]string(nil), m.Attachments...)
	c.ActionItems = make([]entities.ActionItem, len(m.ActionItems))
	for i, it := range m.ActionItems {
		it.AssignmentAttachments = append([]string(nil), it.AssignmentAttachments...)
		it.SubmissionAttachments = append([]string(nil), it.SubmissionAttachments...)
		c.ActionItems[i] = it
	}
	if m.RecurringBookingID != nil {
		id := *m.RecurringBookingID
		c.RecurringBookingID = &id
	}
	return &c
}

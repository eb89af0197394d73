package meeting

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
)

var errBoom = errors.New("boom")

// fakeRepo is an in-memory MeetingRepository. Hooks override single calls.
type fakeRepo struct {
	mu sync.Mutex

	meetings map[entities.ID]*entities.Meeting
	pages    map[repositories.MeetingList][][]entities.Meeting
	all      []entities.Meeting
	files    map[string]string

	listCalls map[repositories.MeetingList]int
	allCalls  int
	findCalls int
	answered  []entities.ID

	listHook func(list repositories.MeetingList, page int) (entities.Page[entities.Meeting], bool, error)
	findHook func(id entities.ID) (*entities.Meeting, bool, error)
	findErr  error
	allErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		meetings:  make(map[entities.ID]*entities.Meeting),
		pages:     make(map[repositories.MeetingList][][]entities.Meeting),
		files:     make(map[string]string),
		listCalls: make(map[repositories.MeetingList]int),
	}
}

func (f *fakeRepo) put(m entities.Meeting) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meetings[m.ID] = cloneMeeting(&m)
}

func (f *fakeRepo) ListPage(ctx context.Context, list repositories.MeetingList, page, pageSize int) (entities.Page[entities.Meeting], error) {
	f.mu.Lock()
	f.listCalls[list]++
	hook := f.listHook
	pages := f.pages[list]
	f.mu.Unlock()

	if hook != nil {
		if p, handled, err := hook(list, page); handled {
			return p, err
		}
	}
	if page < 1 || page > len(pages) {
		return entities.Page[entities.Meeting]{Items: []entities.Meeting{}}, nil
	}
	return entities.Page[entities.Meeting]{Items: pages[page-1]}, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]entities.Meeting(nil), f.all...), nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id entities.ID) (*entities.Meeting, error) {
	f.mu.Lock()
	hook := f.findHook
	f.mu.Unlock()
	if hook != nil {
		if m, handled, err := hook(id); handled {
			return m, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	m, ok := f.meetings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return cloneMeeting(m), nil
}

func (f *fakeRepo) Create(ctx context.Context, in repositories.MeetingInput) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := &entities.Meeting{
		ID:        "100",
		Title:     in.Title,
		Agenda:    in.Agenda,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		RoomID:    in.RoomID,
	}
	for i, uid := range in.InviteeUserIDs {
		m.Invitees = append(m.Invitees, entities.Invitee{
			ID:     entities.ID(strings.Repeat("9", i+1)),
			UserID: uid,
			Status: entities.InviteeStatusPending,
		})
	}
	f.meetings[m.ID] = m
	return &entities.Meeting{ID: m.ID, Title: m.Title}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id entities.ID, in repositories.MeetingInput) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	m.Title, m.Agenda, m.StartTime, m.EndTime = in.Title, in.Agenda, in.StartTime, in.EndTime
	return cloneMeeting(m), nil
}

func (f *fakeRepo) Delete(ctx context.Context, id entities.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.meetings, id)
	return nil
}

func (f *fakeRepo) AddInvitee(ctx context.Context, meetingID entities.ID, in repositories.InviteeInput) (*entities.Invitee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.meetings[meetingID]
	inv := entities.Invitee{ID: "i-new", UserID: in.UserID, Email: in.Email, Status: entities.InviteeStatusPending}
	if inv.UserID.IsZero() {
		inv.UserID = "u-by-email"
	}
	m.Invitees = append(m.Invitees, inv)
	// The API answers without the user id.
	return &entities.Invitee{ID: inv.ID, Email: inv.Email, Status: inv.Status}, nil
}

func (f *fakeRepo) RemoveInvitee(ctx context.Context, meetingID, inviteeID entities.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.meetings[meetingID]
	for i, inv := range m.Invitees {
		if inv.ID == inviteeID {
			m.Invitees = append(m.Invitees[:i], m.Invitees[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRepo) AcceptInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return f.answer(meetingID, inviteeID, entities.AttendanceAccepted)
}

func (f *fakeRepo) DeclineInvite(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return f.answer(meetingID, inviteeID, entities.AttendanceDeclined)
}

// answer records the invitee's attendance and moves the meeting the way the
// server does: out of pending, and into accepted only when accepted.
func (f *fakeRepo) answer(meetingID, inviteeID entities.ID, a entities.Attendance) (*entities.Invitee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, inviteeID)

	moved := entities.Meeting{ID: meetingID}
	if m, ok := f.meetings[meetingID]; ok {
		for i := range m.Invitees {
			if m.Invitees[i].ID == inviteeID {
				m.Invitees[i].Status = entities.InviteeStatusAnswered
				m.Invitees[i].Attendance = a
			}
		}
		moved = *cloneMeeting(m)
	}

	f.pages[repositories.MeetingListPending] = withoutMeeting(f.pages[repositories.MeetingListPending], meetingID)
	accepted := withoutMeeting(f.pages[repositories.MeetingListAccepted], meetingID)
	if a == entities.AttendanceAccepted {
		if len(accepted) == 0 {
			accepted = [][]entities.Meeting{nil}
		}
		accepted[0] = append(accepted[0], moved)
	}
	f.pages[repositories.MeetingListAccepted] = accepted

	return &entities.Invitee{ID: inviteeID, Status: entities.InviteeStatusAnswered, Attendance: a}, nil
}

func withoutMeeting(pages [][]entities.Meeting, id entities.ID) [][]entities.Meeting {
	out := make([][]entities.Meeting, 0, len(pages))
	for _, page := range pages {
		kept := make([]entities.Meeting, 0, len(page))
		for _, m := range page {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		out = append(out, kept)
	}
	return out
}

func (f *fakeRepo) AddNote(ctx context.Context, meetingID entities.ID, content string) (*entities.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := entities.Note{ID: "n-new", Content: content}
	f.meetings[meetingID].Notes = append(f.meetings[meetingID].Notes, n)
	return &n, nil
}

func (f *fakeRepo) DeleteNote(ctx context.Context, meetingID, noteID entities.ID) error {
	return nil
}

func (f *fakeRepo) CreateActionItem(ctx context.Context, meetingID entities.ID, in repositories.ActionItemInput) (*entities.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it := entities.ActionItem{
		ID:               "a-new",
		Description:      in.Description,
		AssignedToUserID: in.AssignedToUserID,
		Status:           entities.ActionItemStatusPending,
		Judgment:         entities.JudgmentUnjudged,
	}
	f.meetings[meetingID].ActionItems = append(f.meetings[meetingID].ActionItems, it)
	return &it, nil
}

func (f *fakeRepo) ToggleActionItemStatus(ctx context.Context, meetingID, itemID entities.ID, files []repositories.File) (*entities.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.meetings[meetingID].FindActionItem(itemID)
	if !ok {
		return nil, errors.New("not found")
	}
	if it.IsSubmitted() {
		it.Status = entities.ActionItemStatusPending
	} else {
		it.Status = entities.ActionItemStatusSubmitted
	}
	out := *it
	return &out, nil
}

func (f *fakeRepo) ToggleActionItemJudgment(ctx context.Context, meetingID, itemID entities.ID, j entities.Judgment) (*entities.ActionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.meetings[meetingID].FindActionItem(itemID)
	if !ok {
		return nil, errors.New("not found")
	}
	it.Judgment = j
	out := *it
	return &out, nil
}

func (f *fakeRepo) DeleteActionItem(ctx context.Context, meetingID, itemID entities.ID) error {
	return nil
}

func (f *fakeRepo) UploadAttachments(ctx context.Context, meetingID entities.ID, files []repositories.File) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var urls []string
	for _, file := range files {
		b, _ := io.ReadAll(file.Content)
		f.files[file.Name] = string(b)
		u := "/files/meetings/" + meetingID.String() + "/" + file.Name
		urls = append(urls, u)
		f.meetings[meetingID].Attachments = append(f.meetings[meetingID].Attachments, u)
	}
	return urls, nil
}

func (f *fakeRepo) DownloadAttachment(ctx context.Context, meetingID entities.ID, fileName string, w io.Writer) (string, error) {
	f.mu.Lock()
	content, ok := f.files[fileName]
	f.mu.Unlock()
	if !ok {
		return "", errors.New("missing file")
	}
	_, err := io.WriteString(w, content)
	return "text/plain", err
}

// recordingNotifier captures NotifyBulk calls
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	to      []entities.ID
	subject string
}

func (n *recordingNotifier) Notify(ctx context.Context, userID entities.ID, subject, body string) {
	n.NotifyBulk(ctx, []entities.ID{userID}, subject, body)
}

func (n *recordingNotifier) NotifyBulk(_ context.Context, userIDs []entities.ID, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{to: append([]entities.ID(nil), userIDs...), subject: subject})
}

func (n *recordingNotifier) all() []notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifyCall(nil), n.calls...)
}

type staticSession struct{ userID entities.ID }

func (s staticSession) Current() entities.Session {
	return entities.Session{Token: "t", User: &entities.User{ID: s.userID}}
}

package meeting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	ucErrors "github.com/aseeltahaa/smartspace/internal/usecase/errors"
)

// DefaultPageSize is the list view page size
const DefaultPageSize = 5

// Section is a read-only view of one paginated meeting list
type Section struct {
	Name        repositories.MeetingList `json:"name"`
	Page        int                      `json:"page"`
	Items       []entities.Meeting       `json:"items"`
	Loading     bool                     `json:"loading"`
	HasNext     bool                     `json:"hasNext"`
	HasPrevious bool                     `json:"hasPrevious"`
}

// View is the whole list page: the four sections in display order and the
// size of the search snapshot.
type View struct {
	Sections      []Section `json:"sections"`
	SnapshotCount int       `json:"snapshotCount"`
}

type sectionState struct {
	page int
	// loadedPage is the page whose response is in items.
	loadedPage int
	items      []entities.Meeting
	hasNext    bool
	loading    bool
	// gen identifies the newest request; older responses are discarded.
	gen uint64
}

// Orchestrator drives the meeting list page: four paginated sections plus an
// unpaginated snapshot used for search.
type Orchestrator struct {
	repo     repositories.MeetingRepository
	pageSize int
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sections map[repositories.MeetingList]*sectionState
	all      []entities.Meeting
	epoch    uint64
}

// NewOrchestrator creates an orchestrator with every section on page 1
func NewOrchestrator(repo repositories.MeetingRepository, pageSize int, logger *zap.Logger) *Orchestrator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	o := &Orchestrator{
		repo:     repo,
		pageSize: pageSize,
		logger:   logger,
		now:      time.Now,
		sections: make(map[repositories.MeetingList]*sectionState, len(repositories.MeetingLists)),
	}
	for _, name := range repositories.MeetingLists {
		o.sections[name] = &sectionState{page: 1, loadedPage: 1}
	}
	return o
}

// Reset puts every section back on an empty page 1 and drops the snapshot.
// In-flight responses are discarded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, st := range o.sections {
		st.gen++
		st.page = 1
		st.loadedPage = 1
		st.items = nil
		st.hasNext = false
		st.loading = false
	}
	o.all = nil
	o.epoch++
}

// PageSize returns the configured page size
func (o *Orchestrator) PageSize() int {
	return o.pageSize
}

// Load fetches the current page of every section and the search snapshot in
// parallel. Either all five results are applied or none.
func (o *Orchestrator) Load(ctx context.Context) error {
	type request struct {
		name repositories.MeetingList
		page int
		gen  uint64
	}

	o.mu.Lock()
	epoch := o.epoch
	reqs := make([]request, 0, len(repositories.MeetingLists))
	for _, name := range repositories.MeetingLists {
		st := o.sections[name]
		st.gen++
		st.loading = true
		reqs = append(reqs, request{name: name, page: st.page, gen: st.gen})
	}
	o.mu.Unlock()

	pages := make([]entities.Page[entities.Meeting], len(reqs))
	var all []entities.Meeting

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			p, err := o.repo.ListPage(gctx, req.name, req.page, o.pageSize)
			if err != nil {
				return fmt.Errorf("load %s meetings: %w", req.name, err)
			}
			pages[i] = p
			return nil
		})
	}
	g.Go(func() error {
		items, err := o.repo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("load all meetings: %w", err)
		}
		all = items
		return nil
	})
	err := g.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()

	for i, req := range reqs {
		st := o.sections[req.name]
		if st.gen != req.gen {
			continue
		}
		st.loading = false
		if err == nil {
			o.applyLocked(req.name, st, req.page, pages[i])
		}
	}
	if err != nil {
		if o.logger != nil {
			o.logger.Warn("⚠️ Meeting lists not refreshed", zap.Error(err))
		}
		return err
	}
	if o.epoch == epoch {
		o.all = all
	}
	return nil
}

// Next moves a section forward one page
func (o *Orchestrator) Next(ctx context.Context, name repositories.MeetingList) (Section, error) {
	o.mu.Lock()
	st, ok := o.sections[name]
	if !ok {
		o.mu.Unlock()
		return Section{}, fmt.Errorf("%w: %s", ucErrors.ErrUnknownSection, name)
	}
	if !st.hasNext {
		o.mu.Unlock()
		return Section{}, ucErrors.ErrNoNextPage
	}
	target := st.page + 1
	o.mu.Unlock()

	return o.setPage(ctx, name, target)
}

// Previous moves a section back one page; it never goes below page 1
func (o *Orchestrator) Previous(ctx context.Context, name repositories.MeetingList) (Section, error) {
	o.mu.Lock()
	st, ok := o.sections[name]
	if !ok {
		o.mu.Unlock()
		return Section{}, fmt.Errorf("%w: %s", ucErrors.ErrUnknownSection, name)
	}
	if st.page <= 1 {
		o.mu.Unlock()
		return Section{}, ucErrors.ErrNoPreviousPage
	}
	target := st.page - 1
	o.mu.Unlock()

	return o.setPage(ctx, name, target)
}

func (o *Orchestrator) setPage(ctx context.Context, name repositories.MeetingList, page int) (Section, error) {
	o.mu.Lock()
	st := o.sections[name]
	st.gen++
	gen := st.gen
	st.page = page
	st.loading = true
	o.mu.Unlock()

	p, err := o.repo.ListPage(ctx, name, page, o.pageSize)

	o.mu.Lock()
	defer o.mu.Unlock()

	if st.gen != gen {
		// A newer request owns the section now.
		return o.sectionLocked(name), nil
	}
	st.loading = false
	if err != nil {
		st.page = st.loadedPage
		return o.sectionLocked(name), err
	}
	o.applyLocked(name, st, page, p)
	return o.sectionLocked(name), nil
}

// applyLocked stores a fetched page. The previous section only shows meetings
// that have ended; hasNext still follows the raw page length.
func (o *Orchestrator) applyLocked(name repositories.MeetingList, st *sectionState, page int, p entities.Page[entities.Meeting]) {
	st.loadedPage = page
	st.hasNext = p.HasNext(o.pageSize)
	if name != repositories.MeetingListPrevious {
		st.items = p.Items
		return
	}
	now := o.now()
	st.items = make([]entities.Meeting, 0, len(p.Items))
	for i := range p.Items {
		if p.Items[i].IsPast(now) {
			st.items = append(st.items, p.Items[i])
		}
	}
}

// Accept answers an invitation with yes and refetches every list
func (o *Orchestrator) Accept(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return o.answer(ctx, meetingID, inviteeID, o.repo.AcceptInvite)
}

// Decline answers an invitation with no and refetches every list
func (o *Orchestrator) Decline(ctx context.Context, meetingID, inviteeID entities.ID) (*entities.Invitee, error) {
	return o.answer(ctx, meetingID, inviteeID, o.repo.DeclineInvite)
}

func (o *Orchestrator) answer(
	ctx context.Context,
	meetingID, inviteeID entities.ID,
	call func(context.Context, entities.ID, entities.ID) (*entities.Invitee, error),
) (*entities.Invitee, error) {
	inv, err := call(ctx, meetingID, inviteeID)
	if err != nil {
		return nil, err
	}
	if err := o.Load(ctx); err != nil && o.logger != nil {
		o.logger.Warn("⚠️ Lists stale after answering invite",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
	}
	return inv, nil
}

// Search matches the snapshot by title or agenda, case-insensitively. It does
// not depend on the pagination state.
func (o *Orchestrator) Search(q string) []entities.Meeting {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]entities.Meeting, 0)
	for i := range o.all {
		if o.all[i].MatchesQuery(q) {
			out = append(out, o.all[i])
		}
	}
	return out
}

// View returns the current state of every section
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := View{SnapshotCount: len(o.all)}
	for _, name := range repositories.MeetingLists {
		v.Sections = append(v.Sections, o.sectionLocked(name))
	}
	return v
}

// Section returns the current state of one section
func (o *Orchestrator) Section(name repositories.MeetingList) (Section, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.sections[name]; !ok {
		return Section{}, fmt.Errorf("%w: %s", ucErrors.ErrUnknownSection, name)
	}
	return o.sectionLocked(name), nil
}

func (o *Orchestrator) sectionLocked(name repositories.MeetingList) Section {
	st := o.sections[name]
	return Section{
		Name:        name,
		Page:        st.page,
		Items:       append([]entities.Meeting(nil), st.items...),
		Loading:     st.loading,
		HasNext:     st.hasNext,
		HasPrevious: st.page > 1,
	}
}

package presenter

import (
	"time"

	meetingDTO "github.com/aseeltahaa/smartspace/internal/adapter/dto/meeting"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	meetingUsecase "github.com/aseeltahaa/smartspace/internal/usecase/meeting"
	"github.com/aseeltahaa/smartspace/pkg/timezone"
)

// ToMeetingResponse renders a meeting for the viewer
func ToMeetingResponse(m *entities.Meeting, viewer entities.ID, now time.Time) meetingDTO.MeetingResponse {
	return meetingDTO.MeetingResponse{
		Meeting:      *m,
		StartLocal:   timezone.FormatInput(m.StartTime),
		EndLocal:     timezone.FormatInput(m.EndTime),
		StartDisplay: timezone.FormatDisplay(m.StartTime),
		EndDisplay:   timezone.FormatDisplay(m.EndTime),
		IsOrganizer:  m.IsOrganizer(viewer),
		IsPast:       m.IsPast(now),
	}
}

// ToMeetingResponses renders a list of meetings
func ToMeetingResponses(items []entities.Meeting, viewer entities.ID, now time.Time) []meetingDTO.MeetingResponse {
	out := make([]meetingDTO.MeetingResponse, 0, len(items))
	for i := range items {
		out = append(out, ToMeetingResponse(&items[i], viewer, now))
	}
	return out
}

// ToDetailResponse renders the detail page from a scope
func ToDetailResponse(m *entities.Meeting, scope *meetingUsecase.Scope, viewer entities.ID, now time.Time) meetingDTO.DetailResponse {
	m.Notes = scope.Notes()
	return meetingDTO.DetailResponse{
		MeetingResponse:  ToMeetingResponse(m, viewer, now),
		PendingInvitees:  nonNil(scope.PendingInvitees()),
		AnsweredInvitees: nonNil(scope.AnsweredInvitees()),
		MyActionItems:    nonNil(scope.ActionItemsFor(viewer)),
		Stale:            scope.Stale(),
	}
}

// ToListViewResponse renders the list page
func ToListViewResponse(v meetingUsecase.View, viewer entities.ID, now time.Time) meetingDTO.ListViewResponse {
	out := meetingDTO.ListViewResponse{SnapshotCount: v.SnapshotCount}
	for _, s := range v.Sections {
		out.Sections = append(out.Sections, ToSectionResponse(s, viewer, now))
	}
	return out
}

// ToSectionResponse renders one list section
func ToSectionResponse(s meetingUsecase.Section, viewer entities.ID, now time.Time) meetingDTO.SectionResponse {
	return meetingDTO.SectionResponse{
		Name:        string(s.Name),
		Page:        s.Page,
		Items:       ToMeetingResponses(s.Items, viewer, now),
		Loading:     s.Loading,
		HasNext:     s.HasNext,
		HasPrevious: s.HasPrevious,
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

package meeting

import (
	"fmt"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/pkg/timezone"
)

func when(m *entities.Meeting) string {
	if m.StartTime.IsZero() {
		return ""
	}
	return " on " + timezone.FormatDisplay(m.StartTime)
}

func createdMessage(m *entities.Meeting) (string, string) {
	return "New meeting: " + m.Title,
		fmt.Sprintf("You have been invited to \"%s\"%s.", m.Title, when(m))
}

func updatedMessage(m *entities.Meeting) (string, string) {
	return "Meeting updated: " + m.Title,
		fmt.Sprintf("\"%s\"%s has been updated.", m.Title, when(m))
}

func deletedMessage(m *entities.Meeting) (string, string) {
	return "Meeting cancelled: " + m.Title,
		fmt.Sprintf("\"%s\"%s has been deleted.", m.Title, when(m))
}

func invitedMessage(m *entities.Meeting) (string, string) {
	return "Meeting invitation: " + m.Title,
		fmt.Sprintf("You have been invited to \"%s\"%s.", m.Title, when(m))
}

func noteMessage(m *entities.Meeting) (string, string) {
	return "New note: " + m.Title,
		fmt.Sprintf("A note was added to \"%s\".", m.Title)
}

func attachmentMessage(m *entities.Meeting, count int) (string, string) {
	return "New attachment: " + m.Title,
		fmt.Sprintf("%d file(s) were attached to \"%s\".", count, m.Title)
}

func assignedMessage(m *entities.Meeting, item *entities.ActionItem) (string, string) {
	body := fmt.Sprintf("You were assigned \"%s\" in \"%s\"", item.Description, m.Title)
	if item.Deadline != nil {
		body += ", due " + timezone.FormatDisplay(*item.Deadline)
	}
	return "New action item", body + "."
}

func submittedMessage(m *entities.Meeting, item *entities.ActionItem) (string, string) {
	verb := "submitted"
	if !item.IsSubmitted() {
		verb = "withdrew the submission of"
	}
	return "Action item " + string(item.Status),
		fmt.Sprintf("An assignee %s \"%s\" in \"%s\".", verb, item.Description, m.Title)
}

func judgedMessage(m *entities.Meeting, item *entities.ActionItem) (string, string) {
	return "Action item " + string(item.Judgment),
		fmt.Sprintf("Your submission for \"%s\" in \"%s\" was marked %s.", item.Description, m.Title, item.Judgment)
}

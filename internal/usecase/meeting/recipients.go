package meeting

import "github.com/aseeltahaa/smartspace/internal/domain/entities"

// Recipients returns the invitees and the organizer of m, without actor and
// without duplicates, invitees first in meeting order.
func Recipients(m *entities.Meeting, actor entities.ID) []entities.ID {
	if m == nil {
		return nil
	}
	seen := map[entities.ID]bool{actor: true, "": true}
	var out []entities.ID
	add := func(id entities.ID) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, inv := range m.Invitees {
		add(inv.UserID)
	}
	add(m.OrganizerID)
	return out
}

// only returns id as a one-element recipient list unless it is the actor
func only(id, actor entities.ID) []entities.ID {
	if id.IsZero() || id == actor {
		return nil
	}
	return []entities.ID{id}
}

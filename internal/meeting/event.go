package meeting

import (
	"sort"

	"smbot/internal/schedule"

	"github.com/google/uuid"
)

// Attendee is one invited member: an opaque identity plus the contact
// address the invite is delivered to.
type Attendee struct {
	Identity string
	Address  string
}

// Event is a single scheduled meeting. It is built once from validated
// inputs and never mutated afterwards.
type Event struct {
	UID       string
	Subject   string
	Window    schedule.Window
	Organizer string // organizer's contact address
	Attendees []Attendee
	JoinURL   string
}

// NewEvent assembles an Event from the resolved pieces of a scheduling
// request. The UID is generated here, exactly once per event; uuid.New is
// safe under concurrent pipelines. Attendees are sorted by identity so the
// serialized document is deterministic for a given input.
func NewEvent(subject string, window schedule.Window, organizer string, participants map[string]string, joinURL string) *Event {
	attendees := make([]Attendee, 0, len(participants))
	for id, addr := range participants {
		attendees = append(attendees, Attendee{Identity: id, Address: addr})
	}
	sort.Slice(attendees, func(i, j int) bool { return attendees[i].Identity < attendees[j].Identity })

	return &Event{
		UID:       uuid.New().String(),
		Subject:   subject,
		Window:    window,
		Organizer: organizer,
		Attendees: attendees,
		JoinURL:   joinURL,
	}
}

// RecipientAddresses returns the distinct attendee addresses, in attendee
// order, for mail delivery.
func (e *Event) RecipientAddresses() []string {
	seen := make(map[string]bool, len(e.Attendees))
	out := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		if seen[a.Address] {
			continue
		}
		seen[a.Address] = true
		out = append(out, a.Address)
	}
	return out
}

package meeting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"smbot/internal/schedule"

	"github.com/emersion/go-ical"
)

func testEvent(t *testing.T) *Event {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	window := schedule.Window{
		Start: time.Date(2024, 6, 1, 14, 0, 0, 0, loc),
		End:   time.Date(2024, 6, 1, 15, 0, 0, 0, loc),
	}
	participants := map[string]string{
		"alice": "alice@example.com",
		"bob":   "bob@example.com",
	}
	return NewEvent("Planning", window, "organizer@example.com", participants, "https://chat.example.com:443/client/rtc.html")
}

func TestNewEventUIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ev := testEvent(t)
		if ev.UID == "" {
			t.Fatal("empty UID")
		}
		if seen[ev.UID] {
			t.Fatalf("UID %q generated twice", ev.UID)
		}
		seen[ev.UID] = true
	}
}

func TestRecipientAddresses(t *testing.T) {
	ev := &Event{Attendees: []Attendee{
		{Identity: "a", Address: "shared@example.com"},
		{Identity: "b", Address: "shared@example.com"},
		{Identity: "c", Address: "c@example.com"},
	}}
	got := ev.RecipientAddresses()
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 distinct addresses", got)
	}
}

func TestEncodeICSRoundTrip(t *testing.T) {
	ev := testEvent(t)

	data, err := EncodeICS(ev)
	if err != nil {
		t.Fatalf("EncodeICS returned error: %v", err)
	}

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		t.Fatalf("decoding produced document failed: %v", err)
	}

	scale := cal.Props.Get(ical.PropCalendarScale)
	if scale == nil {
		t.Fatal("no CALSCALE property")
	}
	if got, err := scale.Text(); err != nil || got != "GREGORIAN" {
		t.Errorf("CALSCALE = %q (err %v), want GREGORIAN", got, err)
	}
	if cal.Props.Get(ical.PropProductID) == nil {
		t.Error("no PRODID property")
	}

	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("document has %d events, want 1", len(events))
	}
	ve := events[0]

	if p := ve.Props.Get(ical.PropSummary); p == nil {
		t.Error("no SUMMARY property")
	} else if got, err := p.Text(); err != nil || got != "Planning" {
		t.Errorf("SUMMARY = %q (err %v), want Planning", got, err)
	}
	if p := ve.Props.Get(ical.PropUID); p == nil {
		t.Error("no UID property")
	} else if got, err := p.Text(); err != nil || got != ev.UID {
		t.Errorf("UID = %q (err %v), want %q", got, err, ev.UID)
	}

	start, err := ve.DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeStart: %v", err)
	}
	if !start.Equal(ev.Window.Start) {
		t.Errorf("DTSTART = %v, want instant %v", start, ev.Window.Start)
	}
	end, err := ve.DateTimeEnd(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeEnd: %v", err)
	}
	if !end.Equal(ev.Window.End) {
		t.Errorf("DTEND = %v, want instant %v", end, ev.Window.End)
	}

	org := ve.Props.Get(ical.PropOrganizer)
	if org == nil {
		t.Fatal("no ORGANIZER property")
	}
	if got, err := org.Text(); err != nil || got != "mailto:organizer@example.com" {
		t.Errorf("ORGANIZER = %q (err %v)", got, err)
	}

	attendees := ve.Props.Values(ical.PropAttendee)
	if len(attendees) != 2 {
		t.Fatalf("document has %d ATTENDEE properties, want 2", len(attendees))
	}
	got := make(map[string]bool)
	for _, p := range attendees {
		if role := p.Params.Get(ical.ParamRole); role != "REQ-PARTICIPANT" {
			t.Errorf("attendee ROLE = %q, want REQ-PARTICIPANT", role)
		}
		text, err := p.Text()
		if err != nil {
			t.Fatalf("attendee text: %v", err)
		}
		got[text] = true
	}
	for _, want := range []string{"mailto:alice@example.com", "mailto:bob@example.com"} {
		if !got[want] {
			t.Errorf("attendee %q missing from %v", want, got)
		}
	}

	if !strings.Contains(string(data), "BEGIN:VEVENT") {
		t.Error("serialized document missing VEVENT block")
	}
}

package meeting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	productID = "-//smbot//Events Calendar//EN"

	// AttachmentFilename and AttachmentContentType describe the document as
	// mailed to invitees.
	AttachmentFilename    = "event.ics"
	AttachmentContentType = "text/calendar"

	roleRequiredParticipant = "REQ-PARTICIPANT"
)

// SerializationError reports a failure while encoding the calendar
// document. The builder only ever receives validated data, so this
// surfaces I/O-level encoder failures, never bad input.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("encode calendar document: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// EncodeICS serializes the event as a single-VEVENT iCalendar document.
// Instants are emitted in UTC so any compliant client interprets them
// unambiguously regardless of its own zone.
func EncodeICS(event *Event) ([]byte, error) {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.UID)
	ve.Props.SetText(ical.PropSummary, event.Subject)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.Window.Start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.Window.End.UTC())

	if event.JoinURL != "" {
		ve.Props.SetText(ical.PropLocation, event.JoinURL)
		ve.Props.SetText(ical.PropURL, event.JoinURL)
	}

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.SetText(fmt.Sprintf("mailto:%s", event.Organizer))
	ve.Props.Add(organizer)

	for _, attendee := range event.Attendees {
		p := ical.NewProp(ical.PropAttendee)
		p.Params.Set(ical.ParamRole, roleRequiredParticipant)
		p.SetText(fmt.Sprintf("mailto:%s", attendee.Address))
		ve.Props.Add(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Children = append(cal.Children, ve)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

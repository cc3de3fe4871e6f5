// Package schedule turns validated command arguments into the concrete
// inputs of a meeting: the time window and the participant set.
package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tj/go-naturaldate"
)

// Meetings are always scheduled in this zone, matching the chat platform
// deployment it serves.
const zoneName = "America/Mexico_City"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var loadZone = sync.OnceValues(func() (*time.Location, error) {
	return time.LoadLocation(zoneName)
})

// Window is the absolute start/end instant pair of a meeting.
type Window struct {
	Start time.Time
	End   time.Time
}

// DateTimeError reports a date or time value that could not be interpreted.
type DateTimeError struct {
	Input string
	Err   error
}

func (e *DateTimeError) Error() string {
	return fmt.Sprintf("cannot interpret %q as a date/time: %v", e.Input, e.Err)
}

func (e *DateTimeError) Unwrap() error { return e.Err }

// ResolveWindow combines a date, a wall-clock time and a duration in minutes
// into a Window in the target zone. The date is either YYYY-MM-DD or a
// natural-language expression ("tomorrow", "next tuesday") resolved against
// the current time; the strict format always wins when it parses.
func ResolveWindow(date, clock string, durationMinutes int) (Window, error) {
	return resolveWindowAt(date, clock, durationMinutes, time.Now())
}

func resolveWindowAt(date, clock string, durationMinutes int, ref time.Time) (Window, error) {
	loc, err := loadZone()
	if err != nil {
		return Window{}, fmt.Errorf("load zone %s: %w", zoneName, err)
	}

	start, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, loc)
	if err != nil {
		start, err = resolveNatural(date, clock, ref.In(loc))
		if err != nil {
			return Window{}, err
		}
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if !end.After(start) {
		return Window{}, &DateTimeError{
			Input: fmt.Sprintf("%d minutes", durationMinutes),
			Err:   errors.New("duration must move the end past the start"),
		}
	}
	return Window{Start: start, End: end}, nil
}

// resolveNatural handles the fallback path: the date is interpreted as a
// natural-language expression and the clock still must be strict HH:MM.
func resolveNatural(date, clock string, ref time.Time) (time.Time, error) {
	day, err := naturaldate.Parse(date, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, &DateTimeError{Input: date + " " + clock, Err: err}
	}
	at, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, &DateTimeError{Input: date + " " + clock, Err: err}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, ref.Location()), nil
}

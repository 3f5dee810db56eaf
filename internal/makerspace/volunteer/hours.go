// Package volunteer rebuilds volunteer work sessions from door badge events.
//
// A session opens when a person badges at the check-in reader and closes at
// the next badge on the check-out reader. Everything is computed from an
// ordered event list in a single pass; nothing is persisted.
package volunteer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange  = errors.New("start is after end")
	ErrTooManyEvents = errors.New("too many access events in range")
)

// RangeError is returned when a computation is asked for a range whose start
// lies after its end.
type RangeError struct {
	Start time.Time
	End   time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s",
		e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339))
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// Event is a single badge scan as seen by the reconstructor.
type Event struct {
	PersonID   int64
	At         time.Time
	Controller int
	Door       int
	Granted    bool
}

// Reader identifies a physical badge reader.
type Reader struct {
	Controller int
	Door       int
}

func (r Reader) matches(ev Event) bool {
	return ev.Controller == r.Controller && ev.Door == r.Door
}

type Readers struct {
	CheckIn  Reader
	CheckOut Reader
}

// DefaultReaders is the makerspace's stock wiring: controller 1 door 1 at the
// volunteer entrance, controller 2 door 2 at the exit.
func DefaultReaders() Readers {
	return Readers{
		CheckIn:  Reader{Controller: 1, Door: 1},
		CheckOut: Reader{Controller: 2, Door: 2},
	}
}

type Session struct {
	PersonID int64
	CheckIn  time.Time
	CheckOut time.Time
	Duration time.Duration
}

type Result struct {
	PersonID int64
	Total    time.Duration
	Sessions []Session
}

type Options struct {
	Readers Readers

	// IncludeDenied lets badge attempts that were refused access open and
	// close sessions. Off by default.
	IncludeDenied bool
}

// Reconstruct pairs check-in and check-out events for personID. Events must be
// in ascending time order. Events for other people are skipped, a repeated
// check-in replaces the pending one, and a check-in still open when the
// events run out is dropped.
func Reconstruct(personID int64, events []Event, opts Options) Result {
	res := Result{PersonID: personID}

	var pending time.Time
	open := false

	for _, ev := range events {
		if ev.PersonID != personID {
			continue
		}
		if !ev.Granted && !opts.IncludeDenied {
			continue
		}

		switch {
		case opts.Readers.CheckIn.matches(ev):
			pending = ev.At
			open = true
		case opts.Readers.CheckOut.matches(ev) && open:
			open = false
			if ev.At.Before(pending) {
				// Out-of-order input; never emit a negative session.
				continue
			}
			d := ev.At.Sub(pending)
			res.Total += d
			res.Sessions = append(res.Sessions, Session{
				PersonID: personID,
				CheckIn:  pending,
				CheckOut: ev.At,
				Duration: d,
			})
		}
	}

	return res
}

// EventSource loads one person's events in [start, end], oldest first.
// A limit of 0 means unbounded.
type EventSource interface {
	FetchEvents(ctx context.Context, personID int64, start, end time.Time, limit int) ([]Event, error)
}

type Calculator struct {
	source        EventSource
	includeDenied bool
	maxEvents     int
}

func NewCalculator(src EventSource, includeDenied bool, maxEvents int) *Calculator {
	if maxEvents < 0 {
		maxEvents = 0
	}
	return &Calculator{source: src, includeDenied: includeDenied, maxEvents: maxEvents}
}

// Compute loads personID's events between start and end (inclusive) and
// reconstructs their sessions using the given readers.
func (c *Calculator) Compute(ctx context.Context, personID int64, start, end time.Time, readers Readers) (Result, error) {
	if start.After(end) {
		return Result{PersonID: personID}, &RangeError{Start: start, End: end}
	}

	limit := 0
	if c.maxEvents > 0 {
		// One extra row tells us the cap was exceeded.
		limit = c.maxEvents + 1
	}

	events, err := c.source.FetchEvents(ctx, personID, start, end, limit)
	if err != nil {
		return Result{PersonID: personID}, fmt.Errorf("fetch events: %w", err)
	}
	if c.maxEvents > 0 && len(events) > c.maxEvents {
		return Result{PersonID: personID}, fmt.Errorf("%w: more than %d", ErrTooManyEvents, c.maxEvents)
	}

	return Reconstruct(personID, events, Options{
		Readers:       readers,
		IncludeDenied: c.includeDenied,
	}), nil
}

// AccruedDuration is Compute without the session breakdown.
func (c *Calculator) AccruedDuration(ctx context.Context, personID int64, start, end time.Time, readers Readers) (time.Duration, error) {
	res, err := c.Compute(ctx, personID, start, end, readers)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

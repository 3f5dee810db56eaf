package volunteer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func checkIn(person int64, t time.Time) volunteer.Event {
	return volunteer.Event{PersonID: person, At: t, Controller: 1, Door: 1, Granted: true}
}

func checkOut(person int64, t time.Time) volunteer.Event {
	return volunteer.Event{PersonID: person, At: t, Controller: 2, Door: 2, Granted: true}
}

func defaultOpts() volunteer.Options {
	return volunteer.Options{Readers: volunteer.DefaultReaders()}
}

// fakeSource serves a fixed event list and records what it was asked for.
type fakeSource struct {
	events    []volunteer.Event
	err       error
	calls     int
	lastLimit int
}

func (f *fakeSource) FetchEvents(_ context.Context, personID int64, start, end time.Time, limit int) ([]volunteer.Event, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []volunteer.Event
	for _, ev := range f.events {
		if ev.PersonID != personID || ev.At.Before(start) || ev.At.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// ── Reconstruct ──────────────────────────────────────────────────────────────

func TestReconstruct_SinglePair(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkOut(1, at(12, 0)),
	}, defaultOpts())

	assert.Equal(t, 4*time.Hour, res.Total)
	want := []volunteer.Session{{PersonID: 1, CheckIn: at(8, 0), CheckOut: at(12, 0), Duration: 4 * time.Hour}}
	if diff := cmp.Diff(want, res.Sessions); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstruct_LastCheckInWins(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkIn(1, at(9, 0)),
		checkOut(1, at(12, 0)),
	}, defaultOpts())

	assert.Equal(t, 3*time.Hour, res.Total)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, at(9, 0), res.Sessions[0].CheckIn)
}

func TestReconstruct_TrailingCheckInDiscarded(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{checkIn(1, at(8, 0))}, defaultOpts())

	assert.Zero(t, res.Total)
	assert.Empty(t, res.Sessions)
}

func TestReconstruct_CheckOutWithoutCheckIn(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{checkOut(1, at(9, 0))}, defaultOpts())

	assert.Zero(t, res.Total)
	assert.Empty(t, res.Sessions)
}

func TestReconstruct_InterleavedPeople(t *testing.T) {
	events := []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkIn(2, at(8, 30)),
		checkOut(2, at(9, 0)),
		checkOut(1, at(10, 0)),
		checkIn(2, at(11, 0)),
		checkIn(1, at(13, 0)),
		checkOut(1, at(14, 15)),
	}

	a := volunteer.Reconstruct(1, events, defaultOpts())
	assert.Equal(t, 2*time.Hour+75*time.Minute, a.Total)
	assert.Len(t, a.Sessions, 2)

	b := volunteer.Reconstruct(2, events, defaultOpts())
	assert.Equal(t, 30*time.Minute, b.Total)
}

func TestReconstruct_UnrelatedEventsDoNotChangeTotal(t *testing.T) {
	own := []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkOut(1, at(9, 0)),
		checkIn(1, at(10, 0)),
		checkOut(1, at(12, 30)),
	}
	noise := []volunteer.Event{
		checkOut(7, at(7, 0)),
		checkIn(7, at(8, 15)),
		checkIn(9, at(9, 30)),
		checkOut(7, at(11, 0)),
	}

	base := volunteer.Reconstruct(1, own, defaultOpts())
	mixed := volunteer.Reconstruct(1, append(append([]volunteer.Event{}, noise...), own...), defaultOpts())
	reversedNoise := []volunteer.Event{noise[3], own[0], noise[2], own[1], noise[1], own[2], noise[0], own[3]}
	shuffled := volunteer.Reconstruct(1, reversedNoise, defaultOpts())

	assert.Equal(t, 3*time.Hour+30*time.Minute, base.Total)
	assert.Equal(t, base.Total, mixed.Total)
	assert.Equal(t, base.Total, shuffled.Total)
}

func TestReconstruct_OtherReadersIgnored(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{
		checkIn(1, at(8, 0)),
		{PersonID: 1, At: at(9, 0), Controller: 1, Door: 3, Granted: true},
		{PersonID: 1, At: at(10, 0), Controller: 3, Door: 2, Granted: true},
		checkOut(1, at(11, 0)),
	}, defaultOpts())

	assert.Equal(t, 3*time.Hour, res.Total)
}

func TestReconstruct_DeniedEventsSkippedByDefault(t *testing.T) {
	denied := checkOut(1, at(9, 0))
	denied.Granted = false
	events := []volunteer.Event{checkIn(1, at(8, 0)), denied, checkOut(1, at(12, 0))}

	res := volunteer.Reconstruct(1, events, defaultOpts())
	assert.Equal(t, 4*time.Hour, res.Total)

	opts := defaultOpts()
	opts.IncludeDenied = true
	res = volunteer.Reconstruct(1, events, opts)
	assert.Equal(t, time.Hour, res.Total)
}

func TestReconstruct_CustomReaders(t *testing.T) {
	opts := volunteer.Options{Readers: volunteer.Readers{
		CheckIn:  volunteer.Reader{Controller: 4, Door: 1},
		CheckOut: volunteer.Reader{Controller: 4, Door: 2},
	}}
	res := volunteer.Reconstruct(1, []volunteer.Event{
		checkIn(1, at(8, 0)),
		{PersonID: 1, At: at(8, 30), Controller: 4, Door: 1, Granted: true},
		{PersonID: 1, At: at(10, 0), Controller: 4, Door: 2, Granted: true},
		checkOut(1, at(11, 0)),
	}, opts)

	assert.Equal(t, 90*time.Minute, res.Total)
}

func TestReconstruct_NeverNegative(t *testing.T) {
	res := volunteer.Reconstruct(1, []volunteer.Event{
		checkIn(1, at(12, 0)),
		checkOut(1, at(8, 0)),
		checkOut(1, at(13, 0)),
	}, defaultOpts())

	assert.Zero(t, res.Total)
	assert.Empty(t, res.Sessions)
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	events := []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkOut(2, at(8, 30)),
		checkOut(1, at(12, 0)),
	}
	snapshot := append([]volunteer.Event(nil), events...)

	first := volunteer.Reconstruct(1, events, defaultOpts())
	second := volunteer.Reconstruct(1, events, defaultOpts())

	if diff := cmp.Diff(snapshot, events); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
}

// ── Calculator ───────────────────────────────────────────────────────────────

func TestCalculator_InvalidRange(t *testing.T) {
	src := &fakeSource{events: []volunteer.Event{checkIn(1, at(8, 0)), checkOut(1, at(12, 0))}}
	calc := volunteer.NewCalculator(src, false, 0)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d, err := calc.AccruedDuration(context.Background(), 1, start, end, volunteer.DefaultReaders())

	require.Error(t, err)
	assert.True(t, errors.Is(err, volunteer.ErrInvalidRange))
	var rangeErr *volunteer.RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, start, rangeErr.Start)
	assert.Zero(t, d)
	assert.Zero(t, src.calls, "source must not be queried for an invalid range")
}

func TestCalculator_ComputesWithinRange(t *testing.T) {
	src := &fakeSource{events: []volunteer.Event{
		checkIn(1, at(8, 0).AddDate(0, 0, -1)),
		checkOut(1, at(12, 0).AddDate(0, 0, -1)),
		checkIn(1, at(8, 0)),
		checkOut(1, at(12, 0)),
	}}
	calc := volunteer.NewCalculator(src, false, 0)

	res, err := calc.Compute(context.Background(), 1, day, day.Add(24*time.Hour), volunteer.DefaultReaders())
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, res.Total)
	assert.Equal(t, int64(1), res.PersonID)
	assert.Zero(t, src.lastLimit)
}

func TestCalculator_NoEventsIsZero(t *testing.T) {
	calc := volunteer.NewCalculator(&fakeSource{}, false, 0)

	d, err := calc.AccruedDuration(context.Background(), 42, day, day.Add(time.Hour), volunteer.DefaultReaders())
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestCalculator_EqualStartAndEnd(t *testing.T) {
	calc := volunteer.NewCalculator(&fakeSource{}, false, 0)

	_, err := calc.Compute(context.Background(), 1, day, day, volunteer.DefaultReaders())
	assert.NoError(t, err)
}

func TestCalculator_MaxEvents(t *testing.T) {
	src := &fakeSource{events: []volunteer.Event{
		checkIn(1, at(8, 0)),
		checkOut(1, at(9, 0)),
		checkIn(1, at(10, 0)),
	}}
	calc := volunteer.NewCalculator(src, false, 2)

	_, err := calc.Compute(context.Background(), 1, day, day.Add(24*time.Hour), volunteer.DefaultReaders())
	assert.ErrorIs(t, err, volunteer.ErrTooManyEvents)
	assert.Equal(t, 3, src.lastLimit)
}

func TestCalculator_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	calc := volunteer.NewCalculator(&fakeSource{err: boom}, false, 0)

	_, err := calc.Compute(context.Background(), 1, day, day.Add(time.Hour), volunteer.DefaultReaders())
	assert.ErrorIs(t, err, boom)
}

func TestCalculator_IncludeDenied(t *testing.T) {
	out := checkOut(1, at(10, 0))
	out.Granted = false
	src := &fakeSource{events: []volunteer.Event{checkIn(1, at(8, 0)), out}}

	strict, err := volunteer.NewCalculator(src, false, 0).
		AccruedDuration(context.Background(), 1, day, day.Add(24*time.Hour), volunteer.DefaultReaders())
	require.NoError(t, err)
	assert.Zero(t, strict)

	lenient, err := volunteer.NewCalculator(src, true, 0).
		AccruedDuration(context.Background(), 1, day, day.Add(24*time.Hour), volunteer.DefaultReaders())
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, lenient)
}

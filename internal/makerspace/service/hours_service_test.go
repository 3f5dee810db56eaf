package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
)

func TestVolunteerHours_TwoSessions(t *testing.T) {
	f := newFixture(t, 0)
	pid := f.addVolunteer(t, "Ada", 1001)

	f.badge(t, 1001, "2026-03-01 09:00:00", 1, 1)
	f.badge(t, 1001, "2026-03-01 11:30:00", 2, 2)
	f.badge(t, 1001, "2026-03-02 13:00:00", 1, 1)
	f.badge(t, 1001, "2026-03-02 14:00:00", 2, 2)
	// Trailing check-in is dropped.
	f.badge(t, 1001, "2026-03-03 08:00:00", 1, 1)

	resp, err := f.hours.Volunteer(context.Background(), types.VolunteerHoursRequest{
		PersonID:        pid,
		Start:           "2026-03-01",
		End:             "2026-03-31",
		IncludeSessions: true,
	})
	if err != nil {
		t.Fatalf("Volunteer: %v", err)
	}
	if resp.TotalSeconds != int64(3.5*3600) {
		t.Errorf("TotalSeconds = %d, want %d", resp.TotalSeconds, int64(3.5*3600))
	}
	if resp.TotalHours != 3.5 {
		t.Errorf("TotalHours = %v, want 3.5", resp.TotalHours)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(resp.Sessions))
	}
	if resp.Sessions[0].CheckIn != "2026-03-01T09:00:00Z" || resp.Sessions[0].DurationSeconds != 9000 {
		t.Errorf("unexpected first session: %+v", resp.Sessions[0])
	}
	if resp.CheckIn != (types.Reader{Controller: 1, Door: 1}) {
		t.Errorf("expected default check-in reader, got %+v", resp.CheckIn)
	}
}

func TestVolunteerHours_SessionsOmittedByDefault(t *testing.T) {
	f := newFixture(t, 0)
	pid := f.addVolunteer(t, "Ada", 1001)
	f.badge(t, 1001, "2026-03-01 09:00:00", 1, 1)
	f.badge(t, 1001, "2026-03-01 10:00:00", 2, 2)

	resp, err := f.hours.Volunteer(context.Background(), types.VolunteerHoursRequest{
		PersonID: pid, Start: "2026-03-01", End: "2026-03-01",
	})
	if err != nil {
		t.Fatalf("Volunteer: %v", err)
	}
	if resp.Sessions != nil {
		t.Errorf("expected no session breakdown, got %+v", resp.Sessions)
	}
	if resp.TotalSeconds != 3600 {
		t.Errorf("TotalSeconds = %d, want 3600", resp.TotalSeconds)
	}
}

func TestVolunteerHours_ReaderOverride(t *testing.T) {
	f := newFixture(t, 0)
	pid := f.addVolunteer(t, "Ada", 1001)

	f.badge(t, 1001, "2026-03-01 09:00:00", 3, 1)
	f.badge(t, 1001, "2026-03-01 09:45:00", 3, 2)

	resp, err := f.hours.Volunteer(context.Background(), types.VolunteerHoursRequest{
		PersonID:           pid,
		Start:              "2026-03-01",
		End:                "2026-03-01",
		CheckInController:  ptr(3),
		CheckOutController: ptr(3),
		CheckOutDoor:       ptr(2),
	})
	if err != nil {
		t.Fatalf("Volunteer: %v", err)
	}
	if resp.TotalSeconds != 45*60 {
		t.Errorf("TotalSeconds = %d, want %d", resp.TotalSeconds, 45*60)
	}
}

func TestVolunteerHours_Errors(t *testing.T) {
	f := newFixture(t, 0)
	pid := f.addVolunteer(t, "Ada", 1001)
	gone := f.addVolunteer(t, "Gone", 2002)
	if err := f.people.ApplyPersonLifecycle(context.Background(), gone, store.ActionSoftDelete); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	tests := []struct {
		name string
		req  types.VolunteerHoursRequest
		want error
	}{
		{"start after end", types.VolunteerHoursRequest{PersonID: pid, Start: "2026-03-02", End: "2026-03-01"}, volunteer.ErrInvalidRange},
		{"bad start", types.VolunteerHoursRequest{PersonID: pid, Start: "yesterday", End: "2026-03-01"}, service.ErrInvalidInput},
		{"missing end", types.VolunteerHoursRequest{PersonID: pid, Start: "2026-03-01"}, service.ErrInvalidInput},
		{"same readers", types.VolunteerHoursRequest{
			PersonID: pid, Start: "2026-03-01", End: "2026-03-02",
			CheckOutController: ptr(1), CheckOutDoor: ptr(1),
		}, service.ErrInvalidInput},
		{"zero door", types.VolunteerHoursRequest{PersonID: pid, Start: "2026-03-01", End: "2026-03-02", CheckInDoor: ptr(0)}, service.ErrInvalidInput},
		{"unknown person", types.VolunteerHoursRequest{PersonID: 999, Start: "2026-03-01", End: "2026-03-02"}, store.ErrNotFound},
		{"deleted person", types.VolunteerHoursRequest{PersonID: gone, Start: "2026-03-01", End: "2026-03-02"}, service.ErrDeleted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.hours.Volunteer(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestVolunteerHours_TooManyEvents(t *testing.T) {
	f := newFixture(t, 3)
	pid := f.addVolunteer(t, "Ada", 1001)
	for _, at := range []string{
		"2026-03-01 09:00:00", "2026-03-01 10:00:00",
		"2026-03-01 11:00:00", "2026-03-01 12:00:00",
	} {
		f.badge(t, 1001, at, 1, 1)
	}

	_, err := f.hours.Volunteer(context.Background(), types.VolunteerHoursRequest{
		PersonID: pid, Start: "2026-03-01", End: "2026-03-01",
	})
	if !errors.Is(err, volunteer.ErrTooManyEvents) {
		t.Fatalf("expected ErrTooManyEvents, got %v", err)
	}
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
	"github.com/BrandonDHaskell/makerspace-crm/internal/metrics"
)

type HoursConfig struct {
	// Readers fills in whichever reader fields a request leaves unset.
	Readers       volunteer.Readers
	IncludeDenied bool
	MaxEvents     int // 0 = unbounded
}

type HoursService struct {
	calc     *volunteer.Calculator
	people   store.PersonStore
	defaults volunteer.Readers
	logger   zerolog.Logger
}

func NewHoursService(logs store.AccessLogStore, people store.PersonStore, cfg HoursConfig, logger zerolog.Logger) *HoursService {
	return &HoursService{
		calc:     volunteer.NewCalculator(accessLogSource{logs: logs}, cfg.IncludeDenied, cfg.MaxEvents),
		people:   people,
		defaults: cfg.Readers,
		logger:   logger.With().Str(mlog.FieldComponent, "volunteer_hours").Logger(),
	}
}

func (s *HoursService) Volunteer(ctx context.Context, req types.VolunteerHoursRequest) (types.VolunteerHoursResponse, error) {
	readers, err := s.readers(req)
	if err != nil {
		return types.VolunteerHoursResponse{}, err
	}
	from, to, err := parseRange(req.Start, req.End)
	if err != nil {
		if errors.Is(err, volunteer.ErrInvalidRange) {
			metrics.IncHoursComputation(metrics.OutcomeInvalidRange)
		}
		return types.VolunteerHoursResponse{}, err
	}

	p, err := s.people.GetPerson(ctx, req.PersonID)
	if err != nil {
		return types.VolunteerHoursResponse{}, err
	}
	if p.Deleted {
		return types.VolunteerHoursResponse{}, ErrDeleted
	}

	res, err := s.calc.Compute(ctx, req.PersonID, from, to, readers)
	switch {
	case errors.Is(err, volunteer.ErrInvalidRange):
		metrics.IncHoursComputation(metrics.OutcomeInvalidRange)
		return types.VolunteerHoursResponse{}, err
	case errors.Is(err, volunteer.ErrTooManyEvents):
		metrics.IncHoursComputation(metrics.OutcomeTooManyEvents)
		mlog.WithContext(ctx, s.logger).Warn().
			Int64(mlog.FieldPersonID, req.PersonID).Err(err).Msg("volunteer hours range too large")
		return types.VolunteerHoursResponse{}, err
	case err != nil:
		metrics.IncHoursComputation(metrics.OutcomeError)
		mlog.WithContext(ctx, s.logger).Error().
			Int64(mlog.FieldPersonID, req.PersonID).Err(err).Msg("compute volunteer hours")
		return types.VolunteerHoursResponse{}, err
	}
	metrics.IncHoursComputation(metrics.OutcomeOK)
	metrics.ObserveSessions(len(res.Sessions))

	out := types.VolunteerHoursResponse{
		PersonID:     req.PersonID,
		Start:        formatTime(from),
		End:          formatTime(to),
		CheckIn:      types.Reader{Controller: readers.CheckIn.Controller, Door: readers.CheckIn.Door},
		CheckOut:     types.Reader{Controller: readers.CheckOut.Controller, Door: readers.CheckOut.Door},
		TotalSeconds: int64(res.Total.Seconds()),
		TotalHours:   res.Total.Hours(),
	}
	if req.IncludeSessions {
		out.Sessions = make([]types.VolunteerSession, 0, len(res.Sessions))
		for _, sess := range res.Sessions {
			out.Sessions = append(out.Sessions, types.VolunteerSession{
				CheckIn:         formatTime(sess.CheckIn),
				CheckOut:        formatTime(sess.CheckOut),
				DurationSeconds: int64(sess.Duration.Seconds()),
			})
		}
	}
	return out, nil
}

func (s *HoursService) readers(req types.VolunteerHoursRequest) (volunteer.Readers, error) {
	r := s.defaults
	set := func(dst *int, v *int, field string) error {
		if v == nil {
			return nil
		}
		if *v <= 0 {
			return invalid(field, "must be a positive integer")
		}
		*dst = *v
		return nil
	}
	for _, f := range []struct {
		dst   *int
		v     *int
		field string
	}{
		{&r.CheckIn.Controller, req.CheckInController, "checkin_controller"},
		{&r.CheckIn.Door, req.CheckInDoor, "checkin_door"},
		{&r.CheckOut.Controller, req.CheckOutController, "checkout_controller"},
		{&r.CheckOut.Door, req.CheckOutDoor, "checkout_door"},
	} {
		if err := set(f.dst, f.v, f.field); err != nil {
			return volunteer.Readers{}, err
		}
	}
	if r.CheckIn == r.CheckOut {
		return volunteer.Readers{}, invalid("checkout_door", "check-out reader must differ from the check-in reader")
	}
	return r, nil
}

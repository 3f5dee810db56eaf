package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
	"github.com/BrandonDHaskell/makerspace-crm/internal/metrics"
)

type AccessLogService struct {
	logs     store.AccessLogStore
	cards    store.KeyCardStore
	people   store.PersonStore
	registry *ControllerRegistry
	logger   zerolog.Logger
}

func NewAccessLogService(
	logs store.AccessLogStore,
	cards store.KeyCardStore,
	people store.PersonStore,
	reg *ControllerRegistry,
	logger zerolog.Logger,
) *AccessLogService {
	return &AccessLogService{
		logs:     logs,
		cards:    cards,
		people:   people,
		registry: reg,
		logger:   logger.With().Str(mlog.FieldComponent, "access_log").Logger(),
	}
}

// Ingest records one controller event. Re-sending an event that is already
// stored succeeds and reports Duplicate.
func (s *AccessLogService) Ingest(ctx context.Context, req types.AccessLogRequest) (types.AccessLogResponse, error) {
	rec, err := s.buildRecord(ctx, req)
	if err != nil {
		metrics.IncAccessEvent(metrics.OutcomeRejected)
		return types.AccessLogResponse{}, err
	}
	logger := mlog.WithContext(ctx, s.logger).With().
		Int(mlog.FieldController, rec.Controller).
		Int(mlog.FieldDoor, rec.Door).
		Int64(mlog.FieldPersonID, rec.PersonID).
		Logger()

	known, err := s.registry.IsKnown(ctx, rec.Controller)
	if err != nil {
		metrics.IncAccessEvent(metrics.OutcomeError)
		return types.AccessLogResponse{}, err
	}
	if !known {
		// Still recorded; the controller row is created disabled.
		logger.Warn().Msg("event from unregistered controller")
	}

	id, inserted, err := s.logs.RecordEvent(ctx, rec)
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			metrics.IncAccessEvent(metrics.OutcomeRejected)
			return types.AccessLogResponse{}, err
		}
		metrics.IncAccessEvent(metrics.OutcomeError)
		logger.Error().Err(err).Msg("record access event")
		return types.AccessLogResponse{}, err
	}

	if err := s.registry.NoteSeen(ctx, rec.Controller, rec.EventAt); err != nil {
		logger.Warn().Err(err).Msg("mark controller seen")
	}

	resp := types.AccessLogResponse{LogID: id, LogSHA1: rec.LogSHA1}
	if inserted {
		metrics.IncAccessEvent(metrics.OutcomeInserted)
		resp.Message = "Log created successfully"
		logger.Debug().Int64(mlog.FieldLogID, id).Msg("access event recorded")
	} else {
		metrics.IncAccessEvent(metrics.OutcomeDuplicate)
		resp.Message = "Log already recorded"
		resp.Duplicate = true
	}
	return resp, nil
}

func (s *AccessLogService) buildRecord(ctx context.Context, req types.AccessLogRequest) (store.AccessLogRecord, error) {
	switch {
	case strings.TrimSpace(req.EventDT) == "":
		return store.AccessLogRecord{}, invalid("event_dt", "is required")
	case req.CardNumber == nil:
		return store.AccessLogRecord{}, invalid("card_number", "is required")
	case req.Controller == nil || *req.Controller <= 0:
		return store.AccessLogRecord{}, invalid("controller", "must be a positive integer")
	case req.Door == nil || *req.Door <= 0:
		return store.AccessLogRecord{}, invalid("door", "must be a positive integer")
	case req.AccessGranted == nil:
		return store.AccessLogRecord{}, invalid("access_granted", "is required")
	}

	at, ok := parseEventTime(req.EventDT)
	if !ok {
		return store.AccessLogRecord{}, invalid("event_dt", "must be 'YYYY-MM-DD HH:MM:SS' or RFC3339")
	}

	rec := store.AccessLogRecord{
		LogSHA1:     strings.ToLower(strings.TrimSpace(req.LogSHA1)),
		EventAt:     at,
		CardNumber:  *req.CardNumber,
		EventType:   strings.TrimSpace(req.EventType),
		EventTypeID: req.EventTypeID,
		EventReason: strings.TrimSpace(req.EventReason),
		Door:        *req.Door,
		Controller:  *req.Controller,
		Granted:     *req.AccessGranted,
	}

	if req.PersonID != nil {
		if *req.PersonID <= 0 {
			return store.AccessLogRecord{}, invalid("person_id", "must be a positive integer")
		}
		rec.PersonID = *req.PersonID
	} else {
		pid, err := s.cards.PersonForCard(ctx, rec.CardNumber)
		if errors.Is(err, store.ErrNotFound) {
			return store.AccessLogRecord{}, fmt.Errorf("card %d: %w", rec.CardNumber, ErrUnknownCard)
		}
		if err != nil {
			return store.AccessLogRecord{}, err
		}
		rec.PersonID = pid
	}

	if rec.LogSHA1 == "" {
		rec.LogSHA1 = eventSHA1(rec)
	}
	return rec, nil
}

// eventSHA1 fingerprints the fields a controller reports for one event, so
// repeated polls of the same log row collapse to a single record. The time is
// hashed at the millisecond resolution the store keeps.
func eventSHA1(rec store.AccessLogRecord) string {
	h := sha1.New()
	fmt.Fprintf(h, "%d|%d|%d|%d|%d|%s|%t",
		rec.EventAt.UnixMilli(),
		rec.CardNumber, rec.Controller, rec.Door, rec.EventTypeID, rec.EventReason, rec.Granted)
	return hex.EncodeToString(h.Sum(nil))
}

func (s *AccessLogService) Get(ctx context.Context, id int64) (types.AccessLog, error) {
	rec, err := s.logs.GetEvent(ctx, id)
	if err != nil {
		return types.AccessLog{}, err
	}
	return toAccessLog(rec), nil
}

func (s *AccessLogService) Delete(ctx context.Context, id int64) error {
	if err := s.logs.DeleteEvent(ctx, id); err != nil {
		return err
	}
	mlog.WithContext(ctx, s.logger).Info().Int64(mlog.FieldLogID, id).Msg("access event deleted")
	return nil
}

// ListForPerson returns a person's raw events in [start, end], oldest first.
func (s *AccessLogService) ListForPerson(ctx context.Context, personID int64, start, end string) (types.AccessLogList, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return types.AccessLogList{}, err
	}
	p, err := s.people.GetPerson(ctx, personID)
	if err != nil {
		return types.AccessLogList{}, err
	}
	if p.Deleted {
		return types.AccessLogList{}, ErrDeleted
	}

	recs, err := s.logs.FetchEvents(ctx, personID, from, to, 0)
	if err != nil {
		return types.AccessLogList{}, err
	}
	out := types.AccessLogList{
		PersonID: personID,
		Start:    formatTime(from),
		End:      formatTime(to),
		Events:   make([]types.AccessLog, 0, len(recs)),
	}
	for _, r := range recs {
		out.Events = append(out.Events, toAccessLog(r))
	}
	return out, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, ok := parseRangeBound(start, false)
	if !ok {
		return time.Time{}, time.Time{}, invalid("start", "must be a date, 'YYYY-MM-DD HH:MM:SS' or RFC3339")
	}
	to, ok := parseRangeBound(end, true)
	if !ok {
		return time.Time{}, time.Time{}, invalid("end", "must be a date, 'YYYY-MM-DD HH:MM:SS' or RFC3339")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, &volunteer.RangeError{Start: from, End: to}
	}
	return from, to, nil
}

func toAccessLog(r store.AccessLogRecord) types.AccessLog {
	return types.AccessLog{
		ID:            r.ID,
		LogSHA1:       r.LogSHA1,
		EventDT:       formatTime(r.EventAt),
		CardNumber:    r.CardNumber,
		EventType:     r.EventType,
		EventTypeID:   r.EventTypeID,
		EventReason:   r.EventReason,
		Door:          r.Door,
		Controller:    r.Controller,
		AccessGranted: r.Granted,
		PersonID:      r.PersonID,
	}
}

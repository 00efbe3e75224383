package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
	"github.com/bnema/timetrack-cli/internal/runclock"
	"github.com/charmbracelet/log"
)

const maxDayRange = 62

type TrackingService struct {
	api    ports.SessionAPI
	clock  ports.Clock
	loc    *time.Location
	logger *log.Logger
}

type TrackingOption func(*TrackingService)

func WithLocation(loc *time.Location) TrackingOption {
	return func(s *TrackingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *log.Logger) TrackingOption {
	return func(s *TrackingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewTrackingService(api ports.SessionAPI, clock ports.Clock, opts ...TrackingOption) *TrackingService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &TrackingService{
		api:    api,
		clock:  clock,
		loc:    time.Local,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TrackingService) Location() *time.Location {
	return s.loc
}

func (s *TrackingService) Today() domain.Day {
	return domain.DayOf(s.clock.Now().In(s.loc))
}

// CurrentSession returns the live session, falling back to the latest session
// of today. A session started before midnight and still running is found via
// yesterday's list. It returns nil when nothing was tracked today.
func (s *TrackingService) CurrentSession(ctx context.Context) (*domain.WorkSession, error) {
	today := s.Today()

	sessions, err := s.api.SessionsForDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", today, err)
	}

	if live := latestSession(sessions, true); live != nil {
		return live, nil
	}

	yesterday := today.AddDays(-1)
	previous, err := s.api.SessionsForDay(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", yesterday, err)
	}
	if live := latestSession(previous, true); live != nil {
		return live, nil
	}

	return latestSession(sessions, false), nil
}

func (s *TrackingService) Status(ctx context.Context) (Status, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return Status{}, err
	}

	now := s.clock.Now()
	return s.statusOf(session, now), nil
}

func (s *TrackingService) Start(ctx context.Context, cmd StartCommand) (Status, error) {
	session, err := s.api.StartSession(ctx, cmd.request())
	if err != nil {
		return Status{}, fmt.Errorf("start session: %w", err)
	}

	s.logger.Info("session started", "session", session.ID, "project", session.Project)
	return s.statusOf(&session, s.clock.Now()), nil
}

// TogglePause pauses a running session or resumes a paused one.
func (s *TrackingService) TogglePause(ctx context.Context) (Status, domain.PauseAction, error) {
	session, action, err := s.api.TogglePause(ctx)
	if err != nil {
		return Status{}, "", fmt.Errorf("toggle pause: %w", err)
	}

	s.logger.Info("session "+string(action), "session", session.ID)
	return s.statusOf(&session, s.clock.Now()), action, nil
}

// Add records a finished session between cmd.Start and cmd.End.
func (s *TrackingService) Add(ctx context.Context, cmd AddCommand) (Status, error) {
	req, err := cmd.request()
	if err != nil {
		return Status{}, err
	}

	session, err := s.api.CreateManualSession(ctx, req)
	if err != nil {
		return Status{}, fmt.Errorf("add session: %w", err)
	}

	s.logger.Info("session added", "session", session.ID, "start", req.Start, "end", req.End)
	return s.statusOf(&session, s.clock.Now()), nil
}

func (s *TrackingService) Stop(ctx context.Context, comment string) (Status, error) {
	session, err := s.api.StopSession(ctx, comment)
	if err != nil {
		return Status{}, fmt.Errorf("stop session: %w", err)
	}

	s.logger.Info("session stopped", "session", session.ID)
	return s.statusOf(&session, s.clock.Now()), nil
}

// Days returns one entry per day in [from, to], with today's running session
// added to today's totals.
func (s *TrackingService) Days(ctx context.Context, from, to domain.Day) ([]DayTotals, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s is before %s", domain.ErrInvalidDayRange, to, from)
	}
	if from.AddDays(maxDayRange).Before(to) {
		return nil, fmt.Errorf("%w: more than %d days", domain.ErrInvalidDayRange, maxDayRange)
	}

	summaries, err := s.api.DaySummaries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load day summaries: %w", err)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Day.Before(summaries[j].Day)
	})

	today := s.Today()
	var live *domain.WorkSession
	if !today.Before(from) && !to.Before(today) {
		live, err = s.CurrentSession(ctx)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	totals := make([]DayTotals, 0, len(summaries))
	for _, summary := range summaries {
		totals = append(totals, ApplyLiveSession(summary, live, now, s.loc))
	}

	return totals, nil
}

func (s *TrackingService) Ping(ctx context.Context) error {
	if err := s.api.Health(ctx); err != nil {
		return fmt.Errorf("ping api: %w", err)
	}
	return nil
}

func (s *TrackingService) statusOf(session *domain.WorkSession, now time.Time) Status {
	runtime := runclock.Compute(session, now)
	for _, anomaly := range runtime.Anomalies {
		s.logger.Warn("session snapshot anomaly", "session", session.ID, "status", session.Status, "anomaly", anomaly)
	}

	return Status{Session: session, Runtime: runtime, CheckedAt: now}
}

func latestSession(sessions []domain.WorkSession, liveOnly bool) *domain.WorkSession {
	var latest *domain.WorkSession
	for i := range sessions {
		candidate := &sessions[i]
		if liveOnly && !candidate.Status.Live() {
			continue
		}
		if latest == nil || candidate.StartTime.After(latest.StartTime) {
			latest = candidate
		}
	}
	if latest == nil {
		return nil
	}

	found := *latest
	return &found
}

// IsNoActiveSession reports whether err means there was nothing to pause or stop.
func IsNoActiveSession(err error) bool {
	return errors.Is(err, domain.ErrNoActiveSession)
}

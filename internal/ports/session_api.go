package ports

import (
	"context"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
)

type StartSessionRequest struct {
	Project string
	Tags    []string
	Comment string
}

// ManualSessionRequest records a finished session after the fact.
type ManualSessionRequest struct {
	Start   time.Time
	End     time.Time
	Project string
	Tags    []string
	Comment string
}

// SessionAPI is the server side of session tracking.
type SessionAPI interface {
	StartSession(ctx context.Context, req StartSessionRequest) (domain.WorkSession, error)
	TogglePause(ctx context.Context) (domain.WorkSession, domain.PauseAction, error)
	StopSession(ctx context.Context, comment string) (domain.WorkSession, error)
	CreateManualSession(ctx context.Context, req ManualSessionRequest) (domain.WorkSession, error)
	SessionsForDay(ctx context.Context, day domain.Day) ([]domain.WorkSession, error)
	DaySummaries(ctx context.Context, from, to domain.Day) ([]domain.DaySummary, error)
	Health(ctx context.Context) error
}

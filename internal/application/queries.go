package application

import (
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/runclock"
)

// Status is the tracking state as of CheckedAt.
type Status struct {
	Session   *domain.WorkSession
	Runtime   runclock.Result
	CheckedAt time.Time
}

// DayTotals is a server day summary with the running session's time folded
// in when it belongs to that day.
type DayTotals struct {
	Summary         domain.DaySummary
	OvertimeSeconds int64
	Live            bool
}

type ResolvedProfile struct {
	Profile domain.Profile
	Token   string
}

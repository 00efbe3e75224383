package application

import (
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/runclock"
)

// ApplyLiveSession adds the running session's worked and paused seconds to
// summary, but only if the session is still live and started on summary.Day
// in loc. Server totals never include a session before it stops, so the live
// worked seconds also raise the server's overtime.
func ApplyLiveSession(summary domain.DaySummary, session *domain.WorkSession, now time.Time, loc *time.Location) DayTotals {
	totals := DayTotals{Summary: summary, OvertimeSeconds: summary.Overtime()}

	if session != nil && session.Status.Live() && session.StartDay(loc) == summary.Day {
		runtime := runclock.Compute(session, now)
		totals.Summary.WorkSeconds += runtime.WorkedSeconds
		totals.Summary.PauseSeconds += runtime.PausedSeconds
		totals.OvertimeSeconds += runtime.WorkedSeconds
		totals.Live = true
	}

	return totals
}

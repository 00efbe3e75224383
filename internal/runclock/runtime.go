// Package runclock derives the live runtime of a work session from the
// server's timestamps and keeps it refreshed while the session is running.
package runclock

import (
	"fmt"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
)

type StatusLabel string

const (
	StatusReady   StatusLabel = "Ready"
	StatusRunning StatusLabel = "Running"
	StatusPaused  StatusLabel = "Paused"
	StatusStopped StatusLabel = "Stopped"
)

// Anomaly names a server snapshot inconsistency that Compute papered over.
type Anomaly string

const (
	AnomalyMissingStart      Anomaly = "missing_start_time"
	AnomalyMissingPauseStart Anomaly = "missing_last_pause_start"
	AnomalyClockSkew         Anomaly = "start_time_in_future"
	AnomalyPauseSkew         Anomaly = "pause_start_in_future"
	AnomalyPauseExceedsTotal Anomaly = "pause_exceeds_elapsed"
	AnomalyNegativeTotal     Anomaly = "negative_total_seconds"
	AnomalyUnknownStatus     Anomaly = "unknown_status"
)

type Result struct {
	WorkedSeconds int64
	PausedSeconds int64
	RuntimeText   string
	Status        StatusLabel
	Anomalies     []Anomaly
}

// Live reports whether the result keeps changing with time.
func (r Result) Live() bool {
	return r.Status == StatusRunning || r.Status == StatusPaused
}

// Compute is pure: identical inputs always give identical results, and it
// never panics on incomplete snapshots.
func Compute(session *domain.WorkSession, now time.Time) Result {
	if session == nil {
		return Result{RuntimeText: FormatRuntime(0), Status: StatusReady}
	}

	var anomalies []Anomaly
	flag := func(a Anomaly) { anomalies = append(anomalies, a) }

	paused := session.PausedDuration
	if paused < 0 {
		flag(AnomalyPauseExceedsTotal)
		paused = 0
	}

	if session.Status == domain.SessionStopped {
		worked := stoppedWorked(session, now, paused, flag)
		return Result{
			WorkedSeconds: worked,
			PausedSeconds: paused,
			RuntimeText:   FormatRuntime(worked),
			Status:        StatusStopped,
			Anomalies:     anomalies,
		}
	}

	status := StatusRunning
	switch session.Status {
	case domain.SessionActive:
	case domain.SessionPaused:
		status = StatusPaused
	default:
		flag(AnomalyUnknownStatus)
	}

	elapsed := elapsedSince(session.StartTime, now, flag)

	if status == StatusPaused {
		if session.LastPauseStart == nil || session.LastPauseStart.IsZero() {
			flag(AnomalyMissingPauseStart)
		} else {
			current := wholeSeconds(now.Sub(*session.LastPauseStart))
			if current < 0 {
				flag(AnomalyPauseSkew)
				current = 0
			}
			paused += current
		}
	}

	worked := elapsed - paused
	if worked < 0 {
		flag(AnomalyPauseExceedsTotal)
		worked = 0
	}

	return Result{
		WorkedSeconds: worked,
		PausedSeconds: paused,
		RuntimeText:   FormatRuntime(worked),
		Status:        status,
		Anomalies:     anomalies,
	}
}

// stoppedWorked prefers the server's total. Without one it falls back to the
// stop time, and only then to now.
func stoppedWorked(session *domain.WorkSession, now time.Time, paused int64, flag func(Anomaly)) int64 {
	if session.TotalSeconds != nil {
		if *session.TotalSeconds < 0 {
			flag(AnomalyNegativeTotal)
			return 0
		}
		return *session.TotalSeconds
	}

	end := now
	if session.StopTime != nil && !session.StopTime.IsZero() {
		end = *session.StopTime
	}

	worked := elapsedSince(session.StartTime, end, flag) - paused
	if worked < 0 {
		flag(AnomalyPauseExceedsTotal)
		return 0
	}
	return worked
}

func elapsedSince(start, now time.Time, flag func(Anomaly)) int64 {
	if start.IsZero() {
		flag(AnomalyMissingStart)
		return 0
	}

	elapsed := wholeSeconds(now.Sub(start))
	if elapsed < 0 {
		flag(AnomalyClockSkew)
		return 0
	}
	return elapsed
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// FormatRuntime renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatRuntime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

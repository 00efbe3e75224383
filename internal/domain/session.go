package domain

import "time"

type SessionID int64

type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionPaused  SessionStatus = "paused"
	SessionStopped SessionStatus = "stopped"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionPaused, SessionStopped:
		return true
	default:
		return false
	}
}

// Live reports whether the session still accrues time.
func (s SessionStatus) Live() bool {
	return s == SessionActive || s == SessionPaused
}

// WorkSession is a server-owned snapshot. Timestamps the server omitted or sent
// in an unreadable form are zero or nil.
type WorkSession struct {
	ID             SessionID
	StartTime      time.Time
	StopTime       *time.Time
	Status         SessionStatus
	Project        string
	Tags           []string
	Comment        string
	PausedDuration int64
	TotalSeconds   *int64
	LastPauseStart *time.Time
}

// SameAs reports whether other refers to the same server session in the same
// lifecycle state.
func (s *WorkSession) SameAs(other *WorkSession) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.ID == other.ID &&
		s.Status == other.Status &&
		s.PausedDuration == other.PausedDuration &&
		s.StartTime.Equal(other.StartTime) &&
		timePtrEqual(s.LastPauseStart, other.LastPauseStart)
}

// StartDay returns the calendar day the session started on in loc.
func (s WorkSession) StartDay(loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return DayOf(s.StartTime.In(loc))
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// PauseAction is what the server did on a pause toggle.
type PauseAction string

const (
	PauseActionPaused  PauseAction = "paused"
	PauseActionResumed PauseAction = "resumed"
)

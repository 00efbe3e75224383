package rest

import (
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
)

type startPayload struct {
	Project *string  `json:"project"`
	Tags    []string `json:"tags"`
	Comment *string  `json:"comment"`
}

type manualPayload struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Project   *string  `json:"project"`
	Tags      []string `json:"tags"`
	Comment   *string  `json:"comment"`
}

type stopPayload struct {
	Comment *string `json:"comment"`
}

type sessionPayload struct {
	ID             int64    `json:"id"`
	StartTime      string   `json:"start_time"`
	StopTime       *string  `json:"stop_time"`
	Status         string   `json:"status"`
	Project        *string  `json:"project"`
	Tags           []string `json:"tags"`
	Comment        *string  `json:"comment"`
	PausedDuration int64    `json:"paused_duration"`
	TotalSeconds   *int64   `json:"total_seconds"`
	LastPauseStart *string  `json:"last_pause_start"`
}

type togglePayload struct {
	Session sessionPayload `json:"session"`
	Action  string         `json:"action"`
}

type daySummaryPayload struct {
	Day             string   `json:"day"`
	WorkSeconds     int64    `json:"work_seconds"`
	PauseSeconds    int64    `json:"pause_seconds"`
	ExpectedSeconds *int64   `json:"expected_seconds"`
	VacationSeconds int64    `json:"vacation_seconds"`
	SickSeconds     int64    `json:"sick_seconds"`
	OvertimeSeconds *int64   `json:"overtime_seconds"`
	IsWeekend       bool     `json:"is_weekend"`
	IsHoliday       bool     `json:"is_holiday"`
	HolidayName     *string  `json:"holiday_name"`
	LeaveTypes      []string `json:"leave_types"`
}

type errorPayload struct {
	Detail any `json:"detail"`
}

// timestampLayouts covers aware and naive ISO-8601 values. Naive values are
// read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

func parseOptionalTimestamp(raw *string) *time.Time {
	if raw == nil {
		return nil
	}

	parsed, ok := parseTimestamp(*raw)
	if !ok {
		return nil
	}
	return &parsed
}

func (p sessionPayload) toDomain() domain.WorkSession {
	start, _ := parseTimestamp(p.StartTime)

	return domain.WorkSession{
		ID:             domain.SessionID(p.ID),
		StartTime:      start,
		StopTime:       parseOptionalTimestamp(p.StopTime),
		Status:         domain.SessionStatus(strings.ToLower(strings.TrimSpace(p.Status))),
		Project:        deref(p.Project),
		Tags:           p.Tags,
		Comment:        deref(p.Comment),
		PausedDuration: p.PausedDuration,
		TotalSeconds:   p.TotalSeconds,
		LastPauseStart: parseOptionalTimestamp(p.LastPauseStart),
	}
}

func (p daySummaryPayload) toDomain() (domain.DaySummary, error) {
	day, err := domain.ParseDay(p.Day)
	if err != nil {
		return domain.DaySummary{}, err
	}

	summary := domain.DaySummary{
		Day:             day,
		WorkSeconds:     p.WorkSeconds,
		PauseSeconds:    p.PauseSeconds,
		VacationSeconds: p.VacationSeconds,
		SickSeconds:     p.SickSeconds,
		OvertimeSeconds: p.OvertimeSeconds,
		IsWeekend:       p.IsWeekend,
		IsHoliday:       p.IsHoliday,
		HolidayName:     deref(p.HolidayName),
		LeaveTypes:      p.LeaveTypes,
	}
	if p.ExpectedSeconds != nil {
		summary.ExpectedSeconds = *p.ExpectedSeconds
	}

	return summary, nil
}

func (p errorPayload) message() string {
	switch detail := p.Detail.(type) {
	case string:
		return detail
	case nil:
		return ""
	default:
		return "validation failed"
	}
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

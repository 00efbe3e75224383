package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date without a time zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseDay(raw string) (Day, error) {
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Day) Before(other Day) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

type DaySummary struct {
	Day             Day
	WorkSeconds     int64
	PauseSeconds    int64
	ExpectedSeconds int64
	VacationSeconds int64
	SickSeconds     int64
	// OvertimeSeconds is the server's figure, nil when the server sent none.
	OvertimeSeconds *int64
	IsWeekend       bool
	IsHoliday       bool
	HolidayName     string
	LeaveTypes      []string
}

// Overtime returns the server's overtime, or work minus the expected target
// when the server left it out. Leave is already part of ExpectedSeconds. It may
// be negative.
func (s DaySummary) Overtime() int64 {
	if s.OvertimeSeconds != nil {
		return *s.OvertimeSeconds
	}
	return s.WorkSeconds - s.ExpectedSeconds
}

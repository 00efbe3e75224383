package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/bnema/timetrack-cli/internal/runclock"
	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 20

type RenderOptions struct {
	Profile   string
	WebAppURL string
	Format    duration.Format
	Duration  []duration.Option
	Location  *time.Location
}

func (o RenderOptions) hours(seconds int64) string {
	return duration.FormatSeconds(float64(seconds), o.Format, append([]duration.Option{duration.IncludeUnit()}, o.Duration...)...)
}

func (o RenderOptions) clock(t time.Time) string {
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

func renderStatus(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("TimeTrack")}
	if header := headerLine(opts); header != "" {
		lines = append(lines, s.header.Render(header))
	}

	runtime := status.Runtime
	lines = append(lines, s.section.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		statusBadge(runtime.Status, s),
		"  ",
		s.runtime.Render(runtime.RuntimeText),
	)))

	session := status.Session
	if session == nil {
		lines = append(lines, s.empty.Render("No session tracked today."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if session.Project != "" {
		lines = append(lines, field("project", session.Project, s))
	}
	if len(session.Tags) > 0 {
		lines = append(lines, field("tags", strings.Join(session.Tags, ", "), s))
	}
	if session.Comment != "" {
		lines = append(lines, field("comment", session.Comment, s))
	}

	if !session.StartTime.IsZero() {
		started := opts.clock(session.StartTime)
		if session.StopTime != nil {
			started += " - " + opts.clock(*session.StopTime)
		}
		lines = append(lines, field("time", started, s))
	}
	lines = append(lines, field("worked", opts.hours(runtime.WorkedSeconds), s))
	lines = append(lines, field("paused", opts.hours(runtime.PausedSeconds), s))

	if len(runtime.Anomalies) > 0 {
		names := make([]string, 0, len(runtime.Anomalies))
		for _, anomaly := range runtime.Anomalies {
			names = append(names, string(anomaly))
		}
		lines = append(lines, s.warning.Render("[inconsistent snapshot: "+strings.Join(names, ", ")+"]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(opts RenderOptions) string {
	parts := make([]string, 0, 2)
	if opts.Profile != "" {
		parts = append(parts, "profile: "+opts.Profile)
	}
	if opts.WebAppURL != "" {
		parts = append(parts, opts.WebAppURL)
	}
	return strings.Join(parts, " · ")
}

func statusBadge(label runclock.StatusLabel, s styles) string {
	switch label {
	case runclock.StatusRunning:
		return s.running.Render("● " + string(label))
	case runclock.StatusPaused:
		return s.paused.Render("❚❚ " + string(label))
	case runclock.StatusStopped:
		return s.stopped.Render("■ " + string(label))
	default:
		return s.stopped.Render("○ " + string(label))
	}
}

func field(name, value string, s styles) string {
	return s.label.Render(fmt.Sprintf("%-8s", name+":")) + " " + s.detail.Render(value)
}

func renderDays(days []application.DayTotals, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("TimeTrack days")}
	if header := headerLine(opts); header != "" {
		lines = append(lines, s.header.Render(header))
	}

	if len(days) == 0 {
		lines = append(lines, s.empty.Render("No days in range."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(days)+1)
	var work, overtime int64
	for _, day := range days {
		rows = append(rows, dayRow(day, opts, s))
		work += day.Summary.WorkSeconds
		overtime += day.OvertimeSeconds
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	if len(days) > 1 {
		lines = append(lines, s.section.Render(
			s.label.Render("total:")+" "+s.detail.Render(opts.hours(work))+"  "+overtimeText(overtime, opts, s),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func dayRow(day application.DayTotals, opts RenderOptions, s styles) string {
	summary := day.Summary
	date := summary.Day.Time(time.UTC)

	parts := []string{
		s.label.Render(date.Format("Mon 2006-01-02")),
		renderProgressBar(summary.WorkSeconds, summary.ExpectedSeconds, progressWidth, s),
		s.detail.Render(fmt.Sprintf("%10s", opts.hours(summary.WorkSeconds))),
		s.label.Render(fmt.Sprintf("pause %s", opts.hours(summary.PauseSeconds))),
		overtimeText(day.OvertimeSeconds, opts, s),
	}

	var markers []string
	if day.Live {
		markers = append(markers, "live")
	}
	if summary.IsHoliday {
		name := "holiday"
		if summary.HolidayName != "" {
			name = summary.HolidayName
		}
		markers = append(markers, name)
	} else if summary.IsWeekend {
		markers = append(markers, "weekend")
	}
	markers = append(markers, summary.LeaveTypes...)
	if len(markers) > 0 {
		parts = append(parts, s.marker.Render("["+strings.Join(markers, ", ")+"]"))
	}

	return strings.Join(parts, "  ")
}

func overtimeText(seconds int64, opts RenderOptions, s styles) string {
	text := opts.hours(seconds)
	switch {
	case seconds > 0:
		return s.surplus.Render("+" + text)
	case seconds < 0:
		return s.deficit.Render(text)
	default:
		return s.label.Render("±" + text)
	}
}

func renderProgressBar(worked, expected int64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := 1.0
	if expected > 0 {
		fraction = float64(worked) / float64(expected)
	} else if worked <= 0 {
		fraction = 0
	}
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

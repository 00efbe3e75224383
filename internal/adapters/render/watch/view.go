package watch

import (
	"fmt"
	"strings"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/bnema/timetrack-cli/internal/runclock"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	timerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	frameStyle   = lipgloss.NewStyle().Padding(1, 2)
)

func (m Model) View() string {
	title := "TimeTrack"
	if m.opts.Profile != "" {
		title += headerStyle.Render(" · " + m.opts.Profile)
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, badge(m.result.Status), " ", timerStyle.Render(m.result.RuntimeText)),
	}

	if details := sessionDetails(m.session); details != "" {
		lines = append(lines, detailStyle.Render(details))
	}

	hours := func(seconds int64) string {
		opts := append([]duration.Option{duration.IncludeUnit()}, m.opts.Duration...)
		return duration.FormatSeconds(float64(seconds), m.opts.Format, opts...)
	}
	lines = append(lines, headerStyle.Render(fmt.Sprintf("worked %s · paused %s", hours(m.result.WorkedSeconds), hours(m.result.PausedSeconds))))

	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render("error: "+m.err.Error()))
	case m.busy && m.syncedAt.IsZero():
		lines = append(lines, headerStyle.Render("loading…"))
	case !m.syncedAt.IsZero():
		synced := "synced " + m.syncedAt.Format("15:04:05")
		if m.lastAction != "" {
			synced += " · " + string(m.lastAction)
		}
		lines = append(lines, headerStyle.Render(synced))
	}

	lines = append(lines, "", m.help.View(m.keys))

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func badge(label runclock.StatusLabel) string {
	switch label {
	case runclock.StatusRunning:
		return runningStyle.Render("● " + string(label))
	case runclock.StatusPaused:
		return pausedStyle.Render("❚❚ " + string(label))
	default:
		return idleStyle.Render("○ " + string(label))
	}
}

func sessionDetails(session *domain.WorkSession) string {
	if session == nil {
		return ""
	}

	parts := make([]string, 0, 2)
	if session.Project != "" {
		parts = append(parts, session.Project)
	}
	if len(session.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(session.Tags, " #"))
	}
	return strings.Join(parts, " · ")
}

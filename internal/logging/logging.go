package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// New returns the logger shared by all tt components. Output goes to w, which
// is stderr in the CLI so that stdout stays parseable.
func New(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "tt",
		ReportTimestamp: level <= log.DebugLevel,
		TimeFormat:      time.TimeOnly,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("214"))
	logger.SetStyles(styles)

	return logger
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/bnema/timetrack-cli/internal/runclock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	status  application.Status
	action  domain.PauseAction
	err     error
	fetches int
	toggles int
}

func (f *fakeSource) Status(context.Context) (application.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.status, f.err
}

func (f *fakeSource) TogglePause(context.Context) (application.Status, domain.PauseAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++
	return f.status, f.action, f.err
}

var watchNow = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, source Source) Model {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	m := New(ctx, source, Options{
		Profile:      "work",
		TickInterval: time.Hour,
		PollInterval: time.Hour,
		Format:       duration.FormatClock,
		Now:          func() time.Time { return watchNow },
	})
	t.Cleanup(func() {
		m.Close()
		cancel()
	})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

// drain feeds the newest published result back into the model.
func drain(t *testing.T, m Model) Model {
	t.Helper()

	msg := m.waitForResult()()
	result, ok := msg.(resultMsg)
	require.True(t, ok)
	m, _ = update(t, m, result)
	return m
}

func activeSession() *domain.WorkSession {
	return &domain.WorkSession{
		ID:             1,
		Status:         domain.SessionActive,
		StartTime:      watchNow.Add(-2 * time.Hour),
		PausedDuration: 900,
		Project:        "billing",
		Tags:           []string{"ops"},
	}
}

func TestModelShowsFetchedSession(t *testing.T) {
	source := &fakeSource{status: application.Status{Session: activeSession()}}
	m := newTestModel(t, source)

	msg := m.fetch()()
	m, _ = update(t, m, msg)
	m = drain(t, m)

	assert.Equal(t, runclock.StatusRunning, m.result.Status)
	assert.Equal(t, "01:45:00", m.result.RuntimeText)

	view := m.View()
	assert.Contains(t, view, "TimeTrack")
	assert.Contains(t, view, "work")
	assert.Contains(t, view, "01:45:00")
	assert.Contains(t, view, "billing")
	assert.Contains(t, view, "#ops")
	assert.Contains(t, view, "worked 1:45 h")
	assert.Contains(t, view, "synced 12:00:00")
}

func TestModelIgnoresResultsFromPreviousSnapshot(t *testing.T) {
	source := &fakeSource{status: application.Status{Session: activeSession()}}
	m := newTestModel(t, source)

	m, _ = update(t, m, m.fetch()())
	m = drain(t, m)
	require.Equal(t, runclock.StatusRunning, m.result.Status)

	stale := resultMsg{gen: m.gen.Load() - 1, result: runclock.Result{Status: runclock.StatusStopped, RuntimeText: "99:00:00"}}
	m, cmd := update(t, m, stale)
	assert.NotNil(t, cmd)
	assert.Equal(t, runclock.StatusRunning, m.result.Status)
}

func TestModelTogglePause(t *testing.T) {
	pauseStart := watchNow.Add(-5 * time.Minute)
	paused := activeSession()
	paused.Status = domain.SessionPaused
	paused.LastPauseStart = &pauseStart

	source := &fakeSource{status: application.Status{Session: paused}, action: domain.PauseActionPaused}
	m := newTestModel(t, source)
	m.busy = false

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// a second press while the request is in flight is dropped
	_, again := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, again)

	m, _ = update(t, m, cmd())
	m = drain(t, m)

	assert.Equal(t, 1, source.toggles)
	assert.False(t, m.busy)
	assert.Equal(t, runclock.StatusPaused, m.result.Status)
	assert.Equal(t, int64(900+300), m.result.PausedSeconds)
	assert.Contains(t, m.View(), "paused")
}

func TestModelKeepsLastResultOnError(t *testing.T) {
	source := &fakeSource{status: application.Status{Session: activeSession()}}
	m := newTestModel(t, source)

	m, _ = update(t, m, m.fetch()())
	m = drain(t, m)

	m, _ = update(t, m, statusMsg{err: errors.New("connection refused")})
	assert.Equal(t, runclock.StatusRunning, m.result.Status)
	assert.Contains(t, m.View(), "error: connection refused")
}

func TestModelPollRefetches(t *testing.T) {
	source := &fakeSource{}
	m := newTestModel(t, source)
	m.busy = false

	m, cmd := update(t, m, pollMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// while a fetch is in flight the poll only re-arms
	_, cmd = update(t, m, pollMsg{})
	require.NotNil(t, cmd)
}

func TestModelQuitStopsWatcher(t *testing.T) {
	source := &fakeSource{status: application.Status{Session: activeSession()}}
	m := newTestModel(t, source)
	m, _ = update(t, m, m.fetch()())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelStoppedSessionShowsFinalRuntime(t *testing.T) {
	stop := watchNow.Add(-time.Hour)
	total := int64(3 * 3600)
	session := &domain.WorkSession{
		ID:           2,
		Status:       domain.SessionStopped,
		StartTime:    watchNow.Add(-4 * time.Hour),
		StopTime:     &stop,
		TotalSeconds: &total,
	}
	m := newTestModel(t, &fakeSource{status: application.Status{Session: session}})

	m, _ = update(t, m, m.fetch()())
	m = drain(t, m)

	assert.Equal(t, runclock.StatusStopped, m.result.Status)
	assert.Equal(t, "03:00:00", m.result.RuntimeText)
}

// Package watch is the live "tt watch" view: the runtime ticks locally every
// second and the session is refetched from the server every poll interval.
package watch

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/bnema/timetrack-cli/internal/runclock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const DefaultPollInterval = 30 * time.Second

// Source is the slice of the tracking service the view needs.
type Source interface {
	Status(ctx context.Context) (application.Status, error)
	TogglePause(ctx context.Context) (application.Status, domain.PauseAction, error)
}

type Options struct {
	Profile      string
	TickInterval time.Duration
	PollInterval time.Duration
	Format       duration.Format
	Duration     []duration.Option
	Now          func() time.Time
	Logger       *log.Logger
}

type statusMsg struct {
	status application.Status
	err    error
}

type toggledMsg struct {
	status application.Status
	action domain.PauseAction
	err    error
}

type resultMsg struct {
	gen    uint64
	result runclock.Result
}

type pollMsg struct{}

type Model struct {
	ctx     context.Context
	source  Source
	opts    Options
	watcher *runclock.Watcher
	results chan resultMsg
	gen     *atomic.Uint64

	keys keyMap
	help help.Model

	session    *domain.WorkSession
	result     runclock.Result
	lastAction domain.PauseAction
	syncedAt   time.Time
	err        error
	busy       bool
}

func New(ctx context.Context, source Source, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = runclock.DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	results := make(chan resultMsg, 1)
	gen := &atomic.Uint64{}
	publish := func(result runclock.Result) {
		msg := resultMsg{gen: gen.Load(), result: result}
		// keep only the newest result; the view never needs a backlog
		select {
		case results <- msg:
		default:
			select {
			case <-results:
			default:
			}
			select {
			case results <- msg:
			default:
			}
		}
	}

	return Model{
		ctx:    ctx,
		source: source,
		opts:   opts,
		watcher: runclock.NewWatcher(publish,
			runclock.WithInterval(opts.TickInterval),
			runclock.WithNow(opts.Now),
			runclock.WithLogger(opts.Logger),
		),
		results: results,
		gen:     gen,
		keys:    defaultKeyMap(),
		help:    help.New(),
		result:  runclock.Compute(nil, opts.Now()),
		busy:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.waitForResult(), m.schedulePoll())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.watcher.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.toggle()
		case key.Matches(msg, m.keys.Refresh):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.fetch()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case statusMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.opts.Logger.Error("refresh session", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.observe(msg.status.Session)
		return m, nil
	case toggledMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.opts.Logger.Error("toggle pause", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.lastAction = msg.action
		m.observe(msg.status.Session)
		return m, nil
	case resultMsg:
		if msg.gen == m.gen.Load() {
			m.result = msg.result
		}
		return m, m.waitForResult()
	case pollMsg:
		if m.busy {
			return m, m.schedulePoll()
		}
		m.busy = true
		return m, tea.Batch(m.fetch(), m.schedulePoll())
	default:
		return m, nil
	}
}

// observe hands a fresh snapshot to the watcher. An unchanged snapshot keeps
// the current tick so the second hand does not jump on every poll.
func (m *Model) observe(session *domain.WorkSession) {
	m.syncedAt = m.opts.Now()
	if m.session != nil && m.session.SameAs(session) && m.result.Live() {
		m.session = session
		return
	}

	m.session = session
	m.watcher.Stop()
	m.gen.Add(1)
	m.watcher.Observe(m.ctx, session)
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		status, err := m.source.Status(m.ctx)
		return statusMsg{status: status, err: err}
	}
}

func (m Model) toggle() tea.Cmd {
	return func() tea.Msg {
		status, action, err := m.source.TogglePause(m.ctx)
		return toggledMsg{status: status, action: action, err: err}
	}
}

func (m Model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.results:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.opts.PollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Close stops the local tick.
func (m Model) Close() {
	m.watcher.Stop()
}

// Run shows the live view until the user quits or ctx ends.
func Run(ctx context.Context, source Source, opts Options, programOpts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, source, opts)
	defer m.Close()

	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)
	_, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

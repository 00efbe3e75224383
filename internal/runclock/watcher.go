package runclock

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/charmbracelet/log"
)

const DefaultInterval = time.Second

// Watcher republishes Compute for the observed session on a fixed interval
// while the session is live. Observing another session, or Stop, tears the
// previous tick down before returning.
type Watcher struct {
	publish  func(Result)
	interval time.Duration
	now      func() time.Time
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	reportMu sync.Mutex
	reported map[reportKey]struct{}
}

type reportKey struct {
	session domain.SessionID
	anomaly Anomaly
}

type WatcherOption func(*Watcher)

func WithInterval(interval time.Duration) WatcherOption {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithNow(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

func WithLogger(logger *log.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher returns an idle watcher. publish runs on the watcher's goroutine
// and must not call back into Observe or Stop.
func NewWatcher(publish func(Result), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		publish:  publish,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   log.New(io.Discard),
		reported: map[reportKey]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe switches the watcher to session. One result is published
// synchronously; live sessions keep publishing until ctx ends, Stop is
// called, or Observe is called again.
func (w *Watcher) Observe(ctx context.Context, session *domain.WorkSession) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	var snapshot *domain.WorkSession
	if session != nil {
		copied := *session
		snapshot = &copied
	}

	result := Compute(snapshot, w.now())
	w.emit(snapshot, result)

	if !result.Live() || ctx.Err() != nil {
		return
	}

	tickCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	go w.run(tickCtx, snapshot, done)
}

// Stop cancels the running tick, if any, and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if w.cancel == nil {
		return
	}

	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}

func (w *Watcher) run(ctx context.Context, session *domain.WorkSession, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			w.emit(session, Compute(session, w.now()))
		}
	}
}

func (w *Watcher) emit(session *domain.WorkSession, result Result) {
	if session != nil {
		w.report(session, result.Anomalies)
	}
	if w.publish != nil {
		w.publish(result)
	}
}

func (w *Watcher) report(session *domain.WorkSession, anomalies []Anomaly) {
	if len(anomalies) == 0 {
		return
	}

	w.reportMu.Lock()
	defer w.reportMu.Unlock()

	for _, anomaly := range anomalies {
		key := reportKey{session: session.ID, anomaly: anomaly}
		if _, seen := w.reported[key]; seen {
			continue
		}
		w.reported[key] = struct{}{}
		w.logger.Warn("session snapshot anomaly",
			"session", session.ID,
			"status", session.Status,
			"anomaly", anomaly,
		)
	}
}

package runclock

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *recorder) publish(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recorder) snapshot() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

func (r *recorder) count() int {
	return len(r.snapshot())
}

// steppingClock advances by one second on every read.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func TestWatcherPublishesOnceForNilSession(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(5*time.Millisecond))

	w.Observe(context.Background(), nil)
	time.Sleep(30 * time.Millisecond)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, StatusReady, rec.snapshot()[0].Status)
}

func TestWatcherPublishesOnceForStoppedSession(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(5*time.Millisecond))

	w.Observe(context.Background(), &domain.WorkSession{ID: 1, Status: domain.SessionStopped, TotalSeconds: ptrInt(3661)})
	time.Sleep(30 * time.Millisecond)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "01:01:01", rec.snapshot()[0].RuntimeText)
}

func TestWatcherTicksWhileActive(t *testing.T) {
	t.Parallel()

	clock := &steppingClock{now: testNow}
	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(5*time.Millisecond), WithNow(clock.Now))
	defer w.Stop()

	w.Observe(context.Background(), &domain.WorkSession{ID: 1, Status: domain.SessionActive, StartTime: testNow})

	require.Eventually(t, func() bool { return rec.count() >= 3 }, time.Second, 5*time.Millisecond)

	results := rec.snapshot()
	assert.Equal(t, "00:00:01", results[0].RuntimeText)
	for i := 1; i < len(results); i++ {
		assert.Greater(t, results[i].WorkedSeconds, results[i-1].WorkedSeconds)
		assert.Equal(t, StatusRunning, results[i].Status)
	}
}

func TestWatcherStopHaltsPublishing(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond))

	w.Observe(context.Background(), &domain.WorkSession{ID: 1, Status: domain.SessionPaused, StartTime: testNow.Add(-time.Hour), LastPauseStart: ptrTime(testNow)})
	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 2*time.Millisecond)

	w.Stop()
	stopped := rec.count()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, stopped, rec.count())
	w.Stop()
}

func TestWatcherObserveReplacesPreviousTick(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond))
	defer w.Stop()

	w.Observe(context.Background(), &domain.WorkSession{ID: 1, Status: domain.SessionActive, StartTime: testNow})
	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 2*time.Millisecond)

	w.Observe(context.Background(), nil)
	switched := rec.count()
	time.Sleep(20 * time.Millisecond)

	results := rec.snapshot()
	assert.Equal(t, switched, len(results))
	assert.Equal(t, StatusReady, results[len(results)-1].Status)
}

func TestWatcherStopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	w.Observe(ctx, &domain.WorkSession{ID: 1, Status: domain.SessionActive, StartTime: testNow})
	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 2*time.Millisecond)

	cancel()
	w.Stop()
	stopped := rec.count()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, stopped, rec.count())
}

func TestWatcherDoesNotTickWithCanceledContext(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Observe(ctx, &domain.WorkSession{ID: 1, Status: domain.SessionActive, StartTime: testNow})
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, rec.count())
}

func TestWatcherLogsAnomalyOncePerSession(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond), WithLogger(logger))

	session := &domain.WorkSession{ID: 9, Status: domain.SessionPaused, StartTime: testNow.Add(-time.Minute)}
	w.Observe(context.Background(), session)
	require.Eventually(t, func() bool { return rec.count() >= 3 }, time.Second, 2*time.Millisecond)
	w.Stop()

	output := buf.String()
	assert.Equal(t, 1, strings.Count(output, string(AnomalyMissingPauseStart)))
	assert.Contains(t, output, "session snapshot anomaly")
}

func TestWatcherIgnoresCallerMutation(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := NewWatcher(rec.publish, WithInterval(2*time.Millisecond), WithNow(func() time.Time { return testNow }))
	defer w.Stop()

	session := &domain.WorkSession{ID: 1, Status: domain.SessionActive, StartTime: testNow.Add(-time.Minute)}
	w.Observe(context.Background(), session)
	session.StartTime = testNow.Add(-time.Hour)

	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 2*time.Millisecond)
	for _, result := range rec.snapshot() {
		assert.Equal(t, int64(60), result.WorkedSeconds)
	}
}

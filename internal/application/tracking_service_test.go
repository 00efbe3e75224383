package application

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
	portmocks "github.com/bnema/timetrack-cli/internal/ports/mocks"
	"github.com/bnema/timetrack-cli/internal/runclock"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	testToday = domain.Day{Year: 2024, Month: time.March, Day: 4}
)

func newTrackingFixture(t *testing.T, opts ...TrackingOption) (*TrackingService, *portmocks.MockSessionAPI) {
	t.Helper()

	api := portmocks.NewMockSessionAPI(t)
	clock := portmocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	opts = append([]TrackingOption{WithLocation(time.UTC)}, opts...)
	return NewTrackingService(api, clock, opts...), api
}

func TestCurrentSessionPrefersLiveSessionOfToday(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().SessionsForDay(mock.Anything, testToday).Return([]domain.WorkSession{
		{ID: 1, Status: domain.SessionStopped, StartTime: testNow.Add(-5 * time.Hour)},
		{ID: 2, Status: domain.SessionActive, StartTime: testNow.Add(-2 * time.Hour)},
		{ID: 3, Status: domain.SessionStopped, StartTime: testNow.Add(-time.Hour)},
	}, nil).Once()

	session, err := service.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionID(2), session.ID)
}

func TestCurrentSessionFindsSessionStartedYesterday(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().SessionsForDay(mock.Anything, testToday).Return(nil, nil).Once()
	api.EXPECT().SessionsForDay(mock.Anything, testToday.AddDays(-1)).Return([]domain.WorkSession{
		{ID: 9, Status: domain.SessionPaused, StartTime: testNow.Add(-14 * time.Hour)},
	}, nil).Once()

	session, err := service.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionID(9), session.ID)
}

func TestCurrentSessionFallsBackToLatestStoppedSession(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().SessionsForDay(mock.Anything, testToday).Return([]domain.WorkSession{
		{ID: 1, Status: domain.SessionStopped, StartTime: testNow.Add(-5 * time.Hour)},
		{ID: 2, Status: domain.SessionStopped, StartTime: testNow.Add(-3 * time.Hour)},
	}, nil).Once()
	api.EXPECT().SessionsForDay(mock.Anything, testToday.AddDays(-1)).Return(nil, nil).Once()

	session, err := service.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, domain.SessionID(2), session.ID)
}

func TestStatusWithoutSessionsIsReady(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().SessionsForDay(mock.Anything, mock.Anything).Return(nil, nil).Twice()

	status, err := service.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.Session)
	assert.Equal(t, runclock.StatusReady, status.Runtime.Status)
	assert.Equal(t, "00:00:00", status.Runtime.RuntimeText)
	assert.Equal(t, testNow, status.CheckedAt)
}

func TestStatusLogsAnomalies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	service, api := newTrackingFixture(t, WithLogger(log.New(&buf)))
	api.EXPECT().SessionsForDay(mock.Anything, testToday).Return([]domain.WorkSession{
		{ID: 4, Status: domain.SessionPaused, StartTime: testNow.Add(-time.Hour)},
	}, nil).Once()

	status, err := service.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runclock.StatusPaused, status.Runtime.Status)
	assert.Contains(t, status.Runtime.Anomalies, runclock.AnomalyMissingPauseStart)
	assert.Contains(t, buf.String(), "missing_last_pause_start")
}

func TestStartTrimsCommand(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().StartSession(mock.Anything, ports.StartSessionRequest{
		Project: "billing",
		Tags:    []string{"ops", "oncall"},
		Comment: "",
	}).Return(domain.WorkSession{ID: 5, Status: domain.SessionActive, StartTime: testNow}, nil).Once()

	status, err := service.Start(context.Background(), StartCommand{
		Project: " billing ",
		Tags:    []string{"ops", " ", "oncall", "ops"},
		Comment: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, runclock.StatusRunning, status.Runtime.Status)
	assert.Zero(t, status.Runtime.WorkedSeconds)
}

func TestStartSurfacesConflict(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().StartSession(mock.Anything, mock.Anything).Return(domain.WorkSession{}, domain.ErrSessionConflict).Once()

	_, err := service.Start(context.Background(), StartCommand{})
	require.ErrorIs(t, err, domain.ErrSessionConflict)
}

func TestAddSendsUTCRangeAndCleanTags(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CET", 3600)
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, berlin)
	end := time.Date(2024, 3, 4, 10, 0, 0, 0, berlin)
	total := int64(7200)
	stop := end.UTC()

	service, api := newTrackingFixture(t)
	api.EXPECT().CreateManualSession(mock.Anything, ports.ManualSessionRequest{
		Start:   start.UTC(),
		End:     end.UTC(),
		Project: "billing",
		Tags:    []string{"ops"},
		Comment: "workshop",
	}).Return(domain.WorkSession{
		ID:           11,
		Status:       domain.SessionStopped,
		StartTime:    start.UTC(),
		StopTime:     &stop,
		TotalSeconds: &total,
	}, nil).Once()

	status, err := service.Add(context.Background(), AddCommand{
		Start:   start,
		End:     end,
		Project: "billing ",
		Tags:    []string{"ops", "ops", ""},
		Comment: " workshop",
	})
	require.NoError(t, err)
	assert.Equal(t, runclock.StatusStopped, status.Runtime.Status)
	assert.Equal(t, int64(7200), status.Runtime.WorkedSeconds)
}

func TestAddRejectsEmptyOrReversedRange(t *testing.T) {
	t.Parallel()

	service, _ := newTrackingFixture(t)

	for _, cmd := range []AddCommand{
		{},
		{Start: testNow, End: testNow},
		{Start: testNow, End: testNow.Add(-time.Minute)},
	} {
		_, err := service.Add(context.Background(), cmd)
		require.ErrorIs(t, err, domain.ErrInvalidTimeRange)
	}
}

func TestTogglePauseReturnsAction(t *testing.T) {
	t.Parallel()

	pauseStart := testNow.Add(-10 * time.Minute)
	service, api := newTrackingFixture(t)
	api.EXPECT().TogglePause(mock.Anything).Return(domain.WorkSession{
		ID:             6,
		Status:         domain.SessionPaused,
		StartTime:      testNow.Add(-time.Hour),
		LastPauseStart: &pauseStart,
	}, domain.PauseActionPaused, nil).Once()

	status, action, err := service.TogglePause(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PauseActionPaused, action)
	assert.Equal(t, int64(50*60), status.Runtime.WorkedSeconds)
	assert.Equal(t, int64(10*60), status.Runtime.PausedSeconds)
}

func TestStopWithoutActiveSession(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().StopSession(mock.Anything, "wrap up").Return(domain.WorkSession{}, domain.ErrNoActiveSession).Once()

	_, err := service.Stop(context.Background(), "wrap up")
	require.Error(t, err)
	assert.True(t, IsNoActiveSession(err))
}

func TestDaysRejectsInvalidRanges(t *testing.T) {
	t.Parallel()

	service, _ := newTrackingFixture(t)

	_, err := service.Days(context.Background(), testToday, testToday.AddDays(-1))
	require.ErrorIs(t, err, domain.ErrInvalidDayRange)

	_, err = service.Days(context.Background(), testToday, testToday.AddDays(maxDayRange+1))
	require.ErrorIs(t, err, domain.ErrInvalidDayRange)
}

func TestDaysAddsLiveSessionToToday(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	from := testToday.AddDays(-1)
	api.EXPECT().DaySummaries(mock.Anything, from, testToday).Return([]domain.DaySummary{
		{Day: testToday, WorkSeconds: 3600, ExpectedSeconds: 28800},
		{Day: from, WorkSeconds: 30000, ExpectedSeconds: 28800},
	}, nil).Once()
	api.EXPECT().SessionsForDay(mock.Anything, testToday).Return([]domain.WorkSession{
		{ID: 8, Status: domain.SessionActive, StartTime: testNow.Add(-time.Hour)},
	}, nil).Once()

	totals, err := service.Days(context.Background(), from, testToday)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, from, totals[0].Summary.Day)
	assert.False(t, totals[0].Live)
	assert.Equal(t, int64(1200), totals[0].OvertimeSeconds)

	assert.Equal(t, testToday, totals[1].Summary.Day)
	assert.True(t, totals[1].Live)
	assert.Equal(t, int64(7200), totals[1].Summary.WorkSeconds)
	assert.Equal(t, int64(7200-28800), totals[1].OvertimeSeconds)
}

func TestDaysInThePastSkipsSessionLookup(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	from := testToday.AddDays(-7)
	to := testToday.AddDays(-6)
	api.EXPECT().DaySummaries(mock.Anything, from, to).Return([]domain.DaySummary{{Day: from}, {Day: to}}, nil).Once()

	totals, err := service.Days(context.Background(), from, to)
	require.NoError(t, err)
	assert.Len(t, totals, 2)
}

func TestPingWrapsHealthError(t *testing.T) {
	t.Parallel()

	service, api := newTrackingFixture(t)
	api.EXPECT().Health(mock.Anything).Return(errors.New("connection refused")).Once()

	err := service.Ping(context.Background())
	require.EqualError(t, err, "ping api: connection refused")
}

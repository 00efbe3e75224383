package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activeSessionJSON = `{
  "id": 7,
  "start_time": "2024-03-04T08:00:00+00:00",
  "stop_time": null,
  "status": "paused",
  "project": "billing",
  "tags": ["ops"],
  "comment": null,
  "paused_duration": 600,
  "total_seconds": null,
  "last_pause_start": "2024-03-04T09:30:00.123456+00:00",
  "notes": []
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/", WithToken("tt-secret"), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestClientStartSendsPayloadAndHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/work/start", r.URL.Path)
		assert.Equal(t, "Bearer tt-secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get(requestIDHeader))
		assert.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "billing", body["project"])
		assert.Equal(t, []any{"ops"}, body["tags"])
		assert.Nil(t, body["comment"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 7, "start_time": "2024-03-04T08:00:00+00:00", "status": "active", "tags": ["ops"], "project": "billing", "paused_duration": 0}`)
	})

	session, err := client.StartSession(context.Background(), ports.StartSessionRequest{Project: "billing", Tags: []string{"ops"}})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID(7), session.ID)
	assert.Equal(t, domain.SessionActive, session.Status)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), session.StartTime)
	assert.Nil(t, session.StopTime)
}

func TestClientStartMapsConflict(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"detail": "Active session already exists"}`)
	})

	_, err := client.StartSession(context.Background(), ports.StartSessionRequest{})
	require.ErrorIs(t, err, domain.ErrSessionConflict)
	assert.ErrorContains(t, err, "Active session already exists")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestClientCreateManualSessionSendsRange(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/work/manual", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-03-04T07:00:00Z", body["start_time"])
		assert.Equal(t, "2024-03-04T09:30:00Z", body["end_time"])
		assert.Nil(t, body["project"])
		assert.Equal(t, []any{}, body["tags"])
		assert.Equal(t, "workshop", body["comment"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 9, "start_time": "2024-03-04T07:00:00+00:00", "stop_time": "2024-03-04T09:30:00+00:00",
		  "status": "stopped", "tags": [], "comment": "workshop", "paused_duration": 0, "total_seconds": 9000}`)
	})

	berlin := time.FixedZone("CET", 3600)
	session, err := client.CreateManualSession(context.Background(), ports.ManualSessionRequest{
		Start:   time.Date(2024, 3, 4, 8, 0, 0, 0, berlin),
		End:     time.Date(2024, 3, 4, 10, 30, 0, 0, berlin),
		Comment: "workshop",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID(9), session.ID)
	assert.Equal(t, domain.SessionStopped, session.Status)
	require.NotNil(t, session.TotalSeconds)
	assert.Equal(t, int64(9000), *session.TotalSeconds)
}

func TestClientCreateManualSessionReportsServerRejection(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail": "End time must be after start time"}`)
	})

	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	_, err := client.CreateManualSession(context.Background(), ports.ManualSessionRequest{Start: now, End: now})
	require.Error(t, err)
	assert.EqualError(t, err, "create manual session: POST /work/manual: status 400: End time must be after start time")
}

func TestClientTogglePauseDecodesSession(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/work/pause", r.URL.Path)
		_, _ = io.WriteString(w, `{"action": "paused", "session": `+activeSessionJSON+`}`)
	})

	session, action, err := client.TogglePause(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PauseActionPaused, action)
	assert.Equal(t, domain.SessionPaused, session.Status)
	assert.Equal(t, int64(600), session.PausedDuration)
	require.NotNil(t, session.LastPauseStart)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 30, 0, 123456000, time.UTC), *session.LastPauseStart)
	assert.Equal(t, "billing", session.Project)
	assert.Empty(t, session.Comment)
}

func TestClientPauseAndStopMapNotFoundToNoActiveSession(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail": "No active session"}`)
	})

	_, _, err := client.TogglePause(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = client.StopSession(context.Background(), "done")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestClientMapsUnauthorized(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"detail": "Access denied"}`)
		})

		err := client.Health(context.Background())
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestClientSessionsForDayToleratesMalformedTimestamps(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/work/day/2024-03-04", r.URL.Path)
		_, _ = io.WriteString(w, `[
		  {"id": 1, "start_time": "not-a-time", "status": "stopped", "stop_time": "2024-03-04T10:00:00", "total_seconds": 3600, "paused_duration": 0, "tags": []},
		  {"id": 2, "start_time": "2024-03-04T11:00:00", "status": "active", "last_pause_start": "garbage", "paused_duration": 0, "tags": []}
		]`)
	})

	sessions, err := client.SessionsForDay(context.Background(), domain.Day{Year: 2024, Month: time.March, Day: 4})
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.True(t, sessions[0].StartTime.IsZero())
	require.NotNil(t, sessions[0].StopTime)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), *sessions[0].StopTime)
	require.NotNil(t, sessions[0].TotalSeconds)
	assert.Equal(t, int64(3600), *sessions[0].TotalSeconds)

	assert.Equal(t, time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC), sessions[1].StartTime)
	assert.Nil(t, sessions[1].LastPauseStart)
}

func TestClientDaySummariesSendsRange(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/days", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from_date"))
		assert.Equal(t, "2024-03-02", r.URL.Query().Get("to_date"))
		_, _ = io.WriteString(w, `[
		  {"day": "2024-03-01", "work_seconds": 30000, "pause_seconds": 1800, "overtime_seconds": 900, "expected_seconds": 28800,
		   "vacation_seconds": 0, "sick_seconds": 0, "is_weekend": false, "is_holiday": false, "holiday_name": null, "leave_types": []},
		  {"day": "2024-03-02", "work_seconds": 0, "pause_seconds": 0, "expected_seconds": 0,
		   "vacation_seconds": 0, "sick_seconds": 0, "is_weekend": true, "is_holiday": false, "holiday_name": null, "leave_types": []}
		]`)
	})

	from := domain.Day{Year: 2024, Month: time.March, Day: 1}
	summaries, err := client.DaySummaries(context.Background(), from, from.AddDays(1))
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, from, summaries[0].Day)
	require.NotNil(t, summaries[0].OvertimeSeconds)
	assert.Equal(t, int64(900), summaries[0].Overtime())
	assert.True(t, summaries[1].IsWeekend)
	assert.Nil(t, summaries[1].OvertimeSeconds)
	assert.Zero(t, summaries[1].Overtime())
}

func TestClientKeepsBasePathPrefix(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/healthz", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"status": "ok"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL + "/api/")
	require.NoError(t, err)
	require.NoError(t, client.Health(context.Background()))
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com", "http://", "://bad"} {
		_, err := NewClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestClientErrorDetailFallsBackToBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "health check: GET /healthz: status 502: upstream down")
}

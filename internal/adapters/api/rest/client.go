// Package rest talks to the TimeTrack HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	DefaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 20
	requestIDHeader  = "X-Request-ID"
	userAgent        = "tt-cli"
)

// APIError is a non-2xx answer from the server. Unwrap exposes the domain
// sentinel matching the status code, if any.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	RequestID  string
	kind       error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.kind
}

type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *log.Logger
	requestID  func() string
}

var _ ports.SessionAPI = (*Client)(nil)

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: unsupported scheme %q", baseURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(io.Discard),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *Client) StartSession(ctx context.Context, req ports.StartSessionRequest) (domain.WorkSession, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	body := startPayload{
		Project: optionalString(req.Project),
		Tags:    tags,
		Comment: optionalString(req.Comment),
	}

	var payload sessionPayload
	if err := c.do(ctx, http.MethodPost, "/work/start", nil, body, &payload, nil); err != nil {
		return domain.WorkSession{}, fmt.Errorf("start session: %w", err)
	}

	return payload.toDomain(), nil
}

// CreateManualSession records a stopped session between req.Start and req.End.
func (c *Client) CreateManualSession(ctx context.Context, req ports.ManualSessionRequest) (domain.WorkSession, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	body := manualPayload{
		StartTime: req.Start.UTC().Format(time.RFC3339),
		EndTime:   req.End.UTC().Format(time.RFC3339),
		Project:   optionalString(req.Project),
		Tags:      tags,
		Comment:   optionalString(req.Comment),
	}

	var payload sessionPayload
	if err := c.do(ctx, http.MethodPost, "/work/manual", nil, body, &payload, nil); err != nil {
		return domain.WorkSession{}, fmt.Errorf("create manual session: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) TogglePause(ctx context.Context) (domain.WorkSession, domain.PauseAction, error) {
	var payload togglePayload
	if err := c.do(ctx, http.MethodPost, "/work/pause", nil, stopPayload{}, &payload, domain.ErrNoActiveSession); err != nil {
		return domain.WorkSession{}, "", fmt.Errorf("toggle pause: %w", err)
	}

	action := domain.PauseAction(strings.ToLower(payload.Action))
	if action != domain.PauseActionPaused && action != domain.PauseActionResumed {
		return domain.WorkSession{}, "", fmt.Errorf("toggle pause: unexpected action %q", payload.Action)
	}

	return payload.Session.toDomain(), action, nil
}

func (c *Client) StopSession(ctx context.Context, comment string) (domain.WorkSession, error) {
	var payload sessionPayload
	body := stopPayload{Comment: optionalString(comment)}
	if err := c.do(ctx, http.MethodPost, "/work/stop", nil, body, &payload, domain.ErrNoActiveSession); err != nil {
		return domain.WorkSession{}, fmt.Errorf("stop session: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) SessionsForDay(ctx context.Context, day domain.Day) ([]domain.WorkSession, error) {
	var payload []sessionPayload
	if err := c.do(ctx, http.MethodGet, "/work/day/"+day.String(), nil, nil, &payload, nil); err != nil {
		return nil, fmt.Errorf("sessions for %s: %w", day, err)
	}

	sessions := make([]domain.WorkSession, 0, len(payload))
	for _, entry := range payload {
		sessions = append(sessions, entry.toDomain())
	}
	return sessions, nil
}

func (c *Client) DaySummaries(ctx context.Context, from, to domain.Day) ([]domain.DaySummary, error) {
	query := url.Values{}
	query.Set("from_date", from.String())
	query.Set("to_date", to.String())

	var payload []daySummaryPayload
	if err := c.do(ctx, http.MethodGet, "/days", query, nil, &payload, nil); err != nil {
		return nil, fmt.Errorf("day summaries %s..%s: %w", from, to, err)
	}

	summaries := make([]domain.DaySummary, 0, len(payload))
	for _, entry := range payload {
		summary, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("day summaries: decode day %q: %w", entry.Day, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil, nil); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// do sends one request. notFound is the sentinel a 404 maps to for this
// endpoint; nil leaves 404 as a plain APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, notFound error) error {
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := c.requestID()
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set(requestIDHeader, requestID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{
			Method:     method,
			Path:       path,
			StatusCode: response.StatusCode,
			Detail:     errorDetail(data),
			RequestID:  requestID,
			kind:       classify(response.StatusCode, notFound),
		}
		c.logger.Warn("api error", "method", method, "path", path, "status", response.StatusCode, "detail", apiErr.Detail, "request_id", requestID)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func classify(status int, notFound error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusConflict:
		return domain.ErrSessionConflict
	case http.StatusNotFound:
		return notFound
	default:
		return nil
	}
}

func errorDetail(data []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		if msg := payload.message(); msg != "" {
			return msg
		}
	}

	detail := strings.TrimSpace(string(data))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return detail
}

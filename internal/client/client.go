package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okanalatt/FullStackAIChat/internal/model"
)

// ErrColdStart reports that every send attempt hit the cold-start status:
// the backend is still waking up and a later retry may succeed.
var ErrColdStart = errors.New("backend still waking up, try again")

// StatusError carries an HTTP failure status from the backend. Whether it
// is terminal depends on the status: the cold-start status is retried,
// everything else surfaces immediately.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: status=%d body=%q", e.Status, e.Body)
}

// Config holds every retry and timeout knob in one place. Zero values fall
// back to the historical defaults via Normalized.
type Config struct {
	WakeMaxAttempts int
	WakeBackoffBase time.Duration
	WakeTimeout     time.Duration

	ListMaxAttempts int
	ListBackoffBase time.Duration
	ListTimeout     time.Duration

	SendMaxAttempts int
	SendBackoffBase time.Duration
	SendBackoffCap  time.Duration
	SendTimeout     time.Duration

	// ColdStartStatus is the status a sleeping host answers with before the
	// backend process is up. Render historically used 410 Gone.
	ColdStartStatus int
}

func DefaultConfig() Config {
	return Config{
		WakeMaxAttempts: 6,
		WakeBackoffBase: 800 * time.Millisecond,
		WakeTimeout:     5 * time.Second,

		ListMaxAttempts: 3,
		ListBackoffBase: 700 * time.Millisecond,
		ListTimeout:     8 * time.Second,

		SendMaxAttempts: 5,
		SendBackoffBase: 700 * time.Millisecond,
		SendBackoffCap:  15 * time.Second,
		SendTimeout:     12 * time.Second,

		ColdStartStatus: http.StatusGone,
	}
}

// Normalized fills unset fields with defaults so a partially populated
// Config behaves.
func (c Config) Normalized() Config {
	def := DefaultConfig()
	if c.WakeMaxAttempts <= 0 {
		c.WakeMaxAttempts = def.WakeMaxAttempts
	}
	if c.WakeBackoffBase <= 0 {
		c.WakeBackoffBase = def.WakeBackoffBase
	}
	if c.WakeTimeout <= 0 {
		c.WakeTimeout = def.WakeTimeout
	}
	if c.ListMaxAttempts <= 0 {
		c.ListMaxAttempts = def.ListMaxAttempts
	}
	if c.ListBackoffBase <= 0 {
		c.ListBackoffBase = def.ListBackoffBase
	}
	if c.ListTimeout <= 0 {
		c.ListTimeout = def.ListTimeout
	}
	if c.SendMaxAttempts <= 0 {
		c.SendMaxAttempts = def.SendMaxAttempts
	}
	if c.SendBackoffBase <= 0 {
		c.SendBackoffBase = def.SendBackoffBase
	}
	if c.SendBackoffCap <= 0 {
		c.SendBackoffCap = def.SendBackoffCap
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = def.SendTimeout
	}
	if c.ColdStartStatus == 0 {
		c.ColdStartStatus = def.ColdStartStatus
	}
	return c
}

// Client talks to the chat backend and survives cold starts and transient
// network failures. Each operation keeps its retry state on the stack; the
// Client itself holds no mutable state and is safe for concurrent use.
type Client struct {
	origin string
	cfg    Config
	client *http.Client
}

func New(origin string, cfg Config) *Client {
	return &Client{
		origin: origin,
		cfg:    cfg.Normalized(),
		client: &http.Client{},
	}
}

// Wake pings the bare origin until it answers, up to WakeMaxAttempts with a
// linearly growing delay. Any HTTP status counts as awake. Exhausting the
// attempts is not an error; the real operation proceeds regardless and the
// wake only shortens its cold-start window.
func (c *Client) Wake(ctx context.Context) {
	for attempt := 1; attempt <= c.cfg.WakeMaxAttempts; attempt++ {
		if c.probe(ctx) {
			slog.Debug("origin awake", "attempt", attempt)
			return
		}
		if err := sleep(ctx, time.Duration(attempt)*c.cfg.WakeBackoffBase); err != nil {
			return
		}
	}
	slog.Warn("origin did not respond to wake probes, proceeding anyway",
		"attempts", c.cfg.WakeMaxAttempts)
}

// probe fires one wake request. A response of any status means the host is
// up; only a transport error counts as asleep.
func (c *Client) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.WakeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return true
}

// List fetches the message history with bounded retries and linear backoff.
// The caller treats a final failure as a skipped refresh, not a fatal
// condition.
func (c *Client) List(ctx context.Context) ([]model.Message, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.ListMaxAttempts; attempt++ {
		msgs, err := c.listOnce(ctx)
		if err == nil {
			return msgs, nil
		}
		lastErr = err
		slog.Warn("list attempt failed", "attempt", attempt, "error", err)

		if attempt < c.cfg.ListMaxAttempts {
			if err := sleep(ctx, time.Duration(attempt)*c.cfg.ListBackoffBase); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("list failed after %d attempts: %w", c.cfg.ListMaxAttempts, lastErr)
}

func (c *Client) listOnce(ctx context.Context) ([]model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ListTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+"/api/messages", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d body=%q", resp.StatusCode, truncate(body))
	}

	var msgs []model.Message
	if err := json.Unmarshal(body, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode message list: %w", err)
	}
	return msgs, nil
}

type sendPayload struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Send submits a message with exponential backoff. An attempt is retried
// when the backend answered with the cold-start status or no response
// arrived at all; any other non-2xx status is terminal and surfaces
// immediately. Between retries a single wake probe is fired to shorten the
// next cold-start window.
func (c *Client) Send(ctx context.Context, name, description string) (model.Message, error) {
	payload, err := json.Marshal(sendPayload{Name: name, Description: description})
	if err != nil {
		return model.Message{}, err
	}

	var lastErr error
	sawColdStart := false

	for attempt := 1; attempt <= c.cfg.SendMaxAttempts; attempt++ {
		msg, retryable, err := c.sendOnce(ctx, payload)
		if err == nil {
			return msg, nil
		}
		if !retryable {
			return model.Message{}, err
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == c.cfg.ColdStartStatus {
			sawColdStart = true
		}
		slog.Warn("send attempt failed", "attempt", attempt, "error", err)

		if attempt < c.cfg.SendMaxAttempts {
			delay := c.cfg.SendBackoffBase << (attempt - 1)
			if delay > c.cfg.SendBackoffCap {
				delay = c.cfg.SendBackoffCap
			}
			if err := sleep(ctx, delay); err != nil {
				return model.Message{}, err
			}
			c.probe(ctx)
		}
	}

	if sawColdStart {
		return model.Message{}, fmt.Errorf("%w: %v", ErrColdStart, lastErr)
	}
	return model.Message{}, fmt.Errorf("send failed after %d attempts: %w", c.cfg.SendMaxAttempts, lastErr)
}

// sendOnce performs one POST. retryable is true for the cold-start status
// and for transport errors where no response arrived.
func (c *Client) sendOnce(ctx context.Context, payload []byte) (model.Message, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.origin+"/api/messages", bytes.NewReader(payload))
	if err != nil {
		return model.Message{}, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		// No response at all: network failure or timeout, retryable.
		return model.Message{}, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.Message{}, true, err
	}

	if resp.StatusCode == c.cfg.ColdStartStatus {
		return model.Message{}, true, &StatusError{Status: resp.StatusCode, Body: truncate(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Message{}, false, &StatusError{Status: resp.StatusCode, Body: truncate(body)}
	}

	var msg model.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return model.Message{}, false, fmt.Errorf("failed to decode response: %w body=%q", err, truncate(body))
	}
	return msg, false, nil
}

// sleep waits for d or until the context is canceled, whichever comes
// first. A canceled context aborts the whole operation so a torn-down
// caller never receives a late result.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}

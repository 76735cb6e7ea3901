package classifier

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

	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

type FailureReason string

const (
	ReasonUnreachable       FailureReason = "unreachable"
	ReasonTimeout           FailureReason = "timeout"
	ReasonServerError       FailureReason = "server_error"
	ReasonUnrecognizedShape FailureReason = "unrecognized_shape"
)

// Outcome is the result of exactly one classification call. Either OK is
// true and Label/Score carry the raw provider result, or OK is false and
// Reason says why. Callers decide what a failure means; this package never
// retries and never returns an error.
type Outcome struct {
	OK     bool
	Label  string
	Score  float64
	Reason FailureReason
	Status int
}

func success(label string, score float64) Outcome {
	return Outcome{OK: true, Label: label, Score: score}
}

func failure(reason FailureReason) Outcome {
	return Outcome{Reason: reason}
}

// Sentiment maps the outcome onto the canonical taxonomy. Failures of any
// reason map to Unknown with zero confidence.
func (o Outcome) Sentiment() (sentiment.Sentiment, float64) {
	if !o.OK {
		return sentiment.Unknown, 0
	}
	return sentiment.Normalize(o.Label), sentiment.ClampScore(o.Score)
}

type Client struct {
	url     string
	token   string
	timeout time.Duration
	client  *http.Client
}

func NewClient(url, token string, timeout time.Duration) *Client {
	return &Client{
		url:     url,
		token:   token,
		timeout: timeout,
		// The per-call timeout is enforced via context so a caller with a
		// shorter deadline wins; the http.Client timeout is a backstop.
		client: &http.Client{Timeout: timeout + time.Second},
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify performs one classification call bounded by the configured
// timeout. It never returns an error: transport problems, non-2xx statuses,
// timeouts and unparseable bodies all resolve to a failure outcome.
func (c *Client) Classify(ctx context.Context, text string) Outcome {
	reqBody, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return failure(ReasonUnreachable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return failure(ReasonUnreachable)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return failure(ReasonTimeout)
		}
		return failure(ReasonUnreachable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return failure(ReasonUnreachable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("classifier returned non-2xx",
			"status", resp.StatusCode,
			"body", truncate(string(body), 200),
		)
		out := failure(ReasonServerError)
		out.Status = resp.StatusCode
		return out
	}

	label, score, ok := parseResponse(body)
	if !ok {
		slog.Warn("classifier response shape not recognized",
			"body", truncate(string(body), 200),
		)
		return failure(ReasonUnrecognizedShape)
	}

	return success(label, score)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:max], len(s))
}

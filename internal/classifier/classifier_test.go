package classifier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

func newTestClient(url string) *Client {
	return NewClient(url, "", 2*time.Second)
}

func TestClassify_FlatArrayResponse(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"label":"POSITIVE","score":0.93},{"label":"NEGATIVE","score":0.07}]`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(srv.URL)
	out := c.Classify(context.Background(), "great stuff")

	if !out.OK {
		t.Fatalf("expected success, got reason=%s", out.Reason)
	}
	if out.Label != "POSITIVE" || out.Score != 0.93 {
		t.Fatalf("expected highest-score candidate, got label=%q score=%v", out.Label, out.Score)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header without token, got %q", gotAuth)
	}
	if gotBody != `{"inputs":"great stuff"}` {
		t.Fatalf("unexpected request body: %s", gotBody)
	}

	feeling, score := out.Sentiment()
	if feeling != sentiment.Positive || score != 0.93 {
		t.Fatalf("expected positive/0.93, got %s/%v", feeling, score)
	}
}

func TestClassify_SendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[{"label":"neutral","score":0.5}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "hf_secret", 2*time.Second)
	out := c.Classify(context.Background(), "meh")

	if !out.OK {
		t.Fatalf("expected success, got reason=%s", out.Reason)
	}
	if gotAuth != "Bearer hf_secret" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}

func TestClassify_NestedArrayResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"negatif","score":0.61},{"label":"pozitif","score":0.39}]]`))
	}))
	t.Cleanup(srv.Close)

	out := newTestClient(srv.URL).Classify(context.Background(), "berbat")

	if !out.OK {
		t.Fatalf("expected success, got reason=%s", out.Reason)
	}
	feeling, score := out.Sentiment()
	if feeling != sentiment.Negative || score != 0.61 {
		t.Fatalf("expected negative/0.61, got %s/%v", feeling, score)
	}
}

func TestClassify_DataObjectResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": ["positive", 0.87]}`))
	}))
	t.Cleanup(srv.Close)

	out := newTestClient(srv.URL).Classify(context.Background(), "nice")

	if !out.OK {
		t.Fatalf("expected success, got reason=%s", out.Reason)
	}
	if out.Label != "positive" || out.Score != 0.87 {
		t.Fatalf("expected positive/0.87, got %q/%v", out.Label, out.Score)
	}
}

func TestClassify_UnrecognizedShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	t.Cleanup(srv.Close)

	out := newTestClient(srv.URL).Classify(context.Background(), "x")

	if out.OK {
		t.Fatalf("expected failure, got success %+v", out)
	}
	if out.Reason != ReasonUnrecognizedShape {
		t.Fatalf("expected unrecognized_shape, got %s", out.Reason)
	}
}

func TestClassify_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading model", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	out := newTestClient(srv.URL).Classify(context.Background(), "x")

	if out.OK {
		t.Fatalf("expected failure, got success %+v", out)
	}
	if out.Reason != ReasonServerError || out.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected server_error/503, got %s/%d", out.Reason, out.Status)
	}
}

func TestClassify_Timeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := NewClient(srv.URL, "", 50*time.Millisecond)
	out := c.Classify(context.Background(), "x")

	if out.OK {
		t.Fatalf("expected failure, got success %+v", out)
	}
	if out.Reason != ReasonTimeout {
		t.Fatalf("expected timeout, got %s", out.Reason)
	}
}

func TestClassify_Unreachable(t *testing.T) {
	t.Parallel()

	// Closed server: the connection is refused immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out := newTestClient(url).Classify(context.Background(), "x")

	if out.OK {
		t.Fatalf("expected failure, got success %+v", out)
	}
	if out.Reason != ReasonUnreachable {
		t.Fatalf("expected unreachable, got %s", out.Reason)
	}
}

func TestOutcome_SentimentClampsScore(t *testing.T) {
	t.Parallel()

	out := success("positive", 1.7)
	feeling, score := out.Sentiment()
	if feeling != sentiment.Positive || score != 0 {
		t.Fatalf("expected positive/0 for out-of-range score, got %s/%v", feeling, score)
	}
}

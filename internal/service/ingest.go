package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/okanalatt/FullStackAIChat/internal/cache"
	"github.com/okanalatt/FullStackAIChat/internal/classifier"
	"github.com/okanalatt/FullStackAIChat/internal/model"
	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
	"github.com/okanalatt/FullStackAIChat/internal/store"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type Classifier interface {
	Classify(ctx context.Context, text string) classifier.Outcome
}

// Ingestion accepts message submissions, enriches them best-effort and
// guarantees every accepted submission is persisted exactly once. A
// classification failure never fails the submission; the record is written
// with the unknown sentiment instead.
type Ingestion struct {
	classifier Classifier
	store      store.MessageStore
	cache      cache.SentimentCache
	contentMax int
}

func NewIngestion(c Classifier, s store.MessageStore, contentMax int) *Ingestion {
	return &Ingestion{
		classifier: c,
		store:      s,
		contentMax: contentMax,
	}
}

// WithCache attaches an optional sentiment cache consulted before the
// classifier.
func (i *Ingestion) WithCache(c cache.SentimentCache) *Ingestion {
	i.cache = c
	return i
}

func (i *Ingestion) Submit(ctx context.Context, name, description string) (model.Message, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return model.Message{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if description == "" {
		return model.Message{}, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(description) > i.contentMax {
		return model.Message{}, fmt.Errorf("%w: description exceeds %d chars", ErrInvalidInput, i.contentMax)
	}

	feeling, score := i.enrich(ctx, description)

	msg, err := i.store.Append(ctx, name, description, feeling, score)
	if err != nil {
		return model.Message{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return msg, nil
}

// enrich resolves the sentiment for a piece of content: cache first, then at
// most one classifier call. It cannot fail; the fallback is Unknown/0.
func (i *Ingestion) enrich(ctx context.Context, description string) (sentiment.Sentiment, float64) {
	if i.cache != nil {
		if label, score, ok := i.cache.Get(ctx, description); ok {
			return sentiment.Normalize(label), sentiment.ClampScore(score)
		}
	}

	out := i.classifier.Classify(ctx, description)
	if !out.OK {
		slog.Warn("classification failed, storing unknown sentiment",
			"reason", string(out.Reason),
			"status", out.Status,
		)
		return sentiment.Unknown, 0
	}

	if i.cache != nil {
		if err := i.cache.Store(ctx, description, out.Label, out.Score); err != nil {
			slog.Warn("sentiment cache store failed", "error", err)
		}
	}

	return out.Sentiment()
}

func (i *Ingestion) List(ctx context.Context) ([]model.Message, error) {
	msgs, err := i.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return msgs, nil
}

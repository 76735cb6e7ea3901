package store

import (
	"context"

	"github.com/okanalatt/FullStackAIChat/internal/model"
	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

// MessageStore is an append-only ordered log. Append assigns the id and the
// timestamp atomically with the insert, so concurrent appends never produce
// duplicate ids. List returns every record ordered by timestamp ascending,
// ties broken by id ascending.
type MessageStore interface {
	Append(ctx context.Context, name, description string, feeling sentiment.Sentiment, score float64) (model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
}

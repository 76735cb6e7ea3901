package cache

import "context"

// SentimentCache remembers successful classification results so repeated
// message content skips the external call. A nil cache is valid and means
// every submission is classified.
type SentimentCache interface {
	Get(ctx context.Context, text string) (label string, score float64, ok bool)
	Store(ctx context.Context, text, label string, score float64) error
}

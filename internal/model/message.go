package model

import (
	"time"

	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

// Message is the persisted chat entry. Records are immutable once written:
// id and timestamp are assigned by the store, feeling and score by the
// ingestion service before the append.
type Message struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Feeling     sentiment.Sentiment `json:"feeling"`
	Score       float64             `json:"score"`
	Timestamp   time.Time           `json:"timestamp"`
}

package store

import (
	"context"
	"database/sql"

	"github.com/okanalatt/FullStackAIChat/internal/model"
	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

// PostgresStore persists the log in a messages table. Opened by the caller
// with the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the messages table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			feeling     TEXT NOT NULL,
			score       DOUBLE PRECISION NOT NULL,
			timestamp   TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *PostgresStore) Append(ctx context.Context, name, description string, feeling sentiment.Sentiment, score float64) (model.Message, error) {
	msg := model.Message{
		Name:        name,
		Description: description,
		Feeling:     feeling,
		Score:       score,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO messages (name, description, feeling, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp
	`, name, description, string(feeling), score).Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return model.Message{}, err
	}

	msg.Timestamp = msg.Timestamp.UTC()
	return msg, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, feeling, score, timestamp
		FROM messages
		ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		var feeling string
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&feeling,
			&m.Score,
			&m.Timestamp,
		); err != nil {
			return nil, err
		}
		m.Feeling = sentiment.Sentiment(feeling)
		m.Timestamp = m.Timestamp.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

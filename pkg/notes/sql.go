package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
)

const createNotesTableSQL = `
CREATE TABLE IF NOT EXISTS learning_notes (
    id VARCHAR(255) PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL,
    topic TEXT NOT NULL,
    content TEXT,
    score REAL,
    status VARCHAR(50) NOT NULL,
    tags TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_user_id ON learning_notes(user_id);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON learning_notes(created_at);
`

// SQLStore is a sqlite-backed Store.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the sqlite database at path and
// ensures the schema exists.
func NewSQLStore(path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createNotesTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Append(ctx context.Context, note Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.Status == "" {
		note.Status = StatusCompleted
	}

	tagsJSON, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	var score sql.NullFloat64
	if note.Score != nil {
		score = sql.NullFloat64{Float64: *note.Score, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO learning_notes (id, user_id, topic, content, score, status, tags, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Topic, note.Content, score, note.Status, string(tagsJSON), note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append note: %w", err)
	}

	return nil
}

func (s *SQLStore) Query(ctx context.Context, userID, topic string, limit int) ([]Note, error) {
	query := `
SELECT id, user_id, topic, content, score, status, tags, created_at
FROM learning_notes
WHERE user_id = ?`
	args := []interface{}{userID}

	if topic != "" {
		query += ` AND LOWER(topic) LIKE ?`
		args = append(args, "%"+strings.ToLower(topic)+"%")
	}

	query += ` ORDER BY created_at DESC`

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var results []Note
	for rows.Next() {
		var (
			note     Note
			score    sql.NullFloat64
			tagsJSON string
		)
		if err := rows.Scan(&note.ID, &note.UserID, &note.Topic, &note.Content,
			&score, &note.Status, &tagsJSON, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		if score.Valid {
			v := score.Float64
			note.Score = &v
		}
		if tagsJSON != "" && tagsJSON != "null" {
			if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags: %w", err)
			}
		}

		results = append(results, note)
	}

	return results, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

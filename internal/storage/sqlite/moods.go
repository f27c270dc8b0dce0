package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

// timeLayout is fixed width so created_at sorts correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func (s *Store) AddMoodEntry(ctx context.Context, entry models.MoodEntry) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO mood_entries (id, mood, note, created_at) VALUES (?, ?, ?, ?)",
		entry.ID, entry.Mood, entry.Note, entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return nil
}

func (s *Store) GetMoodEntries(ctx context.Context, limit int) ([]models.MoodEntry, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, mood, note, created_at FROM mood_entries ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var e models.MoodEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Mood, &e.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q for entry %s: %w", createdAt, e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) CountMoodEntries(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM mood_entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count mood entries: %w", err)
	}
	return n, nil
}

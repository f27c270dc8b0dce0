package postgres

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
)

func (s *Store) AddMoodEntry(ctx context.Context, entry models.MoodEntry) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO mood_entries (id, mood, note, created_at) VALUES ($1, $2, $3, $4)",
		entry.ID, entry.Mood, entry.Note, entry.CreatedAt.UTC(),
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
		"SELECT id, mood, note, created_at FROM mood_entries ORDER BY created_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.ID, &e.Mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
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

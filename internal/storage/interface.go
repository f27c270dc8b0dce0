package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/moodlit/internal/models"
)

// ErrNotInitialized is returned by Load when the backing database has not been created
var ErrNotInitialized = errors.New("storage not initialized, run 'moodlit init' first")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error

	// Mood entries
	AddMoodEntry(ctx context.Context, entry models.MoodEntry) error
	// GetMoodEntries returns at most limit entries, newest first
	GetMoodEntries(ctx context.Context, limit int) ([]models.MoodEntry, error)
	CountMoodEntries(ctx context.Context) (int, error)

	// Migrations
	// SchemaStatus returns the applied and latest known schema versions
	SchemaStatus() (current int, latest int, err error)
	Migrate(logFn func(string)) (int, error)

	// Utils
	GetConfigPath() string
}

package moods

import (
	"context"
	"fmt"
	"io"

	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// historyLister is the read side of the API used to refresh after a save
type historyLister interface {
	ListMoods(ctx context.Context, limit int) ([]models.MoodEntry, error)
}

// consoleControls renders picker state as plain terminal output
type consoleControls struct {
	out     io.Writer
	api     historyLister
	active  string
	enabled bool
	note    string
	recent  int
}

func (c *consoleControls) MarkActive(id string) {
	c.active = id
}

func (c *consoleControls) SetSubmitEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *consoleControls) Note() string {
	return c.note
}

func (c *consoleControls) ClearNote() {
	c.note = ""
}

// Reload prints the latest entries, the console version of a page refresh
func (c *consoleControls) Reload() {
	if c.api == nil || c.recent <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultClientTimeout)
	defer cancel()

	entries, err := c.api.ListMoods(ctx, c.recent)
	if err != nil {
		logger.Warn("Failed to reload mood history", "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\nRecent moods:")
	printEntries(c.out, entries)
}

func (c *consoleControls) ReportError(err error) {
	fmt.Fprintf(c.out, "❌ Could not save mood: %s\n", apperrors.Explain(err))
}

func printEntries(out io.Writer, entries []models.MoodEntry) {
	for _, e := range entries {
		o := constants.LookupMood(e.Mood)
		fmt.Fprintf(out, "  %s  %s %s", e.CreatedAt.Local().Format(constants.TimestampFormat), o.Emoji, o.Label)
		if e.Note != "" {
			fmt.Fprintf(out, " - %s", e.Note)
		}
		fmt.Fprintln(out)
	}
}

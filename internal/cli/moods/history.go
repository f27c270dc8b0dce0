package moods

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
)

type HistoryCmd struct {
	Limit int `help:"Maximum number of entries to show." default:"20"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Limit <= 0 || c.Limit > constants.MaxHistoryLimit {
		return fmt.Errorf("limit must be between 1 and %d", constants.MaxHistoryLimit)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultClientTimeout)
	defer cancel()

	entries, err := ctx.Client().ListMoods(reqCtx, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to load mood history: %w", err)
	}

	out := ctx.Stdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No moods logged yet")
		return nil
	}
	fmt.Fprintln(out, "Moods:")
	printEntries(out, entries)
	return nil
}

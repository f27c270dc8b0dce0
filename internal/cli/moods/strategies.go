package moods

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
)

type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(ctx *cli.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultClientTimeout)
	defer cancel()

	strategies, err := ctx.Client().Strategies(reqCtx)
	if err != nil {
		return fmt.Errorf("failed to load coping strategies: %w", err)
	}

	out := ctx.Stdout()
	for _, s := range strategies {
		fmt.Fprintf(out, "• %s [%s]\n    %s\n", s.Title, s.Category, s.Description)
	}
	return nil
}

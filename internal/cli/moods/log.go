package moods

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/picker"
)

type LogCmd struct {
	Mood   string `arg:"" optional:"" help:"Mood to log. Prompts when omitted."`
	Note   string `help:"Optional note." short:"n"`
	Recent int    `help:"Number of recent entries to show after saving." default:"5"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	moodIDs := ctx.MoodIDs()
	mood, note := strings.ToLower(strings.TrimSpace(c.Mood)), c.Note

	if mood == "" {
		if err := promptMood(moodIDs, &mood, &note); err != nil {
			return fmt.Errorf("mood prompt cancelled: %w", err)
		}
	}

	api := ctx.Client()
	out := ctx.Stdout()
	controls := &consoleControls{out: out, api: api, note: note, recent: c.Recent}
	p := picker.New(moodIDs, controls, api)

	if err := p.SelectMood(mood); err != nil {
		if errors.Is(err, picker.ErrUnknownMood) {
			return fmt.Errorf("unknown mood %q, choose one of: %s", mood, strings.Join(moodIDs, ", "))
		}
		return err
	}

	submitCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultClientTimeout)
	defer cancel()

	// Submit has already shown the failure through the controls
	if err := p.Submit(submitCtx); err != nil {
		return apperrors.Reported(err)
	}
	o := constants.LookupMood(mood)
	fmt.Fprintf(out, "✓ Logged %s %s\n", o.Emoji, o.Label)
	return nil
}

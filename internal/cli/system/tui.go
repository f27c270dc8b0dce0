package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	api := ctx.Client()
	logger.Debug("Starting TUI", "server", api.BaseURL)

	p := tea.NewProgram(tui.NewModel(api, ctx.MoodIDs()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

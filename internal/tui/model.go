package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/picker"
)

// API is the subset of the server client the TUI needs
type API interface {
	picker.Submitter
	ListMoods(ctx context.Context, limit int) ([]models.MoodEntry, error)
	Strategies(ctx context.Context) ([]models.CopingStrategy, error)
}

// savedMsg settles an in-flight submission
type savedMsg struct {
	err error
}

type historyMsg struct {
	entries []models.MoodEntry
	err     error
}

type strategiesMsg struct {
	strategies []models.CopingStrategy
	err        error
}

type Model struct {
	api          API
	options      []constants.MoodOption
	state        picker.State
	cursor       int
	note         textinput.Model
	keys         KeyMap
	help         help.Model
	history      []models.MoodEntry
	strategies   []models.CopingStrategy
	historyLimit int
	status       string
	statusErr    bool
	timeout      time.Duration
	quitting     bool
	width        int
	height       int
}

// NewModel builds the picker UI for the given mood ids
func NewModel(api API, moodIDs []string) Model {
	options := make([]constants.MoodOption, 0, len(moodIDs))
	for _, id := range moodIDs {
		options = append(options, constants.LookupMood(id))
	}

	note := textinput.New()
	note.Placeholder = "Add a note (optional)"
	note.CharLimit = 500
	note.Width = 48
	note.Prompt = "✎ "

	return Model{
		api:          api,
		options:      options,
		note:         note,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		historyLimit: 10,
		timeout:      constants.DefaultClientTimeout,
	}
}

// State exposes the picker state, mainly for tests
func (m Model) State() picker.State {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistory(), m.loadStrategies())
}

func (m Model) optionIDs() []string {
	ids := make([]string, 0, len(m.options))
	for _, o := range m.options {
		ids = append(ids, o.ID)
	}
	return ids
}

func (m Model) saveMood(req models.MoodRequest) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return savedMsg{err: api.SaveMood(ctx, req)}
	}
}

func (m Model) loadHistory() tea.Cmd {
	api, timeout, limit := m.api, m.timeout, m.historyLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := api.ListMoods(ctx, limit)
		return historyMsg{entries: entries, err: err}
	}
}

func (m Model) loadStrategies() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		strategies, err := api.Strategies(ctx)
		return strategiesMsg{strategies: strategies, err: err}
	}
}

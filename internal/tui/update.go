package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/julianstephens/moodlit/internal/errors"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/picker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case historyMsg:
		if msg.err != nil {
			logger.Warn("Failed to load mood history", "error", msg.err)
			m.setError("Could not load history: " + apperrors.Explain(msg.err))
			return m, nil
		}
		m.history = msg.entries
		return m, nil

	case strategiesMsg:
		if msg.err != nil {
			logger.Warn("Failed to load coping strategies", "error", msg.err)
			return m, nil
		}
		m.strategies = msg.strategies
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.note.Focused() {
			return m.updateNote(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur), msg.String() == "tab":
		m.note.Blur()
		return m, nil
	case msg.String() == "ctrl+s", msg.String() == "enter":
		m.note.Blur()
		return m.submit()
	}

	if m.state.Phase == picker.PhaseSubmitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	m.state = picker.SetNote(m.state, m.note.Value())
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.selectAt(m.cursor)
	case key.Matches(msg, m.keys.Note):
		if m.state.Phase != picker.PhaseSubmitting {
			cmd := m.note.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadHistory()
	default:
		// Digit shortcuts pick the nth mood directly
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.selectAt(int(s[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) selectAt(i int) {
	if i < 0 || i >= len(m.options) {
		return
	}
	next, err := picker.SelectFrom(m.state, m.optionIDs(), m.options[i].ID)
	if err != nil {
		return
	}
	m.cursor = i
	m.state = next
	m.status = ""
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state = picker.SetNote(m.state, m.note.Value())
	next, payload, ok := picker.BeginSubmit(m.state)
	if !ok {
		// No selection or already submitting
		return m, nil
	}
	m.state = next
	m.status = "Saving…"
	m.statusErr = false
	return m, m.saveMood(payload)
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	mood := m.state.Mood
	next, outcome := picker.Settle(m.state, msg.err)
	m.state = next

	if outcome.Err != nil {
		logger.Error("Error saving mood", "mood", mood, "error", outcome.Err)
		m.setError("Could not save mood: " + apperrors.Explain(outcome.Err))
		return m, nil
	}

	m.note.Reset()
	m.status = "Saved " + mood
	m.statusErr = false
	if outcome.Reset {
		return m, m.loadHistory()
	}
	return m, nil
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

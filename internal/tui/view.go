package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/picker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("How are you feeling?"))
	b.WriteString("\n")
	b.WriteString(m.viewMoods())
	b.WriteString("\n\n")
	b.WriteString(m.note.View())
	b.WriteString("\n\n")
	b.WriteString(m.viewSave())
	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(dangerStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
	}

	main := b.String()
	side := lipgloss.JoinVertical(lipgloss.Left, m.viewHistory(), "", m.viewStrategies())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, panelStyle.Render(side))

	return docStyle.Render(body + "\n\n" + m.help.View(m.keys))
}

func (m Model) viewMoods() string {
	buttons := make([]string, 0, len(m.options))
	for i, o := range m.options {
		label := fmt.Sprintf("%d %s %s", i+1, o.Emoji, o.Label)
		style := moodStyle
		switch {
		case m.state.Mood == o.ID:
			style = activeMoodStyle
		case i == m.cursor && !m.note.Focused():
			style = cursorMoodStyle
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) viewSave() string {
	switch {
	case m.state.Phase == picker.PhaseSubmitting:
		return saveDisabledStyle.Render("Saving…")
	case m.state.SubmitEnabled():
		return saveEnabledStyle.Render("Save mood")
	default:
		return saveDisabledStyle.Render("Save mood")
	}
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n")
	if len(m.history) == 0 {
		b.WriteString(mutedStyle.Render("No moods logged yet"))
		return b.String()
	}
	for _, e := range m.history {
		o := constants.LookupMood(e.Mood)
		line := fmt.Sprintf("%s %s %s", e.CreatedAt.Local().Format("Jan 02 15:04"), o.Emoji, o.Label)
		if e.Note != "" {
			line += mutedStyle.Render("  " + e.Note)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewStrategies() string {
	if len(m.strategies) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Coping strategies"))
	b.WriteString("\n")
	for _, s := range m.strategies {
		b.WriteString("• " + s.Title)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

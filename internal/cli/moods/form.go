package moods

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/constants"
)

// newLogForm asks for a mood and an optional note
func newLogForm(moodIDs []string, mood, note *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(moodIDs))
	for _, id := range moodIDs {
		o := constants.LookupMood(id)
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", o.Emoji, o.Label), id))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(options...).
				Value(mood),
			huh.NewText().
				Title("Note").
				Description("Optional").
				CharLimit(500).
				Value(note).
				Validate(func(s string) error {
					if strings.Count(s, "\n") > 20 {
						return fmt.Errorf("note is too long")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// promptMood fills mood and note interactively. The select starts on the
// first mood, so an untouched prompt logs moodIDs[0]. Replaced in tests.
var promptMood = func(moodIDs []string, mood, note *string) error {
	return newLogForm(moodIDs, mood, note).Run()
}

package constants

// MoodOption describes one selectable mood
type MoodOption struct {
	ID    string
	Emoji string
	Label string
}

// DefaultMoods is the mood catalogue offered when none is configured
var DefaultMoods = []MoodOption{
	{ID: "happy", Emoji: "😊", Label: "Happy"},
	{ID: "calm", Emoji: "😌", Label: "Calm"},
	{ID: "neutral", Emoji: "😐", Label: "Neutral"},
	{ID: "sad", Emoji: "😢", Label: "Sad"},
	{ID: "anxious", Emoji: "😟", Label: "Anxious"},
	{ID: "angry", Emoji: "😠", Label: "Angry"},
}

// DefaultMoodIDs returns the ids of DefaultMoods in display order
func DefaultMoodIDs() []string {
	ids := make([]string, 0, len(DefaultMoods))
	for _, m := range DefaultMoods {
		ids = append(ids, m.ID)
	}
	return ids
}

// LookupMood returns the catalogue entry for id. Unknown ids get a plain
// option so custom mood sets still render.
func LookupMood(id string) MoodOption {
	for _, m := range DefaultMoods {
		if m.ID == id {
			return m
		}
	}
	return MoodOption{ID: id, Emoji: "•", Label: id}
}

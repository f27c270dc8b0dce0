package models

// CopingStrategy is a short suggestion shown next to the mood history
type CopingStrategy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CopingStrategies is the fixed list served by /api/strategies
var CopingStrategies = []CopingStrategy{
	{
		Title:       "Deep Breathing",
		Description: "Take 5 deep breaths, inhaling for 4 counts and exhaling for 6 counts.",
		Category:    "breathing",
	},
	{
		Title:       "5-Minute Meditation",
		Description: "Find a quiet place, close your eyes, and focus on your breath.",
		Category:    "meditation",
	},
	{
		Title:       "Quick Walk",
		Description: "Take a 10-minute walk outside to clear your mind.",
		Category:    "exercise",
	},
	{
		Title:       "Call a Friend",
		Description: "Reach out to someone you trust and share your feelings.",
		Category:    "social",
	},
	{
		Title:       "Express Creativity",
		Description: "Spend 15 minutes drawing, writing, or creating something.",
		Category:    "creative",
	},
}

package models

import "time"

// MoodRequest is the body of POST /api/mood
type MoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// MoodResponse is returned by the server after a mood is stored
type MoodResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}

// MoodEntry is a persisted mood submission
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

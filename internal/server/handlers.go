package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

type addMoodRequest struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

func (s *Server) handleAddMood(c *gin.Context) {
	var req addMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mood is required"})
		return
	}

	req.Mood = strings.TrimSpace(req.Mood)
	if len(req.Mood) > constants.MaxMoodLength || !s.validMood(req.Mood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mood %q", req.Mood)})
		return
	}

	entry := models.MoodEntry{
		ID:        uuid.New().String(),
		Mood:      req.Mood,
		Note:      req.Note,
		CreatedAt: s.cfg.Now().UTC(),
	}
	if err := s.store.AddMoodEntry(c.Request.Context(), entry); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mood"})
		return
	}

	c.JSON(http.StatusOK, models.MoodResponse{Status: "success", ID: entry.ID})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return constants.DefaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return min(n, constants.MaxHistoryLimit), nil
}

func (s *Server) handleListMoods(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := s.store.GetMoodEntries(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load moods"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, models.CopingStrategies)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type moodButton struct {
	constants.MoodOption
}

type indexData struct {
	Moods      []moodButton
	Entries    []models.MoodEntry
	Strategies []models.CopingStrategy
}

func (s *Server) handleIndex(c *gin.Context) {
	entries, err := s.store.GetMoodEntries(c.Request.Context(), constants.DefaultHistoryLimit)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "failed to load moods")
		return
	}

	buttons := make([]moodButton, 0, len(s.cfg.Moods))
	for _, id := range s.cfg.Moods {
		buttons = append(buttons, moodButton{constants.LookupMood(id)})
	}

	c.HTML(http.StatusOK, "index.html", indexData{
		Moods:      buttons,
		Entries:    entries,
		Strategies: models.CopingStrategies,
	})
}

var templateFuncs = template.FuncMap{
	"moodEmoji": func(id string) string { return constants.LookupMood(id).Emoji },
	"formatTime": func(e models.MoodEntry) string {
		return e.CreatedAt.Local().Format(constants.TimestampFormat)
	},
}

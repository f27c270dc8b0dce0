package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/client"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/discovery"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	// ServerURL is the explicit --server value, empty when not given
	ServerURL string
	ConfigDir string
	Moods     []string
	Out       io.Writer
}

// PerformAutomaticBackup snapshots a SQLite database, logging failures
// instead of interrupting the command
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Stdout returns the command output writer
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// MoodIDs returns the configured mood set, or the defaults
func (c *Context) MoodIDs() []string {
	if len(c.Moods) == 0 {
		return constants.DefaultMoodIDs()
	}
	return c.Moods
}

// ResolveServerURL picks the server base URL: explicit flag, then a live
// server recorded in the discovery lockfile, then the default address.
func (c *Context) ResolveServerURL() string {
	if c.ServerURL != "" {
		return strings.TrimRight(c.ServerURL, "/")
	}
	if c.ConfigDir != "" {
		url, err := discovery.Discover(discovery.LockfilePath(c.ConfigDir))
		if err == nil {
			logger.Debug("Discovered running server", "url", url)
			return url
		}
		if !errors.Is(err, discovery.ErrNoServer) {
			logger.Warn("Ignoring server lockfile", "error", err)
		}
	}
	return constants.DefaultServerURL
}

// Client returns an API client for the resolved server
func (c *Context) Client() *client.Client {
	return client.New(c.ResolveServerURL(), client.WithTimeout(constants.DefaultClientTimeout))
}

// ParseMoods splits a comma-separated mood list, dropping blanks and duplicates
func ParseMoods(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, part := range strings.Split(s, ",") {
		id := strings.ToLower(strings.TrimSpace(part))
		if id == "" || seen[id] {
			continue
		}
		if len(id) > constants.MaxMoodLength {
			return nil, fmt.Errorf("mood %q is longer than %d characters", id, constants.MaxMoodLength)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

package constants

import "time"

const (
	AppName            = "moodlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/moodlit/moodlit.db"
	Version            = "v0.1.0"

	// Server constants
	DefaultAddr          = "127.0.0.1:5000"
	DefaultServerURL     = "http://127.0.0.1:5000"
	ServerLockfileName   = "moodlit-server.lock"
	ServerReadTimeout    = 5 * time.Second
	ServerWriteTimeout   = 10 * time.Second
	ServerShutdownPeriod = 5 * time.Second

	// Client constants
	DefaultClientTimeout = 10 * time.Second
	DefaultHistoryLimit  = 50
	MaxHistoryLimit      = 500

	// API paths
	PathMood       = "/api/mood"
	PathMoods      = "/api/moods"
	PathStrategies = "/api/strategies"
	PathHealth     = "/healthz"

	// MaxMoodLength matches the mood column width
	MaxMoodLength = 20

	// TimestampFormat is used when printing entry times
	TimestampFormat = "2006-01-02 15:04"
)

package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/moodlit/internal/backup"
	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/discovery"
	"github.com/julianstephens/moodlit/internal/keyring"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkFail
	checkWarn
	checkSkip
)

func report(out io.Writer, name string, result checkResult, err error) {
	switch result {
	case checkOK:
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	case checkFail:
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
	case checkWarn:
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
	case checkSkip:
		fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", name)
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		report(out, "Database reachable", checkFail, err)
		hasError = true
	} else {
		report(out, "Database reachable", checkOK, nil)
		dbReachable = true
	}

	// Checks 2-4 need an open database
	dbChecks := []struct {
		name string
		fn   func(*cli.Context) error
	}{
		{"Schema version", checkSchemaVersion},
		{"Migrations complete", checkMigrationsComplete},
		{"Mood entries readable", checkEntriesReadable},
	}
	for _, c := range dbChecks {
		if !dbReachable {
			report(out, c.name, checkSkip, nil)
			continue
		}
		if err := c.fn(ctx); err != nil {
			report(out, c.name, checkFail, err)
			hasError = true
		} else {
			report(out, c.name, checkOK, nil)
		}
	}

	// Check 5: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		report(out, "Backups present", checkWarn, err)
	} else {
		report(out, "Backups present", checkOK, nil)
	}

	// Check 6: Clock sanity
	if err := checkClock(); err != nil {
		report(out, "Clock", checkFail, err)
		hasError = true
	} else {
		report(out, "Clock", checkOK, nil)
	}

	// Check 7: Server reachable (warning only)
	if err := checkServer(ctx); err != nil {
		report(out, "Server reachable", checkWarn, err)
	} else {
		report(out, "Server reachable", checkOK, nil)
	}

	// Check 8: Keyring (warning only)
	if !keyring.IsAvailable() {
		report(out, "OS keyring", checkWarn, keyring.ErrKeyringUnavailable)
	} else {
		report(out, "OS keyring", checkOK, nil)
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctx.Store.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported (%d), upgrade moodlit", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'moodlit migrate')", current, latest)
	}
	return nil
}

func checkEntriesReadable(ctx *cli.Context) error {
	qctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := ctx.Store.CountMoodEntries(qctx); err != nil {
		return fmt.Errorf("failed to count mood entries: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'moodlit backup')", mgr.Dir())
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkServer(ctx *cli.Context) error {
	hctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := ctx.ResolveServerURL()
	if err := ctx.Client().Health(hctx); err != nil {
		if ctx.ServerURL == "" && ctx.ConfigDir != "" {
			if _, derr := discovery.Discover(discovery.LockfilePath(ctx.ConfigDir)); errors.Is(derr, discovery.ErrNoServer) {
				return fmt.Errorf("no server at %s (start one with 'moodlit serve')", url)
			}
		}
		return fmt.Errorf("server at %s is not healthy: %w", url, err)
	}
	return nil
}

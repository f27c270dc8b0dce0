package system

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/discovery"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

func setupServeContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "moods.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &cli.Context{Store: store, ConfigDir: t.TempDir(), Out: &bytes.Buffer{}}
}

func TestServeCmd_BindFailureKeepsRunningServerLockfile(t *testing.T) {
	ctx := setupServeContext(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to occupy a port: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	lockfile := discovery.LockfilePath(ctx.ConfigDir)
	if err := discovery.WriteLockfile(lockfile, "127.0.0.1", port); err != nil {
		t.Fatalf("WriteLockfile() failed: %v", err)
	}
	before, err := os.ReadFile(lockfile)
	if err != nil {
		t.Fatalf("failed to read lockfile: %v", err)
	}

	if err := (&ServeCmd{Addr: ln.Addr().String()}).Run(ctx); err == nil {
		t.Fatal("expected serve to fail on an occupied address")
	}

	after, err := os.ReadFile(lockfile)
	if err != nil {
		t.Fatalf("lockfile of the running server was removed: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("lockfile changed: got %q, want %q", after, before)
	}
}

func TestServeCmd_BindFailureWritesNoLockfile(t *testing.T) {
	ctx := setupServeContext(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to occupy a port: %v", err)
	}
	defer ln.Close()

	if err := (&ServeCmd{Addr: ln.Addr().String()}).Run(ctx); err == nil {
		t.Fatal("expected serve to fail on an occupied address")
	}
	if _, err := os.Stat(discovery.LockfilePath(ctx.ConfigDir)); !os.IsNotExist(err) {
		t.Errorf("expected no lockfile after a failed bind, stat err = %v", err)
	}
}

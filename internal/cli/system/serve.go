package system

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/discovery"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." env:"MOODLIT_ADDR" default:"${default_addr}"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()
	ctx.PerformAutomaticBackup()

	srv, err := server.New(ctx.Store, server.Config{
		Addr:  c.Addr,
		Moods: ctx.MoodIDs(),
	})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lockfile := discovery.LockfilePath(ctx.ConfigDir)
	wrote := false
	defer func() {
		if !wrote {
			return
		}
		if err := discovery.RemoveLockfile(lockfile); err != nil {
			logger.Warn("Failed to remove server lockfile", "error", err)
		}
	}()

	return srv.Run(runCtx, func(addr *net.TCPAddr) {
		host := discovery.DialHost(addr.IP)
		if err := discovery.WriteLockfile(lockfile, host, addr.Port); err != nil {
			logger.Warn("Failed to write server lockfile", "error", err)
		} else {
			wrote = true
		}
		fmt.Fprintf(ctx.Stdout(), "%s listening on %s (Ctrl+C to stop)\n", constants.AppName, discovery.BaseURL(host, addr.Port))
	})
}

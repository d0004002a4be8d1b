package mcp

import (
	"context"
	"os"
	"time"

	"github.com/padenot/socorro-cli/internal/logging"
)

// DefaultWatchInterval is how often WatchParent polls the parent PID.
const DefaultWatchInterval = 2 * time.Second

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the MCP host exited or restarted), it calls
// cancelFn so the server shuts down instead of lingering as an orphan.
//
// It must not read from stdin: the SDK's StdioTransport owns stdin, and
// stolen bytes would corrupt the JSON-RPC stream.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, interval time.Duration, cancelFn context.CancelFunc) {
	watchParent(ctx, interval, os.Getppid, cancelFn)
}

func watchParent(ctx context.Context, interval time.Duration, getppid func() int, cancelFn context.CancelFunc) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ppid := getppid()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if getppid() != ppid {
					logging.New("mcp").Warn("parent process died, initiating shutdown", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}

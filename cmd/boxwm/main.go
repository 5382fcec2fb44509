// Package main implements boxwm's entrypoint: wire a platform adapter, load
// config, build the wm.State, and run the single-threaded event dispatcher.
// No business logic lives here (spec.md §1's command-line surface is out of
// scope) — this mirrors the teacher's cmd/tuios-web/main.go shape, which is
// itself a thin cobra+fang wrapper around wiring a server and running it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/boxwm/boxwm/internal/dispatch"
	"github.com/boxwm/boxwm/internal/events"
	"github.com/boxwm/boxwm/internal/platform"
	"github.com/boxwm/boxwm/internal/wm"
	"github.com/boxwm/boxwm/internal/wmconfig"
	"github.com/boxwm/boxwm/internal/wmlog"
)

// Version information (set by goreleaser).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var eventBufferSize int

func main() {
	rootCmd := &cobra.Command{
		Use:   "boxwm",
		Short: "A dynamic tiling window manager core",
		Long: `boxwm drives an OS window set as a tiling/floating container tree:
automatic tiling with cursor-quadrant insertion, floating windows, per-window
effects, window rules, and Alt+drag floating/move, reconciled against the
platform adapter at the end of every event turn.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
	rootCmd.Flags().IntVar(&eventBufferSize, "event-buffer", 64, "Outbound event stream buffer size")

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func run() error {
	lockDir, err := xdg.RuntimeFile("boxwm")
	if err != nil {
		return fmt.Errorf("resolve runtime dir: %w", err)
	}
	lock, err := platform.AcquireInstanceLock(lockDir, "boxwm")
	if err != nil {
		wmlog.Default.Fatal("acquire instance lock: %v", err)
		return err
	}
	defer lock.Release()

	if platform.NewAdapter == nil {
		wmlog.Default.Fatal("no platform adapter registered for this build")
		return fmt.Errorf("no platform adapter registered for this build")
	}
	adapter, err := platform.NewAdapter()
	if err != nil {
		wmlog.Default.Fatal("start platform adapter: %v", err)
		return err
	}

	cfg, result, err := wmconfig.Load()
	if err != nil {
		for _, e := range result.Errors {
			wmlog.Default.Warn("config [%s] %s: %s", e.Field, e.Key, e.Message)
		}
		wmlog.Default.Fatal("load config: %v", err)
		return err
	}
	for _, w := range result.Warnings {
		wmlog.Default.Warn("config [%s] %s: %s", w.Field, w.Key, w.Message)
	}

	sink := events.NewChanSink(eventBufferSize)
	state := wm.New(adapter, sink, cfg.ToReconcileConfig())
	state.Rules = cfg.ToWindowRules()

	for _, mon := range adapter.SortedMonitors() {
		monCtr := state.AddMonitor(mon)
		if len(cfg.Workspaces) > 0 {
			state.ActivateWorkspace(cfg.Workspaces[0].Name, monCtr)
		}
	}

	if path, err := wmconfig.Path(); err == nil {
		if watcher, err := wmconfig.NewWatcher(path); err == nil {
			go watcher.Run(path, func(newCfg *wmconfig.Config) {
				state.Config = newCfg.ToReconcileConfig()
				state.Rules = newCfg.ToWindowRules()
			})
			defer watcher.Close()
		} else {
			wmlog.Default.Warn("config watcher: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatch.NewLoop(state).Run(ctx)
	return nil
}

// Command fetchmaster is the CLI entrypoint for the Fetchmaster download
// wrapper.
//
// It parses the subcommand and flags, validates configuration, runs the
// dependency preflight, and executes the requested flow: single video,
// concurrent batch of videos, playlist, or dependency diagnostics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/backmassage/fetchmaster/internal/check"
	"github.com/backmassage/fetchmaster/internal/config"
	"github.com/backmassage/fetchmaster/internal/display"
	"github.com/backmassage/fetchmaster/internal/logging"
	"github.com/backmassage/fetchmaster/internal/runner"
	"github.com/backmassage/fetchmaster/internal/ytdlp"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "fetchmaster: %v\n", err)
		return 1
	}

	if cfg.BatchFile != "" {
		urls, err := config.LoadBatchFile(cfg.BatchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetchmaster: %v\n", err)
			return 1
		}
		cfg.URLs = append(cfg.URLs, urls...)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchmaster: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetchmaster: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.Mode == config.ModeCheck {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== Fetchmaster v%s (%s) ===", version, commit)
	log.Info("Destination: %s", cfg.OutputDir)
	if cfg.Hardened {
		log.Info("Mode: hardened (cookie import, UA spoof, linear backoff)")
	}
	log.Info("")

	// Destination creation is a setup-time side effect; the orchestrator
	// itself never touches directories.
	if err := cfg.EnsureOutputDir(); err != nil {
		log.Error("Cannot create destination directory: %v", err)
		return 1
	}

	// Preflight is advisory; the CLI chooses to abort on failure.
	if !check.CheckDeps(&cfg, log, check.ExecRunner{}) {
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so
	// in-flight tool processes are killed and pending retries abandoned.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping...")
		cancel()
	}()

	// Phase 4: Run the requested flow.
	orch := runner.New(&cfg, log)
	start := time.Now()

	switch {
	case cfg.Mode == config.ModePlaylist:
		req := ytdlp.Request{URL: cfg.URLs[0], HeightCap: cfg.HeightCap}
		if err := orch.Run(ctx, ytdlp.PlaylistProfile(&cfg), req); err != nil {
			reportError(log, err)
			return 1
		}

	case len(cfg.URLs) == 1:
		req := ytdlp.Request{URL: cfg.URLs[0], HeightCap: cfg.HeightCap}
		if err := orch.Run(ctx, ytdlp.VideoProfile(&cfg), req); err != nil {
			reportError(log, err)
			return 1
		}

	default:
		reqs := make([]ytdlp.Request, 0, len(cfg.URLs))
		for _, u := range cfg.URLs {
			reqs = append(reqs, ytdlp.Request{URL: u, HeightCap: cfg.HeightCap})
		}
		stats, err := orch.RunBatch(ctx, ytdlp.BatchProfile(&cfg), reqs)
		if err != nil {
			reportError(log, err)
			return 1
		}
		logSummary(log, &cfg, stats, time.Since(start))
		if stats.Failed > 0 {
			return 1
		}
	}
	return 0
}

// reportError logs a top-level failure; for exhausted downloads the
// accumulated tool stderr is replayed (last lines only).
func reportError(log *logging.Logger, err error) {
	var execErr *runner.ExecError
	if errors.As(err, &execErr) {
		log.Error("%v", execErr)
		logStderrTail(log, execErr.Stderr)
		return
	}
	log.Error("%v", err)
}

// logStderrTail prints the last 20 lines of captured tool stderr.
func logStderrTail(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last tool output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func logSummary(log *logging.Logger, cfg *config.Config, stats runner.BatchStats, elapsed time.Duration) {
	log.Info("==============================")
	log.Info("Done: %d downloaded, %d failed in %s",
		stats.Succeeded, stats.Failed, display.FormatDuration(elapsed))
	if size, err := dirSize(cfg.OutputDir); err == nil {
		log.Info("Destination size: %s (%s)", display.FormatBytes(size), cfg.OutputDir)
	}
}

// dirSize sums the file sizes under root.
func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

package runner

import (
	"context"
	"strings"
	"time"

	"github.com/backmassage/fetchmaster/internal/config"
	"github.com/backmassage/fetchmaster/internal/ytdlp"
)

const (
	maxAttempts = 3

	// exitPartial is the download tool's "some items in a multi-item job
	// failed" exit code. Acceptance is decided by the profile.
	exitPartial = 1

	fixedBackoffDelay = 2 * time.Second
	linearBackoffStep = 5 * time.Second
)

// BackoffPolicy returns the wait before re-launching after the given failed
// attempt (1-based).
type BackoffPolicy func(attempt int) time.Duration

// FixedBackoff waits the same duration after every failed attempt.
func FixedBackoff(d time.Duration) BackoffPolicy {
	return func(int) time.Duration { return d }
}

// LinearBackoff waits step after the first failure, 2*step after the
// second, and so on.
func LinearBackoff(step time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration { return step * time.Duration(attempt) }
}

// Orchestrator runs download commands with a fixed retry budget. One
// Orchestrator serves the whole process and is safe for concurrent use.
type Orchestrator struct {
	cfg      *config.Config
	log      Logger
	launcher Launcher
	backoff  BackoffPolicy
	wait     func(ctx context.Context, d time.Duration) error
}

// New builds an Orchestrator wired to the real subprocess launcher. The
// backoff policy follows the hardened flag: fixed 2s in simple mode, 5s
// times the attempt number in hardened mode.
func New(cfg *config.Config, log Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		log:      log,
		launcher: &execLauncher{log: log, verbose: cfg.Verbose},
		backoff:  FixedBackoff(fixedBackoffDelay),
		wait:     sleepCtx,
	}
	if cfg.Hardened {
		o.backoff = LinearBackoff(linearBackoffStep)
	}
	return o
}

// Run validates the request, builds the command once, and executes it with
// up to maxAttempts launches. Retries reuse the identical argument vector;
// nothing is re-derived between attempts. On final failure the returned
// *ExecError carries the last exit code and the accumulated stderr.
func (o *Orchestrator) Run(ctx context.Context, profile ytdlp.Profile, req ytdlp.Request) error {
	if strings.TrimSpace(req.URL) == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}

	argv := profile.Build(o.cfg, req)

	var last ExecResult
	attempts := 0
	for attempts < maxAttempts {
		attempts++
		res := o.launcher.Launch(ctx, argv)

		switch {
		case res.ExitCode == 0:
			o.log.Success("Downloaded: %s", req.URL)
			return nil
		case res.ExitCode == exitPartial && profile.AcceptPartial:
			o.log.Warn("Finished with skipped items (exit code 1): %s", req.URL)
			return nil
		}

		last = res
		if attempts == maxAttempts {
			break
		}

		delay := o.backoff(attempts)
		o.log.Warn("Attempt %d/%d failed (exit code %d), retrying in %s",
			attempts, maxAttempts, res.ExitCode, delay)
		if err := o.wait(ctx, delay); err != nil {
			o.log.Warn("Interrupted, aborting retries")
			break
		}
	}

	return &ExecError{
		Tool:     o.cfg.DownloadTool,
		ExitCode: last.ExitCode,
		Attempts: attempts,
		Stderr:   last.Stderr,
	}
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

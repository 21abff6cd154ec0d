// Package runner executes download commands as subprocesses with a fixed
// retry budget and bounded concurrent batch fan-out.
//
// Types:
//   - Orchestrator (one per process; safe for concurrent use, per-download
//     retry state lives on the stack of each Run call)
//   - Launcher (subprocess seam; the production launcher streams output
//     line by line, tests substitute spies)
//   - ExecResult (exit code, accumulated stderr, spawn error)
//   - ValidationError, ExecError
//   - BackoffPolicy (FixedBackoff for simple mode, LinearBackoff for
//     hardened mode)
//
// Functions:
//   - New(cfg, log) → *Orchestrator
//   - (*Orchestrator).Run(ctx, profile, req) → error
//     validate → build argv once → launch → classify exit code →
//     backoff → relaunch, up to 3 attempts.
//   - (*Orchestrator).RunBatch(ctx, profile, reqs) → (BatchStats, error)
//     errgroup with SetLimit; item failures are logged and counted,
//     never propagated to siblings.
package runner

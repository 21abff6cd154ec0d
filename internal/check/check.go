// Package check provides the pre-download dependency preflight (CheckDeps)
// and the interactive `check` subcommand diagnostics (RunCheck) for the
// external download and mux tools.
package check

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/backmassage/fetchmaster/internal/config"
)

// Logger is the minimal logging interface needed by this package.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// SilentRunner runs a command with all output discarded, reporting only
// whether it exited zero. Tests substitute canned outcomes.
type SilentRunner interface {
	RunSilent(name string, args ...string) bool
}

// ExecRunner is the production SilentRunner backed by os/exec.
type ExecRunner struct{}

// RunSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func (ExecRunner) RunSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// CheckDeps verifies that both external tools answer a version query. The
// two probes run concurrently. Returns true only when both succeed; on any
// failure exactly one diagnostic line is logged and false is returned
// without an error. The check is advisory: callers decide whether to abort.
func CheckDeps(cfg *config.Config, log Logger, r SilentRunner) bool {
	var dlOK, muxOK bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dlOK = r.RunSilent(cfg.DownloadTool, "--version")
	}()
	go func() {
		defer wg.Done()
		muxOK = r.RunSilent(cfg.MuxTool, "-version")
	}()
	wg.Wait()

	switch {
	case !dlOK && !muxOK:
		log.Error("dependency check failed: %s and %s are missing or not runnable", cfg.DownloadTool, cfg.MuxTool)
	case !dlOK:
		log.Error("dependency check failed: %s is missing or not runnable", cfg.DownloadTool)
	case !muxOK:
		log.Error("dependency check failed: %s is missing or not runnable", cfg.MuxTool)
	}
	return dlOK && muxOK
}

// RunCheck runs the interactive `check` flow: it reports PATH resolution and
// the version line of both tools. Returns true when both tools are usable.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Dependency Check ===")
	dlOK := checkTool(log, cfg.DownloadTool, "--version")
	muxOK := checkTool(log, cfg.MuxTool, "-version")
	return dlOK && muxOK
}

// checkTool verifies one tool is on PATH and logs its version string.
func checkTool(log Logger, name, versionArg string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found on PATH", name)
		return false
	}
	out, err := exec.Command(name, versionArg).Output()
	if err != nil {
		log.Warn("%s found but %s failed: %v", name, versionArg, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

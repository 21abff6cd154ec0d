package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"

	"github.com/alessio/shellescape"
)

// Logger is the minimal logging interface needed by the runner.
// Defined here (rather than importing the logging package) so that runner
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
	Tool(string)
}

// ExecResult holds the outcome of a single subprocess invocation attempt.
type ExecResult struct {
	ExitCode int    // -1 when the process could not be started or was killed.
	Stderr   string // Accumulated stderr text, kept for the final error report.
	Err      error  // Raw error from Start/Wait.
}

// Launcher runs one external command to completion. The production
// implementation streams output to the logger as it arrives; tests
// substitute spies that record invocations and return canned results.
type Launcher interface {
	Launch(ctx context.Context, argv []string) ExecResult
}

// execLauncher is the os/exec-backed Launcher. It relays every stdout and
// stderr line to the logger the moment it is read, so the user sees the
// tool's own progress output live, and additionally accumulates stderr.
type execLauncher struct {
	log     Logger
	verbose bool
}

func (l *execLauncher) Launch(ctx context.Context, argv []string) ExecResult {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	// Display only; execution always uses the discrete vector above.
	l.log.Debug(l.verbose, "exec: %s", shellescape.QuoteCommand(argv))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return ExecResult{ExitCode: -1, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return ExecResult{ExitCode: -1, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return ExecResult{ExitCode: -1, Err: err}
	}

	var stderrBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.relay(stdout, nil)
	}()
	go func() {
		defer wg.Done()
		l.relay(stderr, &stderrBuf)
	}()
	wg.Wait()

	err = cmd.Wait()
	return ExecResult{ExitCode: exitCode(err), Stderr: stderrBuf.String(), Err: err}
}

// relay streams r line by line to the Tool log level. When capture is
// non-nil every line is also appended to it (stderr accumulation).
func (l *execLauncher) relay(r io.Reader, capture *bytes.Buffer) {
	sc := bufio.NewScanner(r)
	// Progress lines from the download tool can get long.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		l.log.Tool(line)
		if capture != nil {
			capture.WriteString(line)
			capture.WriteByte('\n')
		}
	}
}

// exitCode maps a cmd.Wait error to a numeric exit code. -1 means the
// process never ran to a normal exit (spawn failure or killed by signal).
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

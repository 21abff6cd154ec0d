package runner

import "fmt"

// ValidationError reports a request rejected before any subprocess launch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExecError reports a download that failed after exhausting its retry
// budget. Stderr holds the final attempt's accumulated diagnostic output;
// it is surfaced only here, never on success.
type ExecError struct {
	Tool     string
	ExitCode int
	Attempts int
	Stderr   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts (last exit code %d)", e.Tool, e.Attempts, e.ExitCode)
}

package check

import (
	"fmt"
	"sync"
	"testing"

	"github.com/backmassage/fetchmaster/internal/config"
	"github.com/stretchr/testify/assert"
)

// fakeRunner answers version probes from a canned outcome table.
type fakeRunner struct {
	mu    sync.Mutex
	ok    map[string]bool
	calls []string
}

func (f *fakeRunner) RunSilent(name string, args ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.ok[name]
}

// countLogger counts lines per level.
type countLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *countLogger) Info(string, ...interface{})    {}
func (l *countLogger) Success(string, ...interface{}) {}
func (l *countLogger) Warn(string, ...interface{})    {}
func (l *countLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestCheckDeps_AllCombinations(t *testing.T) {
	tests := []struct {
		name  string
		dlOK  bool
		muxOK bool
		want  bool
	}{
		{"both available", true, true, true},
		{"download tool missing", false, true, false},
		{"mux tool missing", true, false, false},
		{"both missing", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			runner := &fakeRunner{ok: map[string]bool{
				cfg.DownloadTool: tt.dlOK,
				cfg.MuxTool:      tt.muxOK,
			}}
			log := &countLogger{}

			got := CheckDeps(&cfg, log, runner)

			assert.Equal(t, tt.want, got)
			assert.Len(t, runner.calls, 2, "both tools must be probed")
			if tt.want {
				assert.Empty(t, log.errors)
			} else {
				assert.Len(t, log.errors, 1, "exactly one diagnostic line on failure")
			}
		})
	}
}

func TestCheckDeps_QueriesVersionFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DownloadTool = "dl-tool"
	cfg.MuxTool = "mux-tool"
	runner := &fakeRunner{ok: map[string]bool{"dl-tool": true, "mux-tool": true}}

	assert.True(t, CheckDeps(&cfg, &countLogger{}, runner))
	assert.ElementsMatch(t, []string{"dl-tool", "mux-tool"}, runner.calls)
}

// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. The Config is built once during startup and passed by pointer;
// no package mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// --- Enum types for validated string fields ---

// Mode is the subcommand selected on the command line.
type Mode string

const (
	ModeVideo    Mode = "video"    // Single-video flow (strict exit-code policy).
	ModePlaylist Mode = "playlist" // Playlist flow (playlist output template).
	ModeCheck    Mode = "check"    // Dependency diagnostics only.
)

// PartialPolicy controls how exit code 1 from the download tool is treated.
// The tool uses it for "some items in a multi-item job failed"; whether that
// counts as success is an explicit configuration choice rather than a
// per-call-site accident.
type PartialPolicy string

const (
	PartialDefault PartialPolicy = ""       // Per-profile default: video rejects, playlist/batch accept.
	PartialAccept  PartialPolicy = "accept" // Exit code 1 is success in every flow.
	PartialReject  PartialPolicy = "reject" // Exit code 1 is a retryable failure everywhere.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Selected subcommand and its targets.
	Mode      Mode
	URLs      []string
	BatchFile string // Optional file of URLs, one per line.

	// Download shaping.
	OutputDir   string // Destination base directory. Default: see DefaultBaseDir.
	HeightCap   int    // 0 means unconstrained quality selection.
	Concurrency int    // Batch worker limit. Default: 3.

	// Retry and flag-set hardening.
	Hardened bool          // Hardened passthrough flags + linear backoff.
	Partial  PartialPolicy // Exit-code-1 acceptance override.

	// External tools. Overridable so tests never need the real binaries.
	DownloadTool string // Default: "yt-dlp".
	MuxTool      string // Default: "ffmpeg".

	// Passthrough flag values handed to the download tool unchanged.
	ExtractorRetries int    // Default: 3.
	FragmentRetries  int    // Default: 10 (hardened only).
	SleepInterval    int    // Seconds between items (hardened only). Default: 1.
	MaxSleepInterval int    // Default: 5.
	Browser          string // --cookies-from-browser source (hardened). Default: "firefox".
	UserAgent        string // Hardened only.
	AcceptLanguage   string // Hardened only. Default: "en-US,en;q=0.9".
	MergeFormat      string // Forced container (hardened). Default: "mp4".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		OutputDir:        DefaultBaseDir(),
		Concurrency:      3,
		DownloadTool:     "yt-dlp",
		MuxTool:          "ffmpeg",
		ExtractorRetries: 3,
		FragmentRetries:  10,
		SleepInterval:    1,
		MaxSleepInterval: 5,
		Browser:          "firefox",
		UserAgent:        defaultUserAgent,
		AcceptLanguage:   "en-US,en;q=0.9",
		MergeFormat:      "mp4",
		ColorMode:        ColorAuto,
	}
}

// envHome overrides the resolved base directory entirely when set.
const envHome = "FETCHMASTER_HOME"

// DefaultBaseDir resolves the default destination base directory. A .env
// file in the working directory is honored when present (its absence is not
// an error). Resolution order: FETCHMASTER_HOME, then the Windows-style
// USERPROFILE, then the Unix-style HOME, the latter two with a
// Downloads/fetchmaster suffix.
func DefaultBaseDir() string {
	_ = godotenv.Load()

	if dir := os.Getenv(envHome); dir != "" {
		return dir
	}
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		return filepath.Join(profile, "Downloads", "fetchmaster")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, "Downloads", "fetchmaster")
	}
	// No home variable at all; fall back to the working directory.
	return "fetchmaster-downloads"
}

// EnsureOutputDir creates the destination base directory. Directory creation
// is a setup-time side effect of configuration: idempotent, safe to call
// unconditionally, and never performed by the download orchestrator itself.
func (c *Config) EnsureOutputDir() error {
	return os.MkdirAll(c.OutputDir, 0o755)
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and per-mode argument requirements.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeVideo, ModePlaylist, ModeCheck:
		// valid
	default:
		return errors.New("invalid command (use 'video', 'playlist' or 'check')")
	}

	switch c.Partial {
	case PartialDefault, PartialAccept, PartialReject:
		// valid
	default:
		return errors.New("invalid partial policy (use 'accept' or 'reject')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.HeightCap < 0 {
		return fmt.Errorf("height cap must be a positive number (got %d)", c.HeightCap)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1 (got %d)", c.Concurrency)
	}

	if c.Mode == ModeCheck {
		return nil
	}
	if c.OutputDir == "" {
		return errors.New("destination directory must not be empty")
	}
	if len(c.URLs) == 0 {
		return errors.New("need at least one URL")
	}
	if c.Mode == ModePlaylist && len(c.URLs) != 1 {
		return errors.New("playlist mode takes exactly one URL")
	}
	return nil
}

// LoadBatchFile reads a batch file of URLs, one per line. Blank lines and
// lines starting with '#' are skipped.
func LoadBatchFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read batch file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("batch file %s contains no URLs", path)
	}
	return urls, nil
}

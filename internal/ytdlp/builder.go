package ytdlp

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/backmassage/fetchmaster/internal/config"
)

// Request describes one download. It is immutable once constructed; retries
// operate on the argument vector built from it, never on the Request itself.
type Request struct {
	URL       string
	HeightCap int    // 0 means no cap.
	Dir       string // Empty means the configured base directory.
}

// Output-path templates expanded by the download tool per item.
const (
	videoTemplate    = "%(title)s.%(ext)s"
	playlistTemplate = "%(playlist_title)s/%(playlist_index)s - %(title)s.%(ext)s"
)

// FormatSelector returns the quality-selection expression for the given
// height cap. A positive cap constrains both the merged and the single-file
// fallback selections; zero selects the unconstrained best streams.
func FormatSelector(heightCap int) string {
	if heightCap > 0 {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", heightCap, heightCap)
	}
	return "bestvideo+bestaudio/best"
}

// BuildArgs constructs the complete argument vector for one request.
// args[0] is the tool name and the URL is always the final element. The
// vector is handed to the launcher as-is; no shell string is ever built, so
// URLs need no quoting or escaping.
func BuildArgs(cfg *config.Config, req Request, playlist bool) []string {
	args := make([]string, 0, 40)
	args = append(args, cfg.DownloadTool)

	// --- Quality selection ---
	args = append(args, "-f", FormatSelector(req.HeightCap))

	// --- Output template ---
	dir := req.Dir
	if dir == "" {
		dir = cfg.OutputDir
	}
	tmpl := videoTemplate
	if playlist {
		tmpl = playlistTemplate
	}
	args = append(args, "-o", filepath.Join(dir, tmpl))

	// --- Base passthrough flags ---
	args = append(args,
		"--no-check-certificates",
		"--geo-bypass",
		"--format-sort-force",
		"--ignore-errors",
		"--no-warnings",
		"--extractor-retries", strconv.Itoa(cfg.ExtractorRetries),
	)

	// --- Hardened additions ---
	if cfg.Hardened {
		args = append(args,
			"--cookies-from-browser", cfg.Browser,
			"--user-agent", cfg.UserAgent,
			"--add-header", "Accept-Language:"+cfg.AcceptLanguage,
			"--sleep-interval", strconv.Itoa(cfg.SleepInterval),
			"--max-sleep-interval", strconv.Itoa(cfg.MaxSleepInterval),
			"--fragment-retries", strconv.Itoa(cfg.FragmentRetries),
			"--force-ipv4",
			"--merge-output-format", cfg.MergeFormat,
		)
		if !playlist {
			// Guard against a single-video URL that carries a playlist param.
			args = append(args, "--no-playlist")
		}
	}

	// --- Target ---
	args = append(args, req.URL)
	return args
}

package config

// This file implements CLI flag parsing and help text. The first positional
// argument selects the subcommand (video | playlist | check); remaining
// positionals after the flags are URLs. Flags are grouped into download,
// behavior, display, and utility.

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown command or
// flag).
func ParseFlags(cfg *Config, args []string, version string) error {
	if len(args) == 0 {
		printUsage(version)
		return errors.New("missing command")
	}

	switch args[0] {
	case "video":
		cfg.Mode = ModeVideo
	case "playlist":
		cfg.Mode = ModePlaylist
	case "check":
		cfg.Mode = ModeCheck
	case "help", "-h", "--help":
		printUsage(version)
		os.Exit(0)
	case "-V", "--version":
		fmt.Fprintln(os.Stdout, "fetchmaster v"+version)
		os.Exit(0)
	default:
		return fmt.Errorf("unknown command %q (use 'video', 'playlist' or 'check')", args[0])
	}

	fs := flag.NewFlagSet("fetchmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	// Utility flags are captured separately and applied after Parse so the
	// defaults from DefaultConfig() hold unless the user passes the flag.
	var u utilityFlags

	defineDownloadFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &u)

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if u.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if u.showVersion {
		fmt.Fprintln(os.Stdout, "fetchmaster v"+version)
		os.Exit(0)
	}
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}

	cfg.URLs = fs.Args()
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// utilityFlags holds boolean flags that are applied after Parse.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineDownloadFlags registers -H/--height, -o/--output, -n/--concurrency,
// --batch-file.
func defineDownloadFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.HeightCap, "height", cfg.HeightCap, "Cap video height (e.g. 720, 1080)")
	fs.IntVar(&cfg.HeightCap, "H", cfg.HeightCap, "Same as --height")
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Destination base directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent downloads in batch mode")
	fs.IntVar(&cfg.Concurrency, "n", cfg.Concurrency, "Same as --concurrency")
	fs.StringVar(&cfg.BatchFile, "batch-file", "", "File with URLs, one per line ('#' comments allowed)")
}

// defineBehaviorFlags registers --hardened, --partial, --browser.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Hardened, "hardened", false, "Hardened flag set and linear retry backoff")
	fs.Var(&partialValue{&cfg.Partial}, "partial", "Exit-code-1 policy: accept | reject")
	fs.StringVar(&cfg.Browser, "browser", cfg.Browser, "Browser for cookie import in hardened mode")
}

// defineDisplayFlags registers --color, --no-color, verbose, log, version, help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (echoes tool command lines)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// partialValue is a flag.Value adapter for the PartialPolicy enum.
type partialValue struct{ p *PartialPolicy }

func (v *partialValue) String() string { return string(*v.p) }
func (v *partialValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "accept":
		*v.p = PartialAccept
	case "reject":
		*v.p = PartialReject
	default:
		return fmt.Errorf("invalid partial policy %q (use 'accept' or 'reject')", s)
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Fetchmaster v" + version + " - retrying wrapper around yt-dlp"},
		{"", ""},
		{"  fetchmaster video [OPTIONS] <url> [url...]", ""},
		{"  fetchmaster playlist [OPTIONS] <url>", ""},
		{"  fetchmaster check", ""},
		{"", ""},
		{"Download", ""},
		{"  -H, --height <n>", "Cap video height (e.g. 720, 1080)"},
		{"  -o, --output <dir>", "Destination base directory"},
		{"  -n, --concurrency <n>", "Concurrent downloads in batch mode (default: 3)"},
		{"  --batch-file <path>", "File with URLs, one per line"},
		{"", ""},
		{"Behavior", ""},
		{"  --hardened", "Hardened flag set and linear retry backoff"},
		{"  --partial <accept|reject>", "How to treat tool exit code 1"},
		{"  --browser <name>", "Cookie source in hardened mode (default: firefox)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

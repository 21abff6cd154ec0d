package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/videos", "/media/videos"},
		{"single trailing slash", "/media/videos/", "/media/videos"},
		{"multiple trailing slashes", "/media/videos///", "/media/videos"},
		{"root path", "/", "/"},
		{"relative path", "downloads", "downloads"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Mode(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		wantErr bool
	}{
		{"video is valid", ModeVideo, false},
		{"playlist is valid", ModePlaylist, false},
		{"check is valid", ModeCheck, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "channel", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = tt.mode
			cfg.URLs = []string{"https://example.com/watch?v=1"}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_PartialPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  PartialPolicy
		wantErr bool
	}{
		{"default is valid", PartialDefault, false},
		{"accept is valid", PartialAccept, false},
		{"reject is valid", PartialReject, false},
		{"unknown is invalid", "maybe", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = ModeVideo
			cfg.URLs = []string{"https://example.com/watch?v=1"}
			cfg.Partial = tt.policy
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Arguments(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"no URLs", func(c *Config) { c.URLs = nil }, true},
		{"negative height", func(c *Config) { c.HeightCap = -720 }, true},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, true},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"playlist with two URLs", func(c *Config) {
			c.Mode = ModePlaylist
			c.URLs = []string{"https://a", "https://b"}
		}, true},
		{"check needs no URLs", func(c *Config) {
			c.Mode = ModeCheck
			c.URLs = nil
		}, false},
		{"video with two URLs", func(c *Config) {
			c.URLs = []string{"https://a", "https://b"}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = ModeVideo
			cfg.URLs = []string{"https://example.com/watch?v=1"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultBaseDir_EnvFallback(t *testing.T) {
	t.Setenv(envHome, "")
	t.Setenv("USERPROFILE", "")
	t.Setenv("HOME", "")

	t.Run("explicit override wins", func(t *testing.T) {
		t.Setenv(envHome, "/srv/media")
		t.Setenv("USERPROFILE", `C:\Users\test`)
		if got := DefaultBaseDir(); got != "/srv/media" {
			t.Errorf("DefaultBaseDir() = %q, want %q", got, "/srv/media")
		}
	})

	t.Run("userprofile before home", func(t *testing.T) {
		t.Setenv("USERPROFILE", "/winhome")
		t.Setenv("HOME", "/unixhome")
		want := filepath.Join("/winhome", "Downloads", "fetchmaster")
		if got := DefaultBaseDir(); got != want {
			t.Errorf("DefaultBaseDir() = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("HOME", "/unixhome")
		want := filepath.Join("/unixhome", "Downloads", "fetchmaster")
		if got := DefaultBaseDir(); got != want {
			t.Errorf("DefaultBaseDir() = %q, want %q", got, want)
		}
	})

	t.Run("no home variables", func(t *testing.T) {
		if got := DefaultBaseDir(); got != "fetchmaster-downloads" {
			t.Errorf("DefaultBaseDir() = %q, want %q", got, "fetchmaster-downloads")
		}
	})
}

func TestEnsureOutputDir_Idempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "videos")

	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatalf("first EnsureOutputDir: %v", err)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatalf("second EnsureOutputDir: %v", err)
	}
	if fi, err := os.Stat(cfg.OutputDir); err != nil || !fi.IsDir() {
		t.Errorf("destination not created: %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "video with height and urls",
			args: []string{"video", "--height", "720", "https://a", "https://b"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != ModeVideo {
					t.Errorf("Mode = %q", cfg.Mode)
				}
				if cfg.HeightCap != 720 {
					t.Errorf("HeightCap = %d", cfg.HeightCap)
				}
				if len(cfg.URLs) != 2 || cfg.URLs[0] != "https://a" {
					t.Errorf("URLs = %v", cfg.URLs)
				}
			},
		},
		{
			name: "playlist with output dir",
			args: []string{"playlist", "-o", "/tmp/out/", "https://a"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != ModePlaylist {
					t.Errorf("Mode = %q", cfg.Mode)
				}
				if cfg.OutputDir != "/tmp/out" {
					t.Errorf("OutputDir = %q (trailing slash not trimmed?)", cfg.OutputDir)
				}
			},
		},
		{
			name: "partial policy flag",
			args: []string{"video", "--partial", "reject", "https://a"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Partial != PartialReject {
					t.Errorf("Partial = %q", cfg.Partial)
				}
			},
		},
		{
			name: "check takes no flags",
			args: []string{"check"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != ModeCheck {
					t.Errorf("Mode = %q", cfg.Mode)
				}
			},
		},
		{name: "unknown command", args: []string{"channel", "https://a"}, wantErr: true},
		{name: "invalid partial value", args: []string{"video", "--partial", "maybe", "https://a"}, wantErr: true},
		{name: "no arguments", args: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ParseFlags(&cfg, tt.args, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, &cfg)
			}
		})
	}
}

func TestLoadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# queue\nhttps://a\n\n  https://b  \n# skip me\nhttps://c\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadBatchFile(path)
	if err != nil {
		t.Fatalf("LoadBatchFile: %v", err)
	}
	want := []string{"https://a", "https://b", "https://c"}
	if len(urls) != len(want) {
		t.Fatalf("got %d URLs, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestLoadBatchFile_Errors(t *testing.T) {
	if _, err := LoadBatchFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("# only comments\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBatchFile(empty); err == nil {
		t.Error("expected error for file without URLs")
	}
}

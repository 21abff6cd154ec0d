package ytdlp

import "github.com/backmassage/fetchmaster/internal/config"

// Profile selects the command shape and exit-code policy for one download
// flow. The orchestrator is parameterized by a Profile chosen at the call
// site; the behavioral differences between the flows (output template,
// playlist guard, exit-code-1 acceptance) live here as data.
type Profile struct {
	Name          string
	Playlist      bool // Playlist output template, no --no-playlist guard.
	AcceptPartial bool // Treat exit code 1 (partial success) as success.
}

// Build constructs the argument vector for req under this profile.
func (p Profile) Build(cfg *config.Config, req Request) []string {
	return BuildArgs(cfg, req, p.Playlist)
}

// VideoProfile is the strict single-video flow: exit code 1 is a failure
// unless the configured partial policy says otherwise.
func VideoProfile(cfg *config.Config) Profile {
	return applyPartial(cfg, Profile{Name: "video"})
}

// PlaylistProfile downloads a whole playlist; individual items may fail
// (exit code 1) without failing the job.
func PlaylistProfile(cfg *config.Config) Profile {
	return applyPartial(cfg, Profile{Name: "playlist", Playlist: true, AcceptPartial: true})
}

// BatchProfile is the single-video command shape with the batch flows'
// tolerant exit-code policy.
func BatchProfile(cfg *config.Config) Profile {
	return applyPartial(cfg, Profile{Name: "batch", AcceptPartial: true})
}

// applyPartial overrides the profile default when the user set an explicit
// exit-code-1 policy.
func applyPartial(cfg *config.Config, p Profile) Profile {
	switch cfg.Partial {
	case config.PartialAccept:
		p.AcceptPartial = true
	case config.PartialReject:
		p.AcceptPartial = false
	}
	return p
}

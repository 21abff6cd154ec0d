// Package ytdlp builds yt-dlp argument vectors for the download flows.
//
// Types:
//   - Request (URL, optional height cap, optional destination override)
//   - Profile (per-flow command shape and exit-code-1 acceptance)
//
// Functions:
//   - FormatSelector(heightCap) → string
//     Quality-selection expression, capped or unconstrained.
//   - BuildArgs(cfg, req, playlist) → []string
//     Full argv: tool name, -f selector, -o template, base passthrough
//     flags, hardened additions, URL last. Always a discrete vector,
//     never a shell string.
//   - VideoProfile / PlaylistProfile / BatchProfile
//     Strategy values selected at the call site; they carry the
//     behavioral differences the flows have (template, playlist guard,
//     partial acceptance).
package ytdlp

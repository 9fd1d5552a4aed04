package domain

import "context"

// Engine option keys recognized by the external download engine adapter.
// Handlers and user overrides speak this vocabulary; anything else in the
// mapping is ignored by the adapter.
const (
	OptionOutputTemplate = "output_template" // output file name template
	OptionFormat         = "format"          // format selector
	OptionMergeFormat    = "merge_format"    // container for merged audio/video
	OptionRetries        = "retries"         // network retry count
	OptionSocketTimeout  = "socket_timeout"  // connection timeout in seconds
	OptionCookieFile     = "cookie_file"     // cookies passed to the engine
)

// Engine is the external download engine. It is an opaque, potentially
// slow, blocking collaborator: the core neither retries nor reinterprets
// its failures.
type Engine interface {
	// Fetch downloads the media at rawURL using the given option mapping
	// and returns the completed file path.
	Fetch(ctx context.Context, rawURL string, options map[string]string) (string, error)

	// ListFormats returns the engine's own listing of available formats
	// for rawURL. This is a pass-through query that bypasses media-id
	// extraction.
	ListFormats(ctx context.Context, rawURL string) (string, error)
}

// MergeOptions builds the final engine option mapping. Handler options
// override the global defaults, and explicit user overrides win over
// both: user intent trumps platform default.
func MergeOptions(global, handler, user map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(handler)+len(user))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range handler {
		merged[k] = v
	}
	for k, v := range user {
		merged[k] = v
	}
	return merged
}

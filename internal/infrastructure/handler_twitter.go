package infrastructure

import (
	"regexp"

	"github.com/yourusername/mediagrab/internal/domain"
)

// urlShape pairs a validation pattern with the capture group holding the
// media id. Shape order is part of the handler contract: the first
// matching shape decides both validation and extraction.
type urlShape struct {
	pattern *regexp.Regexp
	idGroup int
}

// matchID runs the shapes in order and returns the id from the first one
// that matches.
func matchID(rawURL string, shapes []urlShape) (string, bool) {
	for _, shape := range shapes {
		if m := shape.pattern.FindStringSubmatch(rawURL); m != nil {
			if shape.idGroup < len(m) && m[shape.idGroup] != "" {
				return m[shape.idGroup], true
			}
		}
	}
	return "", false
}

func matchAny(rawURL string, shapes []urlShape) bool {
	for _, shape := range shapes {
		if shape.pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// Tweet URL shapes, checked in order: the regular status form, then the
// /i/ shortlink form.
var twitterShapes = []urlShape{
	{pattern: regexp.MustCompile(`^https?://(www\.)?(twitter|x)\.com/[^/]+/status/(\d+)`), idGroup: 3},
	{pattern: regexp.MustCompile(`^https?://(www\.)?(twitter|x)\.com/i/status/(\d+)`), idGroup: 3},
}

var twitterDomains = []string{"twitter.com", "x.com"}

// TwitterHandler handles X/Twitter URLs. The media id is the numeric
// status id.
type TwitterHandler struct{}

// NewTwitterHandler creates a Twitter/X handler.
func NewTwitterHandler() domain.Handler {
	return &TwitterHandler{}
}

// Descriptor returns the handler's static metadata.
func (h *TwitterHandler) Descriptor() domain.Descriptor {
	return domain.Descriptor{
		Name:             "twitter",
		SupportedDomains: twitterDomains,
	}
}

// ValidateURL reports whether rawURL matches a known tweet shape.
func (h *TwitterHandler) ValidateURL(rawURL string) bool {
	return matchAny(rawURL, twitterShapes)
}

// ExtractMediaID returns the numeric status id. Profile and search URLs
// pass the domain check but carry no status id, so ok is false for them.
func (h *TwitterHandler) ExtractMediaID(rawURL string) (string, bool) {
	return matchID(rawURL, twitterShapes)
}

// SupportsURL uses plain domain sniffing; a supported-domain URL without
// a status id is still claimed so the dispatcher can report "no media
// found" instead of "unsupported URL".
func (h *TwitterHandler) SupportsURL(rawURL string) bool {
	return domain.HostSupported(rawURL, twitterDomains)
}

// FetchOptions returns engine overrides tuned for X/Twitter: tweets often
// serve separate audio and video streams, so ask for both and merge.
func (h *TwitterHandler) FetchOptions() map[string]string {
	return map[string]string{
		domain.OptionFormat:      "best",
		domain.OptionMergeFormat: "mp4",
	}
}

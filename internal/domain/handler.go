package domain

import (
	"net/url"
	"strings"
)

// Descriptor holds the static metadata every platform handler owns.
type Descriptor struct {
	// Name is the canonical platform identifier, unique per handler type.
	Name string

	// SupportedDomains lists the host names used for URL sniffing.
	SupportedDomains []string
}

// Handler is the capability set every platform handler must implement.
// The dispatcher and registry treat all handlers uniformly through this
// interface; adding a platform means implementing it and registering a
// factory, nothing else.
type Handler interface {
	// Descriptor returns the handler's static metadata.
	Descriptor() Descriptor

	// ValidateURL reports whether rawURL syntactically matches one of the
	// platform's known URL shapes. Malformed input yields false, never a
	// panic.
	ValidateURL(rawURL string) bool

	// ExtractMediaID returns the platform-specific identifier contained in
	// rawURL. ok is false when the URL belongs to the platform but carries
	// no downloadable item (a profile page, for example). Extraction order
	// mirrors validation shape order: the first matching shape decides.
	ExtractMediaID(rawURL string) (id string, ok bool)

	// SupportsURL reports whether this handler claims rawURL during
	// sniffing. The default behavior is domain matching via HostSupported;
	// handlers may require a stricter path shape.
	SupportsURL(rawURL string) bool

	// FetchOptions returns the engine configuration overrides for this
	// platform. The mapping is passed opaquely to the download engine.
	FetchOptions() map[string]string
}

// HandlerFactory constructs a fresh handler instance. Handlers are
// stateless after construction, so a factory per dispatch is cheap.
type HandlerFactory func() Handler

// HostSupported is the default sniffing rule: it reports whether rawURL's
// host equals one of domains or is a subdomain of one. Unparseable input
// yields false.
func HostSupported(rawURL string, domains []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range domains {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

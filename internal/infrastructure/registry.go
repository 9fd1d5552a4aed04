package infrastructure

import "github.com/yourusername/mediagrab/internal/domain"

// DefaultRegistry assembles the process-wide registry. Registration
// happens here, explicitly and in a fixed order, during startup; the
// registry is read-only afterwards. Adding a platform means adding a
// handler and one Register line.
func DefaultRegistry() *domain.Registry {
	r := domain.NewRegistry()

	// Order matters: resolution by URL walks handler types in
	// first-registration order.
	r.Register("twitter", NewTwitterHandler)
	r.Register("x", NewTwitterHandler)
	r.Register("telegram", NewTelegramHandler)
	r.Register("tg", NewTelegramHandler)

	return r
}

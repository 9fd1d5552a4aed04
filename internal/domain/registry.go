package domain

import (
	"errors"
	"strings"
)

// ErrInvalidKey reports a Register call with an empty key. Distinct from
// DuplicateKeyError so strict-mode callers can tell the two startup
// defects apart.
var ErrInvalidKey = errors.New("platform key is empty")

// Registry owns the mapping from platform key to handler factory. It is
// assembled once during startup and read-only afterwards, which makes it
// safe for concurrent lookups without locking.
type Registry struct {
	strict bool

	keys  []string                  // registration order, aliases included
	byKey map[string]HandlerFactory // lowercased key -> factory

	order  []string // canonical handler names, first-registration order
	byName map[string]HandlerFactory
	refs   map[string]int // canonical name -> number of keys referencing it
}

// NewRegistry creates a registry with last-write-wins registration
// semantics.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]HandlerFactory),
		byName: make(map[string]HandlerFactory),
		refs:   make(map[string]int),
	}
}

// NewStrictRegistry creates a registry that rejects duplicate keys with
// DuplicateKeyError. Duplicates are a configuration defect, so strict
// mode is meant to fail at startup, never mid-dispatch.
func NewStrictRegistry() *Registry {
	r := NewRegistry()
	r.strict = true
	return r
}

// Register inserts the mapping for key. Keys are case-insensitive and
// several keys may reference the same handler type (alias support). In
// the default mode re-registering a key overwrites it; in strict mode it
// returns DuplicateKeyError.
func (r *Registry) Register(key string, factory HandlerFactory) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ErrInvalidKey
	}

	var displaced string
	if old, exists := r.byKey[key]; exists {
		if r.strict {
			return &DuplicateKeyError{Key: key}
		}
		displaced = old().Descriptor().Name
	} else {
		r.keys = append(r.keys, key)
	}
	r.byKey[key] = factory

	name := factory().Descriptor().Name
	if r.refs[name] == 0 {
		r.order = append(r.order, name)
	}
	r.refs[name]++
	r.byName[name] = factory

	// A handler type reachable by no key is no longer registered and must
	// leave the URL-sniffing order.
	if displaced != "" {
		r.refs[displaced]--
		if r.refs[displaced] == 0 {
			delete(r.byName, displaced)
			delete(r.refs, displaced)
			for i, n := range r.order {
				if n == displaced {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
		}
	}

	return nil
}

// ResolveByKey returns the factory registered under key, case-insensitive.
func (r *Registry) ResolveByKey(key string) (HandlerFactory, bool) {
	factory, ok := r.byKey[strings.ToLower(strings.TrimSpace(key))]
	return factory, ok
}

// ResolveByURL returns the first registered handler type whose SupportsURL
// claims rawURL. Aliases are deduplicated, so each handler type is asked
// once, in first-registration order. When two handler types could both
// claim a URL the first-registered one wins; that is a documented policy
// for a configuration defect, not a runtime error.
func (r *Registry) ResolveByURL(rawURL string) (HandlerFactory, bool) {
	for _, name := range r.order {
		factory := r.byName[name]
		if factory().SupportsURL(rawURL) {
			return factory, true
		}
	}
	return nil, false
}

// ListPlatforms enumerates every registered key, aliases included, in
// registration order. The order is stable across calls.
func (r *Registry) ListPlatforms() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// PlatformFor returns the canonical handler name a key maps to.
func (r *Registry) PlatformFor(key string) (string, bool) {
	factory, ok := r.ResolveByKey(key)
	if !ok {
		return "", false
	}
	return factory().Descriptor().Name, true
}

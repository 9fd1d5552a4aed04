package domain

import (
	"fmt"
	"strings"
)

// UnknownPlatformError reports an explicit platform key that is not in
// the registry. It carries the valid keys so the CLI can suggest them.
type UnknownPlatformError struct {
	Key   string
	Known []string
}

func (e *UnknownPlatformError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown platform %q", e.Key)
	}
	return fmt.Sprintf("unknown platform %q (available: %s)", e.Key, strings.Join(e.Known, ", "))
}

// UnsupportedURLError reports that no registered handler claimed the URL.
type UnsupportedURLError struct {
	URL string
}

func (e *UnsupportedURLError) Error() string {
	return fmt.Sprintf("no platform supports URL %q; run 'platforms' to list supported platforms", e.URL)
}

// NoMediaFoundError reports that the platform was recognized but the URL
// carries no extractable media identifier. Kept distinct from
// UnsupportedURLError so users understand the platform is supported but
// the specific link is not downloadable.
type NoMediaFoundError struct {
	URL      string
	Platform string
}

func (e *NoMediaFoundError) Error() string {
	return fmt.Sprintf("no media found at %q (recognized as %s, but the URL does not point to a downloadable item)", e.URL, e.Platform)
}

// DuplicateKeyError reports a duplicate key registration in a strict
// registry. This is a startup-time configuration defect.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("platform key %q already registered", e.Key)
}

// EngineError wraps a failure from the external download engine. The
// dispatcher does not reinterpret engine errors; Unwrap exposes the
// engine's own error verbatim.
type EngineError struct {
	URL string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("download engine failed for %q: %v", e.URL, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

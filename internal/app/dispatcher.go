package app

import (
	"context"

	"github.com/yourusername/mediagrab/internal/domain"
	"github.com/yourusername/mediagrab/internal/infrastructure"
	"go.uber.org/zap"
)

// Dispatcher is the single orchestration point per invocation: it
// resolves the matching handler, extracts the media id, merges engine
// options, and delegates the fetch. Each Dispatch call is exactly one
// attempt; retries belong to the engine configuration, never here.
type Dispatcher struct {
	registry *domain.Registry
	engine   domain.Engine
	history  domain.HistoryRepository            // optional
	notifier *infrastructure.NotificationService // optional
	global   map[string]string
	logger   *zap.Logger
}

// DispatchOptions carries per-invocation input beyond the URL.
type DispatchOptions struct {
	// PlatformKey, when set, bypasses URL sniffing and resolves the
	// handler by key.
	PlatformKey string

	// Overrides are user-supplied engine options; they win over both
	// handler defaults and global configuration.
	Overrides map[string]string
}

// NewDispatcher creates a dispatcher. history and notifier may be nil.
func NewDispatcher(
	registry *domain.Registry,
	engine domain.Engine,
	history domain.HistoryRepository,
	notifier *infrastructure.NotificationService,
	globalOptions map[string]string,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		engine:   engine,
		history:  history,
		notifier: notifier,
		global:   globalOptions,
		logger:   logger,
	}
}

// Dispatch runs the full sequence for one URL. The returned request
// reflects the final state even when err is non-nil.
func (d *Dispatcher) Dispatch(ctx context.Context, rawURL string, opts DispatchOptions) (*domain.ResolvedRequest, error) {
	req := domain.NewResolvedRequest(rawURL)

	factory, err := d.resolve(rawURL, opts.PlatformKey)
	if err != nil {
		return d.fail(req, err)
	}

	handler := factory()
	req.MarkResolved(handler.Descriptor().Name)
	d.logger.Debug("Resolved platform",
		zap.String("id", req.ID),
		zap.String("url", rawURL),
		zap.String("platform", req.Platform))

	mediaID, ok := handler.ExtractMediaID(rawURL)
	if !ok {
		return d.fail(req, &domain.NoMediaFoundError{URL: rawURL, Platform: req.Platform})
	}
	req.MarkValidated(mediaID)

	options := domain.MergeOptions(d.global, handler.FetchOptions(), opts.Overrides)
	req.MarkConfigured(options)

	d.logger.Info("Delegating to download engine",
		zap.String("id", req.ID),
		zap.String("platform", req.Platform),
		zap.String("media_id", mediaID))
	req.MarkDelegated()

	filePath, err := d.engine.Fetch(ctx, rawURL, options)
	if err != nil {
		// The engine's failure is passed through opaquely; wrapping only
		// tags its origin for the exit-code mapping.
		return d.fail(req, &domain.EngineError{URL: rawURL, Err: err})
	}

	req.MarkSucceeded(filePath)
	d.record(req)
	if d.notifier != nil {
		d.notifier.NotifyDispatchCompleted(rawURL, req.Platform)
	}

	d.logger.Info("Dispatch completed",
		zap.String("id", req.ID),
		zap.String("file", filePath))
	return req, nil
}

// ListFormats forwards a format-listing query to the engine, bypassing
// media-id extraction. The URL must still resolve to a registered
// platform so typos fail fast.
func (d *Dispatcher) ListFormats(ctx context.Context, rawURL string, platformKey string) (string, error) {
	if _, err := d.resolve(rawURL, platformKey); err != nil {
		return "", err
	}
	return d.engine.ListFormats(ctx, rawURL)
}

// Platforms returns the registered platform keys for CLI listing.
func (d *Dispatcher) Platforms() []string {
	return d.registry.ListPlatforms()
}

func (d *Dispatcher) resolve(rawURL, platformKey string) (domain.HandlerFactory, error) {
	if platformKey != "" {
		factory, ok := d.registry.ResolveByKey(platformKey)
		if !ok {
			return nil, &domain.UnknownPlatformError{
				Key:   platformKey,
				Known: d.registry.ListPlatforms(),
			}
		}
		return factory, nil
	}

	factory, ok := d.registry.ResolveByURL(rawURL)
	if !ok {
		return nil, &domain.UnsupportedURLError{URL: rawURL}
	}
	return factory, nil
}

func (d *Dispatcher) fail(req *domain.ResolvedRequest, err error) (*domain.ResolvedRequest, error) {
	req.MarkFailed(err)
	d.record(req)
	if d.notifier != nil {
		d.notifier.NotifyDispatchFailed(req.SourceURL, err)
	}
	d.logger.Warn("Dispatch failed",
		zap.String("id", req.ID),
		zap.String("url", req.SourceURL),
		zap.Error(err))
	return req, err
}

// record persists the outcome when history is enabled. History failures
// never mask the dispatch result.
func (d *Dispatcher) record(req *domain.ResolvedRequest) {
	if d.history == nil {
		return
	}
	if err := d.history.Create(domain.NewDispatchRecord(req)); err != nil {
		d.logger.Error("Failed to record dispatch history",
			zap.String("id", req.ID),
			zap.Error(err))
	}
}

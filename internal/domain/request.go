package domain

import (
	"time"

	"github.com/google/uuid"
)

// DispatchState tracks where a request is in the dispatch sequence.
type DispatchState string

const (
	StateReceived   DispatchState = "received"
	StateResolved   DispatchState = "resolved"
	StateValidated  DispatchState = "validated"
	StateConfigured DispatchState = "configured"
	StateDelegated  DispatchState = "delegated"
	StateSucceeded  DispatchState = "succeeded"
	StateFailed     DispatchState = "failed"
)

// ResolvedRequest is the per-invocation value produced by a dispatch. It
// is created when the URL is received, mutated through the dispatch
// states, and discarded once the fetch completes or fails. It is never
// persisted or shared across invocations.
type ResolvedRequest struct {
	ID        string
	SourceURL string

	// Platform is the canonical name of the handler that matched. Set
	// exactly once, when the request transitions to StateResolved.
	Platform string

	// MediaID is the platform-specific identifier extracted from the URL.
	// Empty until StateValidated.
	MediaID string

	// Options is the final engine option mapping, set at StateConfigured.
	Options map[string]string

	State     DispatchState
	FilePath  string
	Err       error
	CreatedAt time.Time
}

// NewResolvedRequest creates a request in the received state.
func NewResolvedRequest(rawURL string) *ResolvedRequest {
	return &ResolvedRequest{
		ID:        uuid.New().String(),
		SourceURL: rawURL,
		State:     StateReceived,
		CreatedAt: time.Now(),
	}
}

// MarkResolved records the matched platform.
func (r *ResolvedRequest) MarkResolved(platform string) {
	r.Platform = platform
	r.State = StateResolved
}

// MarkValidated records the extracted media identifier.
func (r *ResolvedRequest) MarkValidated(mediaID string) {
	r.MediaID = mediaID
	r.State = StateValidated
}

// MarkConfigured records the merged engine options.
func (r *ResolvedRequest) MarkConfigured(options map[string]string) {
	r.Options = options
	r.State = StateConfigured
}

// MarkDelegated marks the hand-off to the external engine.
func (r *ResolvedRequest) MarkDelegated() {
	r.State = StateDelegated
}

// MarkSucceeded records the completed file path.
func (r *ResolvedRequest) MarkSucceeded(filePath string) {
	r.FilePath = filePath
	r.State = StateSucceeded
}

// MarkFailed records the terminal error.
func (r *ResolvedRequest) MarkFailed(err error) {
	r.Err = err
	r.State = StateFailed
}

// Succeeded reports whether the request reached the succeeded state.
func (r *ResolvedRequest) Succeeded() bool {
	return r.State == StateSucceeded
}

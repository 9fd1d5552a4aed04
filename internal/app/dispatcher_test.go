package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediagrab/internal/domain"
	"github.com/yourusername/mediagrab/internal/infrastructure"
	"go.uber.org/zap"
)

// fakeEngine records the delegation and returns a canned outcome.
type fakeEngine struct {
	fetchCalls   int
	lastURL      string
	lastOptions  map[string]string
	fetchPath    string
	fetchErr     error
	formatsOut   string
	formatsCalls int
}

func (e *fakeEngine) Fetch(ctx context.Context, rawURL string, options map[string]string) (string, error) {
	e.fetchCalls++
	e.lastURL = rawURL
	e.lastOptions = options
	if e.fetchErr != nil {
		return "", e.fetchErr
	}
	return e.fetchPath, nil
}

func (e *fakeEngine) ListFormats(ctx context.Context, rawURL string) (string, error) {
	e.formatsCalls++
	return e.formatsOut, nil
}

// memoryHistory collects records in memory.
type memoryHistory struct {
	records []*domain.DispatchRecord
}

func (h *memoryHistory) Create(record *domain.DispatchRecord) error {
	h.records = append(h.records, record)
	return nil
}

func (h *memoryHistory) FindByID(id string) (*domain.DispatchRecord, error) { return nil, nil }
func (h *memoryHistory) FindRecent(limit int) ([]*domain.DispatchRecord, error) {
	return h.records, nil
}
func (h *memoryHistory) GetStats() (*domain.HistoryStats, error) { return &domain.HistoryStats{}, nil }
func (h *memoryHistory) Close() error                            { return nil }

func newTestDispatcher(engine domain.Engine, history domain.HistoryRepository) *Dispatcher {
	global := map[string]string{
		domain.OptionOutputTemplate: "%(id)s.%(ext)s",
		domain.OptionRetries:        "3",
	}
	return NewDispatcher(infrastructure.DefaultRegistry(), engine, history, nil, global, zap.NewNop())
}

func TestDispatch_TweetURLSucceeds(t *testing.T) {
	engine := &fakeEngine{fetchPath: "/tmp/out/user_123456789.mp4"}
	history := &memoryHistory{}
	d := newTestDispatcher(engine, history)

	req, err := d.Dispatch(context.Background(), "https://x.com/user/status/123456789", DispatchOptions{})

	require.NoError(t, err)
	assert.Equal(t, "twitter", req.Platform)
	assert.Equal(t, "123456789", req.MediaID)
	assert.Equal(t, domain.StateSucceeded, req.State)
	assert.Equal(t, "/tmp/out/user_123456789.mp4", req.FilePath)

	// The engine received the original URL and a non-empty option mapping.
	assert.Equal(t, 1, engine.fetchCalls)
	assert.Equal(t, "https://x.com/user/status/123456789", engine.lastURL)
	assert.NotEmpty(t, engine.lastOptions)

	// The outcome was recorded.
	require.Len(t, history.records, 1)
	assert.Equal(t, string(domain.StateSucceeded), history.records[0].State)
}

func TestDispatch_ProfileURLYieldsNoMediaFound(t *testing.T) {
	engine := &fakeEngine{}
	d := newTestDispatcher(engine, nil)

	req, err := d.Dispatch(context.Background(), "https://x.com/user", DispatchOptions{})

	require.Error(t, err)
	var noMedia *domain.NoMediaFoundError
	require.ErrorAs(t, err, &noMedia)
	assert.Equal(t, "twitter", noMedia.Platform)
	assert.Equal(t, domain.StateFailed, req.State)
	// The engine is never reached.
	assert.Zero(t, engine.fetchCalls)
}

func TestDispatch_UnregisteredPlatformURLIsUnsupported(t *testing.T) {
	engine := &fakeEngine{}
	d := newTestDispatcher(engine, nil)

	_, err := d.Dispatch(context.Background(), "https://vimeo.com/12345", DispatchOptions{})

	require.Error(t, err)
	var unsupported *domain.UnsupportedURLError
	require.ErrorAs(t, err, &unsupported)
	assert.Zero(t, engine.fetchCalls)
}

func TestDispatch_UnknownExplicitKey(t *testing.T) {
	engine := &fakeEngine{}
	d := newTestDispatcher(engine, nil)

	_, err := d.Dispatch(context.Background(), "https://youtube.com/watch?v=abc", DispatchOptions{
		PlatformKey: "yt",
	})

	require.Error(t, err)
	var unknown *domain.UnknownPlatformError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "yt", unknown.Key)
	// The error carries the valid keys for the user.
	assert.Contains(t, unknown.Known, "twitter")
	assert.Contains(t, unknown.Known, "x")
	assert.Zero(t, engine.fetchCalls)
}

func TestDispatch_ExplicitKeyBypassesSniffing(t *testing.T) {
	engine := &fakeEngine{fetchPath: "/tmp/out/file.mp4"}
	d := newTestDispatcher(engine, nil)

	req, err := d.Dispatch(context.Background(), "https://x.com/user/status/42", DispatchOptions{
		PlatformKey: "X",
	})

	require.NoError(t, err)
	assert.Equal(t, "twitter", req.Platform)
}

func TestDispatch_EngineFailurePropagatesOpaquely(t *testing.T) {
	engineErr := errors.New("yt-dlp: exit status 1 (network unreachable)")
	engine := &fakeEngine{fetchErr: engineErr}
	history := &memoryHistory{}
	d := newTestDispatcher(engine, history)

	req, err := d.Dispatch(context.Background(), "https://x.com/user/status/123", DispatchOptions{})

	require.Error(t, err)
	var engineFailure *domain.EngineError
	require.ErrorAs(t, err, &engineFailure)
	// The engine's own error is preserved unchanged underneath.
	assert.ErrorIs(t, err, engineErr)
	assert.Equal(t, domain.StateFailed, req.State)

	// Exactly one attempt, no internal retry.
	assert.Equal(t, 1, engine.fetchCalls)

	require.Len(t, history.records, 1)
	assert.Equal(t, string(domain.StateFailed), history.records[0].State)
}

func TestDispatch_OptionMergePrecedence(t *testing.T) {
	engine := &fakeEngine{fetchPath: "/tmp/out/file.mp4"}
	d := newTestDispatcher(engine, nil)

	_, err := d.Dispatch(context.Background(), "https://x.com/user/status/123", DispatchOptions{
		Overrides: map[string]string{domain.OptionFormat: "worst"},
	})
	require.NoError(t, err)

	// User override beats the handler default ("best").
	assert.Equal(t, "worst", engine.lastOptions[domain.OptionFormat])
	// Handler default survives where not overridden.
	assert.Equal(t, "mp4", engine.lastOptions[domain.OptionMergeFormat])
	// Globals survive where neither touches them.
	assert.Equal(t, "3", engine.lastOptions[domain.OptionRetries])
}

func TestDispatch_TelegramURLRoutesToTelegram(t *testing.T) {
	engine := &fakeEngine{fetchPath: "/tmp/out/file.mp4"}
	d := newTestDispatcher(engine, nil)

	req, err := d.Dispatch(context.Background(), "https://t.me/somechannel/99", DispatchOptions{})

	require.NoError(t, err)
	assert.Equal(t, "telegram", req.Platform)
	assert.Equal(t, "99", req.MediaID)
}

func TestListFormats_Passthrough(t *testing.T) {
	engine := &fakeEngine{formatsOut: "ID  EXT  RESOLUTION\nhttp-720  mp4  1280x720"}
	d := newTestDispatcher(engine, nil)

	out, err := d.ListFormats(context.Background(), "https://x.com/user/status/123", "")

	require.NoError(t, err)
	assert.Contains(t, out, "http-720")
	assert.Equal(t, 1, engine.formatsCalls)
}

func TestListFormats_UnsupportedURLFailsBeforeEngine(t *testing.T) {
	engine := &fakeEngine{}
	d := newTestDispatcher(engine, nil)

	_, err := d.ListFormats(context.Background(), "https://vimeo.com/12345", "")

	require.Error(t, err)
	var unsupported *domain.UnsupportedURLError
	require.ErrorAs(t, err, &unsupported)
	assert.Zero(t, engine.formatsCalls)
}

func TestPlatforms_ListsRegisteredKeys(t *testing.T) {
	d := newTestDispatcher(&fakeEngine{}, nil)

	assert.Equal(t, []string{"twitter", "x", "telegram", "tg"}, d.Platforms())
}

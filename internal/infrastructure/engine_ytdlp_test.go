package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/mediagrab/internal/domain"
	"go.uber.org/zap"
)

func newTestEngine(outputDir string) *YTDLPEngine {
	config := &domain.EngineConfig{Binary: "yt-dlp"}
	return NewYTDLPEngine(config, outputDir, filepath.Join(os.TempDir(), "mediagrab-test-logs"), zap.NewNop())
}

func TestBuildFetchArgs_TranslatesOptionMapping(t *testing.T) {
	engine := newTestEngine("/tmp/out")

	args := engine.buildFetchArgs("https://x.com/user/status/123", map[string]string{
		domain.OptionOutputTemplate: "%(id)s.%(ext)s",
		domain.OptionFormat:         "best",
		domain.OptionMergeFormat:    "mp4",
		domain.OptionRetries:        "3",
		domain.OptionSocketTimeout:  "30",
	})

	assert.Contains(t, args, "-P")
	assert.Contains(t, args, "/tmp/out")
	assertFlagValue(t, args, "-o", "%(id)s.%(ext)s")
	assertFlagValue(t, args, "-f", "best")
	assertFlagValue(t, args, "--merge-output-format", "mp4")
	assertFlagValue(t, args, "--retries", "3")
	assertFlagValue(t, args, "--socket-timeout", "30")

	// The URL is always the final argument.
	assert.Equal(t, "https://x.com/user/status/123", args[len(args)-1])
}

func TestBuildFetchArgs_EmptyOptions(t *testing.T) {
	engine := newTestEngine("/tmp/out")

	args := engine.buildFetchArgs("https://x.com/user/status/123", map[string]string{})

	assert.NotContains(t, args, "-f")
	assert.NotContains(t, args, "-o")
	assert.NotContains(t, args, "--merge-output-format")
	assert.Equal(t, "https://x.com/user/status/123", args[len(args)-1])
}

func TestBuildFetchArgs_UnknownKeysIgnored(t *testing.T) {
	engine := newTestEngine("/tmp/out")

	args := engine.buildFetchArgs("https://x.com/user/status/123", map[string]string{
		"future_option": "value",
	})

	assert.NotContains(t, args, "future_option")
	assert.NotContains(t, args, "value")
}

func TestBuildFetchArgs_CookieFileOnlyWhenPresent(t *testing.T) {
	engine := newTestEngine("/tmp/out")

	// Missing file: flag is skipped.
	args := engine.buildFetchArgs("https://x.com/user/status/1", map[string]string{
		domain.OptionCookieFile: "/nonexistent/cookies.txt",
	})
	assert.NotContains(t, args, "--cookies")

	// Existing file: flag is passed.
	tmp, err := os.CreateTemp("", "cookies-*.txt")
	require.NoError(t, err)
	defer os.Remove(tmp.Name())
	tmp.Close()

	args = engine.buildFetchArgs("https://x.com/user/status/1", map[string]string{
		domain.OptionCookieFile: tmp.Name(),
	})
	assertFlagValue(t, args, "--cookies", tmp.Name())
}

func TestBuildFetchArgs_PathWithSpaces(t *testing.T) {
	engine := newTestEngine("/tmp/out dir with spaces")

	args := engine.buildFetchArgs("https://x.com/user/status/123", nil)

	// exec.Command passes args directly, so the path must stay a single
	// argument rather than being quoted or split.
	assertFlagValue(t, args, "-P", "/tmp/out dir with spaces")
}

// assertFlagValue asserts that flag appears in args immediately followed
// by value.
func assertFlagValue(t *testing.T, args []string, flag, value string) {
	t.Helper()
	for i, arg := range args {
		if arg == flag {
			require.Less(t, i+1, len(args), "flag %s has no value", flag)
			assert.Equal(t, value, args[i+1], "flag %s", flag)
			return
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
}

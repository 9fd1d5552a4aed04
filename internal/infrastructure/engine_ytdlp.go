package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/mediagrab/internal/domain"
	"go.uber.org/zap"
)

// YTDLPEngine delegates fetching to the yt-dlp binary. The option mapping
// handed to Fetch is translated into command-line flags; unrecognized
// keys are ignored so handlers can carry forward-looking options without
// breaking older engine adapters.
type YTDLPEngine struct {
	config    *domain.EngineConfig
	outputDir string
	logsDir   string
	logger    *zap.Logger
}

// NewYTDLPEngine creates a yt-dlp engine adapter.
func NewYTDLPEngine(config *domain.EngineConfig, outputDir, logsDir string, logger *zap.Logger) *YTDLPEngine {
	return &YTDLPEngine{
		config:    config,
		outputDir: outputDir,
		logsDir:   logsDir,
		logger:    logger,
	}
}

// buildFetchArgs translates the option mapping into yt-dlp arguments.
// Note: exec.Command passes args directly to the process, no shell
// quoting needed.
func (e *YTDLPEngine) buildFetchArgs(rawURL string, options map[string]string) []string {
	args := []string{
		"--no-warnings",
		"--restrict-filenames",
		"--no-simulate",
		"--print", "after_move:filepath",
	}

	if e.outputDir != "" {
		args = append(args, "-P", e.outputDir)
	}
	if v, ok := options[domain.OptionOutputTemplate]; ok && v != "" {
		args = append(args, "-o", v)
	}
	if v, ok := options[domain.OptionFormat]; ok && v != "" {
		args = append(args, "-f", v)
	}
	if v, ok := options[domain.OptionMergeFormat]; ok && v != "" {
		args = append(args, "--merge-output-format", v)
	}
	if v, ok := options[domain.OptionRetries]; ok && v != "" {
		args = append(args, "--retries", v)
	}
	if v, ok := options[domain.OptionSocketTimeout]; ok && v != "" {
		args = append(args, "--socket-timeout", v)
	}
	if v, ok := options[domain.OptionCookieFile]; ok && v != "" && fileExists(v) {
		args = append(args, "--cookies", v)
	}

	return append(args, rawURL)
}

// Fetch runs yt-dlp and returns the path of the downloaded file.
func (e *YTDLPEngine) Fetch(ctx context.Context, rawURL string, options map[string]string) (string, error) {
	if e.outputDir != "" {
		if err := os.MkdirAll(e.outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	args := e.buildFetchArgs(rawURL, options)

	logFile, err := e.openLogFile()
	if err != nil {
		return "", fmt.Errorf("failed to open engine log file: %w", err)
	}
	defer logFile.Close()

	cmdLine := ShellEscapeCommand(e.config.Binary, args...)
	e.writeLogHeader(logFile, cmdLine)
	e.logger.Debug("Invoking download engine", zap.String("command", cmdLine))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// yt-dlp's own progress output goes to the daily engine log, keeping
	// the CLI output clean.
	logFile.Write(stdout.Bytes())
	logFile.Write(stderr.Bytes())

	if runErr != nil {
		e.writeLogFooter(logFile, false, runErr.Error())
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%s: %w (%s)", e.config.Binary, runErr, lastLine(detail))
		}
		return "", fmt.Errorf("%s: %w", e.config.Binary, runErr)
	}

	filePath := firstLine(stdout.String())
	if filePath == "" {
		e.writeLogFooter(logFile, false, "no file produced")
		return "", fmt.Errorf("%s reported success but produced no file", e.config.Binary)
	}

	e.writeLogFooter(logFile, true, filePath)
	return filePath, nil
}

// ListFormats runs the engine's format listing for rawURL and returns its
// output unmodified.
func (e *YTDLPEngine) ListFormats(ctx context.Context, rawURL string) (string, error) {
	args := []string{"--no-warnings", "-F", rawURL}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%s: %w (%s)", e.config.Binary, err, lastLine(detail))
		}
		return "", fmt.Errorf("%s: %w", e.config.Binary, err)
	}

	return stdout.String(), nil
}

// openLogFile opens the engine log file for today.
func (e *YTDLPEngine) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(e.logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	dateStr := time.Now().Format("20060102")
	logPath := filepath.Join(e.logsDir, "engine-"+dateStr+".log")
	return os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func (e *YTDLPEngine) writeLogHeader(file *os.File, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	file.WriteString(fmt.Sprintf("\n=== [%s] Fetch ===\n", timestamp))
	file.WriteString(fmt.Sprintf("$ %s\n", cmdLine))
}

func (e *YTDLPEngine) writeLogFooter(file *os.File, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	file.WriteString(fmt.Sprintf("[%s] %s: %s\n", timestamp, status, message))
	file.WriteString("=== END ===\n\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

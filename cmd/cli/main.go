package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/mediagrab/internal/app"
	"github.com/yourusername/mediagrab/internal/domain"
)

// Exit codes at the CLI boundary.
const (
	exitOK            = 0
	exitUnsupported   = 1 // unsupported URL or unknown platform
	exitNoMedia       = 2 // platform recognized, nothing to download
	exitEngineFailure = 3 // the external engine failed
)

var (
	cfgFile        string
	platformKey    string
	formatSelector string
	outputTemplate string
	listFormats    bool

	rootCmd = &cobra.Command{
		Use:   "mediagrab [url]",
		Short: "Download media from social platforms",
		Long: `mediagrab routes a social-media URL to the matching platform handler
and delegates the download to yt-dlp.

Examples:
  mediagrab https://x.com/user/status/123456789
  mediagrab --platform x https://x.com/i/status/123456789
  mediagrab -F https://x.com/user/status/123456789
  mediagrab platforms`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDispatch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.Flags().StringVarP(&platformKey, "platform", "p", "", "Platform key (skips URL detection)")
	rootCmd.Flags().StringVarP(&formatSelector, "format", "f", "", "Engine format selector override")
	rootCmd.Flags().StringVarP(&outputTemplate, "output", "o", "", "Output file name template override")
	rootCmd.Flags().BoolVarP(&listFormats, "list-formats", "F", false, "List available formats instead of downloading")

	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	rawURL := args[0]

	env, err := newEnvironment(cfgFile)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if listFormats {
		formats, err := env.Dispatcher.ListFormats(ctx, rawURL, platformKey)
		if err != nil {
			return err
		}
		fmt.Print(formats)
		return nil
	}

	overrides := make(map[string]string)
	if formatSelector != "" {
		overrides[domain.OptionFormat] = formatSelector
	}
	if outputTemplate != "" {
		overrides[domain.OptionOutputTemplate] = outputTemplate
	}

	req, err := env.Dispatcher.Dispatch(ctx, rawURL, app.DispatchOptions{
		PlatformKey: platformKey,
		Overrides:   overrides,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Downloaded %s media %s\n", req.Platform, req.MediaID)
	fmt.Println(req.FilePath)
	return nil
}

// exitCodeFor maps the error taxonomy to exit codes: 1 for resolution
// failures, 2 for recognized-but-empty URLs, 3 for engine failures.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		unknown     *domain.UnknownPlatformError
		unsupported *domain.UnsupportedURLError
		noMedia     *domain.NoMediaFoundError
		engine      *domain.EngineError
	)
	switch {
	case errors.As(err, &unknown), errors.As(err, &unsupported):
		return exitUnsupported
	case errors.As(err, &noMedia):
		return exitNoMedia
	case errors.As(err, &engine):
		return exitEngineFailure
	default:
		return exitUnsupported
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/mediagrab/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP dispatch server",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cfgFile)
		if err != nil {
			return err
		}
		defer env.Close()

		router := api.SetupRouter(env.Dispatcher, env.History, env.Logger)
		addr := fmt.Sprintf("%s:%d", env.Config.Server.Host, env.Config.Server.Port)
		server := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			env.Logger.Info("starting HTTP server", zap.String("addr", addr))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case sig := <-quit:
			env.Logger.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	},
}

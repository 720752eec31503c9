package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"schoolplanner/internal/app"
	"schoolplanner/internal/config"
	"schoolplanner/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:          "server",
		Short:        "School Planner: timetable, homework and a self-assessment test",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations and exit",
			RunE: func(*cobra.Command, []string) error {
				cfg, _, err := bootstrap()
				if err != nil {
					return err
				}
				return app.Migrate(cfg)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load demo users, timetable, tasks and results",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := bootstrap()
				if err != nil {
					return err
				}
				sum, err := app.Seed(cmd.Context(), cfg, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d lessons, %d tasks, %d results\n",
					sum.Users, sum.Lessons, sum.Tasks, sum.Results)
				return nil
			},
		},
	)

	return root
}

func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.Env), nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", "error", err)
		}
		return err
	case sig := <-quit:
		log.Info("signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

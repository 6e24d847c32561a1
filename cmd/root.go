package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DanielEliad/powerworld/app"
	"github.com/DanielEliad/powerworld/config"
	"github.com/DanielEliad/powerworld/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:     "powerworld",
	Short:   "Power-grid simulation analyzer",
	Long:    "Serves the PowerWorld paste-analysis API: battery sizing, budget tracking and load redistribution over simulation exports.",
	Version: app.Version,
	RunE:    runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json, built-in defaults when empty)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// runServe is the default command: load configuration, wire the service and
// block until the context is cancelled.
func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("wire service: %w", err)
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			logger.New("main").Errorf("service close: %v", cerr)
		}
	}()
	return svc.Run(ctx)
}

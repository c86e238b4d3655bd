package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := runner.App().Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close account store", "error", cerr)
	}
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// configure loads the config file named by --config, when it exists, and applies the --store override.
//
// Without a file the runner keeps its current config, with MEDLEY_* environment overrides applied.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("config loaded", "path", r.configPath)
	} else if err := shared.ApplyEnv(r.config); err != nil {
		return ctx, err
	}

	if driver := cmd.String("store"); driver != "" {
		r.config.Store.Driver = driver
	}

	shared.SetLogLevel(r.logger, shared.ParseLogLevel(r.config.Log.Level))

	if err := r.config.Validate(); err != nil {
		return ctx, fmt.Errorf("config %s: %w", r.configPath, err)
	}
	return ctx, nil
}

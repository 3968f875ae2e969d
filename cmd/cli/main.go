package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/cmd/cli/commands"
	"github.com/turnoswap/turnoswap/internal/config"
	"github.com/turnoswap/turnoswap/pkg/postgres"
	"github.com/turnoswap/turnoswap/pkg/utils/logging"
)

var (
	app     *commands.AppContext
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turnoswap",
		Short: "Turnoswap CLI - Match and manage hospital shift swaps",
		Long:  `A CLI tool for discovering legal shift swap candidates from staff preferences and progressing swap requests through acceptance and supervisor approval.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")

	rootCmd.AddCommand(commands.FindMatchesCmd(appRef()))
	rootCmd.AddCommand(commands.AcceptSwapCmd(appRef()))
	rootCmd.AddCommand(commands.ApproveSwapCmd(appRef()))
	rootCmd.AddCommand(commands.RejectSwapCmd(appRef()))
	rootCmd.AddCommand(commands.ListRequestsCmd(appRef()))
	rootCmd.AddCommand(commands.SettleDebtCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty here and populated by
// initApp before any command runs
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config and database
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	logger, err := logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Logger.Info("Application initialized", zap.Bool("verbose", verbose))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/cmd/cli/commands"
	"github.com/rhysmorgan-dev/magor-rota/internal/config"
	"github.com/rhysmorgan-dev/magor-rota/pkg/postgres"
	"github.com/rhysmorgan-dev/magor-rota/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "magor-rota",
		Short: "Magor Rota CLI - Generate and inspect weekly factory rotas",
		Long:  `A CLI tool for generating weekly operator rotas from line plans and staff plans, and inspecting coverage gaps.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "prod", "Environment name used to prefix log files")

	rootCmd.AddCommand(commands.GenerateRotaCmd(appRef()))
	rootCmd.AddCommand(commands.ViewGapsCmd(appRef()))
	rootCmd.AddCommand(commands.ServeCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp runs so
// command constructors can capture a stable pointer
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database connection established")

	app.Logger.Info("Running database migrations")
	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database ready")

	return nil
}

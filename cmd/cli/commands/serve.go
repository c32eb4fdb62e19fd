package commands

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

	"github.com/rhysmorgan-dev/magor-rota/pkg/api"
)

// ServeCmd creates the serve command, which runs the HTTP trigger surface
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server exposing rota generation and gap endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := api.NewHandler(app.Cfg, app.Database, app.Logger)
			handler.RegisterRoutes()

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", app.Cfg.Server.Port),
				Handler:      handler.Mux,
				ReadTimeout:  time.Duration(app.Cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(app.Cfg.Server.WriteTimeout) * time.Second,
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Starting server", zap.Int("port", app.Cfg.Server.Port))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-quit:
			}

			app.Logger.Info("Shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(app.Cfg.Server.ShutdownTimeout)*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			app.Logger.Info("Server stopped")

			return nil
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/osariemen/comicbay/internal/api"
	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/config"
	"github.com/osariemen/comicbay/internal/logger"
	"github.com/osariemen/comicbay/internal/shared"
	"github.com/osariemen/comicbay/internal/store"
)

func HTTPCommand(ctx context.Context) *cobra.Command {
	var addr int
	var env string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "run the comicbay client daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

			var handler slog.Handler

			switch env {
			case "dev":
				handler = slog.Handler(slog.NewTextHandler(os.Stderr, nil))
			case "prod":
				handler = slog.Handler(slog.NewJSONHandler(os.Stderr, nil))
			default:
				return fmt.Errorf("environment can only be dev or prod")
			}

			baseLogger := slog.New(handler).With(
				slog.String("app", "comicbay"),
				slog.String("runtime", runtime.Version()),
				slog.String("os", runtime.GOOS),
				slog.String("architecture", runtime.GOARCH),
				slog.String("version", "1.0"),
			)

			viper.SetConfigFile("internal/config/.env")
			viper.AutomaticEnv()

			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading in config: %v", err)
			}

			var cfg config.Config

			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("error unmarshalling config: %v", err)
			}

			logger := logger.NewSlogLogger(baseLogger)

			db, err := store.NewPostgresStore(cfg.Db_conn)

			if err != nil {
				return err
			}

			authService := auth.NewPostgresAuth(db.DB, cfg.Jwt_secret, cfg.Resume_token)

			router := chi.NewRouter()
			router.Use(middleware.Recoverer)

			router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok\n"))
			})

			a := api.New(&shared.Server{
				Router: router,
				Logger: logger,
				Store:  db,
				Auth:   authService,
				Config: &cfg,
			})
			a.RegisterRoutes()

			if err := a.Start(ctx); err != nil {
				return err
			}
			defer a.Close()

			httpServer := &http.Server{
				Addr:        fmt.Sprintf("%s:%d", cfg.Host, addr),
				Handler:     router,
				IdleTimeout: 15 * time.Minute,
			}
			errCh := make(chan error, 1)

			logger.Info("server startup", "status", fmt.Sprintf("server starting on port: %d", addr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err

			case <-sig:
				logger.Info("server shutdown", "status", "kill signal received")
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("error shutting down server: %v", err)
				}

				logger.Info("server shutdown", "status", "shutdown complete...")
				return nil
			}
		},
	}

	cmd.Flags().IntVarP(&addr, "addr", "a", 8080, "server address")
	cmd.Flags().StringVarP(&env, "env", "e", "dev", "current working environment")

	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/cache"
	"github.com/clinicops/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicops/clinic-scheduler/internal/db"
	"github.com/clinicops/clinic-scheduler/internal/logging"
	"github.com/clinicops/clinic-scheduler/internal/routes"
	"github.com/clinicops/clinic-scheduler/internal/seed"
	"github.com/clinicops/clinic-scheduler/internal/validators"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic appointment scheduling API",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return root
}

// bootstrap loads config, builds the logger and opens the database.
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logging.New(cfg)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, log, nil, err
	}
	return cfg, log, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert base specialties and the bootstrap admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			return seed.Run(cmd.Context(), db, cfg, log)
		},
	}
}

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}

			if autoMigrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			store, closeStore := referenceStore(cmd.Context(), cfg, log)
			defer closeStore()

			dispatcher := audit.NewDispatcher(audit.New(db), log)
			defer dispatcher.Close()

			if err := validators.Register(); err != nil {
				return err
			}

			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			r := gin.New()
			routes.RegisterRoutes(r, routes.Deps{
				DB:     db,
				Config: cfg,
				Log:    log,
				Cache:  store,
				Audit:  dispatcher,
			})

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			return run(cmd.Context(), srv, log)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "apply migrations before serving")
	return cmd
}

// referenceStore prefers Redis when REDIS_URL is set and falls back to memory.
func referenceStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Store, func()) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryStore(), func() {}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rs, err := cache.NewRedisStore(pingCtx, cfg.RedisURL, "clinic:")
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory reference cache")
		return cache.NewMemoryStore(), func() {}
	}

	log.Info().Msg("reference cache backed by redis")
	return rs, func() { _ = rs.Close() }
}

func run(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

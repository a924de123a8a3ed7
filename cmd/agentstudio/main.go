package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"agentstudio/internal/api"
	"agentstudio/internal/api/admin"
	"agentstudio/internal/api/agents"
	"agentstudio/internal/api/models"
	"agentstudio/internal/api/sessions"
	"agentstudio/internal/api/skills"
	"agentstudio/internal/api/ui"
	"agentstudio/internal/api/workflows"
	"agentstudio/internal/config"
	"agentstudio/internal/database"
	"agentstudio/internal/logger"
	"agentstudio/internal/seed"
	"agentstudio/internal/store"
	"agentstudio/internal/version"
)

// rootCmd runs the server when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "agentstudio",
	Short: "Agent Studio - multi-agent workflow authoring server",
	Long: `Agent Studio serves the REST API and web UI for composing multi-agent
chat workflows: model endpoints, skills, agents and the workflows that
connect them. On startup it migrates the SQLite schema and seeds the
default sample workflows.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.LogLevel)

		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		return database.Migrate(cmd.Context(), db)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("fatal error")
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := seed.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	s := store.New(db)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newHandler(s, db, cfg.AuthToken),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info().Msg("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Str("version", version.Version).Msg("starting agentstudio server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// newHandler wires all routes and the middleware chain.
func newHandler(s *store.Store, db *sql.DB, authToken string) http.Handler {
	mux := http.NewServeMux()

	// Studio API routes
	models.RegisterRoutes(mux, s)
	skills.RegisterRoutes(mux, s)
	agents.RegisterRoutes(mux, s)
	workflows.RegisterRoutes(mux, s)
	sessions.RegisterRoutes(mux, s)

	// Admin API
	admin.RegisterRoutes(mux, db)

	// Web UI
	ui.RegisterRoutes(mux)

	// Catch-all: unknown routes get the standard error envelope.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	return api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(authToken),
		api.JSONContentType(),
		api.Logging(),
	)
}

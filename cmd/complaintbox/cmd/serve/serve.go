package serve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"complaintbox/internal/api/server"
	"complaintbox/internal/api/v1/routes"
	"complaintbox/internal/api/v1/services"
	"complaintbox/internal/app/repository/sqlite"
	"complaintbox/internal/app/transcriber"
	"complaintbox/internal/config"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay service",
	Long: `Run the relay service: accepts audio uploads on /upload, forwards them
to the transcription engine, and serves /register and /login against the
local user store. Stops gracefully on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	users, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer users.Close()

	engine := transcriber.NewGroqTranscriber(cfg.GroqAPIKey)

	container := &routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(engine, cfg.TempDir, logger),
		AuthService:          services.NewAuthService(users, []byte(cfg.JWTSecret), logger),
	}

	read, write, idle := cfg.Timeouts()
	srv := server.NewServer(server.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
		Environment:  cfg.Environment,
	}, container, logger)

	if err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

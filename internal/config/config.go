package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds everything the relay needs from the environment.
type ServerConfig struct {
	Host        string
	Port        string
	Environment string

	// GroqAPIKey authenticates against the transcription engine.
	GroqAPIKey string

	// DBPath is the SQLite file backing the user store.
	DBPath string

	// JWTSecret signs issued credentials.
	JWTSecret string

	// TempDir receives uploaded audio before relay; empty means the
	// system temp dir.
	TempDir string
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{".env", ".env.local", "../.env"}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// LoadServerConfig reads and validates the relay configuration.
// Fail-fast: missing required values are reported immediately rather
// than at first request.
func LoadServerConfig() (*ServerConfig, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Host:        getEnvDefault("HOST", "0.0.0.0"),
		Port:        getEnvDefault("PORT", "3000"),
		Environment: getEnvDefault("ENVIRONMENT", "development"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		DBPath:      getEnvDefault("COMPLAINTBOX_DB", "data/complaintbox.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TempDir:     os.Getenv("UPLOAD_TMP_DIR"),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// Timeouts returns the HTTP server timeouts. No timeout is applied to
// the outbound engine call itself; a hang there hangs the request.
func (c *ServerConfig) Timeouts() (read, write, idle time.Duration) {
	return 30 * time.Second, 5 * time.Minute, 120 * time.Second
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ClientConfig configures the capture/ledger client. Values come from
// an optional YAML file with environment variables taking precedence.
type ClientConfig struct {
	// RelayBaseURL is the client-facing base URL of the relay service.
	RelayBaseURL string `yaml:"relay_base_url"`

	// DataDir holds the local state database.
	DataDir string `yaml:"data_dir"`
}

// DefaultClientConfigPath is where the CLI looks for its config file.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".complaintbox.yaml"
	}
	return filepath.Join(home, ".complaintbox.yaml")
}

// LoadClientConfig reads the YAML config at path (missing file is
// fine) and applies env overrides.
func LoadClientConfig(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{
		RelayBaseURL: "http://localhost:3000",
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("RELAY_BASE_URL"); v != "" {
		cfg.RelayBaseURL = v
	}
	if v := os.Getenv("COMPLAINTBOX_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = filepath.Join(home, ".complaintbox")
	}

	return cfg, nil
}

// StatePath is the bbolt file holding the ledger and session state.
func (c *ClientConfig) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

package app

import (
	"log/slog"
	"os"

	"complaintbox/internal/client/ledger"
	"complaintbox/internal/client/relay"
	"complaintbox/internal/client/session"
	"complaintbox/internal/client/store"
	"complaintbox/internal/config"
)

// App wires the client pieces together for one CLI invocation: config,
// local state store, session, ledger, and relay client. It replaces
// the ambient global store the mobile app used with one explicit
// object handed to commands.
type App struct {
	Config *config.ClientConfig
	State  *session.AppState
	Ledger *ledger.Store
	Relay  *relay.Client
	Logger *slog.Logger

	kv *store.Bolt
}

// Open loads the client configuration and all persisted state.
func Open() (*App, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadClientConfig(config.DefaultClientConfigPath())
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		State:  session.Load(kv, logger),
		Ledger: ledger.NewStore(kv, logger),
		Relay:  relay.NewClient(cfg.RelayBaseURL),
		Logger: logger,
		kv:     kv,
	}, nil
}

// Close releases the local state store.
func (a *App) Close() error {
	return a.kv.Close()
}

// Package commands wires the cobra command surface to the session store,
// the API gateway, and the TUI.
package commands

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/healthpulse/companion/internal/api"
	"github.com/healthpulse/companion/internal/config"
	"github.com/healthpulse/companion/internal/session"
)

// AppVersion is set from main at startup.
var AppVersion = "0.0.0-dev"

// Verbose is bound to the root --verbose flag.
var Verbose bool

// Shared terminal styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

// openStore returns the session store at its default location.
func openStore() *session.Store {
	return session.NewStore(session.DefaultPath())
}

// loadConfig reads the config file, falling back to defaults when it is
// missing or unreadable. A broken config never blocks a command.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		if Verbose {
			log.Printf("[Config] %v (using defaults)", err)
		}
		return &config.Config{HistoryDays: config.DefaultHistoryDays}
	}
	return cfg
}

// backendURL resolves the backend base URL for this invocation.
func backendURL() string {
	return loadConfig().ResolveAPIURL(api.DefaultBaseURL)
}

// newClient builds the API gateway bound to a store.
func newClient(store *session.Store) *api.Client {
	cfg := loadConfig()
	client := api.NewClient(cfg.ResolveAPIURL(api.DefaultBaseURL), store)
	client.SetVerbose(Verbose || cfg.Verbose)
	client.SetClientID(installID())
	return client
}

// requireAuth restores the session or tells the user to log in.
func requireAuth() (*session.Store, *api.Client, error) {
	store := openStore()
	if _, ok := store.Load(); !ok {
		return nil, nil, fmt.Errorf("not logged in. Run: healthpulse login")
	}
	return store, newClient(store), nil
}

// friendly rewrites gateway errors for terminal display. An expired session
// reads as an instruction, not a failure.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrSessionExpired) {
		return fmt.Errorf("session expired. Run: healthpulse login")
	}
	return err
}

// installID returns the stable per-install identifier, creating it on first
// use. It lets the backend tell this device's connections apart.
func installID() string {
	path := filepath.Join(filepath.Dir(session.DefaultPath()), "client_id")
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		return string(data)
	}
	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		_ = os.WriteFile(path, []byte(id), 0600)
	}
	return id
}

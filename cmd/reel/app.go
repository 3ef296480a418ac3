package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/prefs"
	"github.com/mmcdole/reel/internal/state"
)

// app holds the dependencies shared by every command. Each is opened on
// first use so that commands only pay for what they touch.
type app struct {
	configFile string
	ephemeral  bool

	cfg     *config.Config
	logger  *slog.Logger
	prefs   domain.PreferenceStore
	catalog domain.Catalog
	store   *state.Store
}

func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.ephemeral {
		cfg.Storage = config.StorageConfig{Backend: config.StorageBolt}
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting reel", "version", Version)

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) openPrefs() error {
	if a.prefs != nil {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return err
	}

	store, err := prefs.Open(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	a.prefs = store
	return nil
}

func (a *app) openCatalog() error {
	if a.catalog != nil {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return err
	}
	if !a.cfg.IsConfigured() {
		return errors.New("no TMDB credentials configured, run 'reel setup' first")
	}

	client, err := catalog.NewClient(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}
	a.catalog = client
	return nil
}

// openStore wires the state store over the catalog and preferences
func (a *app) openStore(opts ...state.Option) error {
	if a.store != nil {
		return nil
	}
	if err := a.openCatalog(); err != nil {
		return err
	}
	if err := a.openPrefs(); err != nil {
		return err
	}

	opts = append([]state.Option{state.WithLogger(a.logger)}, opts...)
	store, err := state.Open(context.Background(), a.catalog, a.prefs, opts...)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

// openCommandStore opens the store for a one-shot command, skipping the
// startup trending fetch
func (a *app) openCommandStore() error {
	return a.openStore(state.WithoutInitialTrending())
}

// Close stops the store and closes the preference store
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.prefs != nil {
		errs = append(errs, a.prefs.Close())
		a.prefs = nil
	}
	return errors.Join(errs...)
}

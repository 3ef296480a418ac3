package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/state"
	"github.com/mmcdole/reel/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if closeErr := a.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "reel",
		Short: "Browse trending movies, search the catalog and keep favorites",
		Long: `reel is a terminal movie browser backed by TMDB.

Run without arguments to open the interactive browser, or use a
subcommand for scripting:
  reel trending                 # This week's trending movies
  reel search dune --pages 2    # First two result pages
  reel favorites                # Saved favorites
  reel detail 438631            # Full detail for one movie`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is config.yaml in the user config directory)")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep preferences in memory only")

	root.AddCommand(newTrendingCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newDetailCmd(a))
	root.AddCommand(newFavoritesCmd(a))
	root.AddCommand(newThemeCmd(a))
	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newSetupCmd(a))

	return root
}

func runTUI(a *app) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	// Check if configured
	if !a.cfg.IsConfigured() {
		return runSetupFlow(a)
	}

	observer := tui.NewChannelObserver()
	if err := a.openStore(state.WithObserver(observer)); err != nil {
		return err
	}
	details := detail.NewService(a.catalog, detail.DefaultCacheSize, a.logger)

	// Create TUI model
	model := tui.NewModel(a.store, details, observer.Snapshots(), tui.Options{
		ImageBaseURL: a.cfg.Catalog.ImageBaseURL,
		ShowDetails:  a.cfg.UI.ShowOverview,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/search"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved favorites",
		Long: `List, add, remove and filter favorites.

Examples:
  reel favorites                 # List favorites
  reel favorites add 438631      # Add by movie id
  reel favorites remove 438631   # Remove by movie id
  reel favorites filter dnue     # Fuzzy filter, tolerates typos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFavorites(a, cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFavorites(a, cmd)
		},
	})
	cmd.AddCommand(newFavoritesAddCmd(a))
	cmd.AddCommand(newFavoritesRemoveCmd(a))
	cmd.AddCommand(newFavoritesFilterCmd(a))

	return cmd
}

func listFavorites(a *app, cmd *cobra.Command) error {
	if err := a.openCommandStore(); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	out := cmd.OutOrStdout()
	if len(snap.Favorites) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		fmt.Fprintln(out, "Use 'reel favorites add <id>' to add one.")
		return nil
	}
	printItems(out, snap.Favorites, nil)
	fmt.Fprintf(out, "\nTotal: %d favorite(s)\n", len(snap.Favorites))
	return nil
}

func newFavoritesAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Add a movie to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.openCommandStore(); err != nil {
				return err
			}
			if a.store.IsFavorite(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Movie %d is already a favorite.\n", id)
				return nil
			}

			item, err := detail.NewService(a.catalog, 1, a.logger).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			// Favorites keep the list payload only
			item.Detail = nil
			if err := a.store.AddFavorite(item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to favorites.\n", item.Title)
			return nil
		},
	}
}

func newFavoritesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.openCommandStore(); err != nil {
				return err
			}
			if !a.store.IsFavorite(id) {
				return fmt.Errorf("movie %d is not a favorite", id)
			}
			if err := a.store.RemoveFavorite(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d from favorites.\n", id)
			return nil
		},
	}
}

func newFavoritesFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <text>",
		Short: "Fuzzy filter favorites by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openCommandStore(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results := search.Filter(query, a.store.Snapshot().Favorites)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No favorites match %q.\n", query)
				return nil
			}
			printMatches(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

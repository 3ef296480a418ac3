package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/detail"
	"github.com/mmcdole/reel/internal/domain"
)

func newTrendingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "List this week's trending movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openCommandStore(); err != nil {
				return err
			}
			if err := a.store.RefreshTrending(cmd.Context()); err != nil {
				return err
			}

			snap := a.store.Snapshot()
			if len(snap.Trending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trending movies.")
				return nil
			}
			printItems(cmd.OutOrStdout(), snap.Trending, snap.IsFavorite)
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long: `Search the catalog by title and print the results.

Examples:
  reel search alien              # First page
  reel search alien --pages 3    # First three pages`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			if err := a.openCommandStore(); err != nil {
				return err
			}

			ctx := cmd.Context()
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return domain.ErrEmptyQuery
			}
			if err := a.store.Search(ctx, query); err != nil {
				return err
			}
			for i := 1; i < pages && a.store.Snapshot().HasMorePages(); i++ {
				if err := a.store.LoadNextPage(ctx); err != nil {
					return err
				}
			}

			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()
			if len(snap.SearchResults) == 0 {
				fmt.Fprintf(out, "No results for %q.\n", snap.SearchQuery)
				return nil
			}
			printItems(out, snap.SearchResults, snap.IsFavorite)
			fmt.Fprintf(out, "\nPage %d of %d, %d result(s) shown\n", snap.Page, snap.TotalPages, len(snap.SearchResults))
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "Number of result pages to fetch")
	return cmd
}

func newDetailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show genres, cast and trailer for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.openCatalog(); err != nil {
				return err
			}

			svc := detail.NewService(a.catalog, 1, a.logger)
			item, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), item, catalog.PosterURL(a.cfg.Catalog.ImageBaseURL, item))
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %q", s)
	}
	return id, nil
}

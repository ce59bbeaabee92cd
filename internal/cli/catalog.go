package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/docs"
)

func newCatalogCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and import the legacy gm_games catalog",
	}
	cmd.AddCommand(newCatalogDumpCmd(open), newCatalogImportCmd(open))
	return cmd
}

func newCatalogDumpCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every catalog game and summary statistics",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			ctx := cmd.Context()
			n, err := s.store.Catalog().Count(ctx)
			if err != nil {
				return fmt.Errorf("count catalog games: %w", err)
			}
			list, err := s.store.Catalog().List(ctx, 0, n)
			if err != nil {
				return fmt.Errorf("list catalog games: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, g := range list {
				printCatalogGame(out, i+1, g)
			}
			printSummary(out, domain.SummarizeCatalog(list))
			return nil
		}),
	}
}

func printCatalogGame(out io.Writer, n int, g *domain.CatalogGame) {
	fmt.Fprintf(out, "[%d] %s (ID: %s)\n", n, g.Name(), g.ID)
	fmt.Fprintf(out, "    game_id=%d category=%d type=%s size=%dx%d\n", g.ExternalID, g.CategoryID, g.Kind, g.Width, g.Height)
	fmt.Fprintf(out, "    plays=%d rating=%.2f published=%d featured=%d mobile=%d\n",
		g.PlayCount, g.Rating, g.PublishedFlag, g.FeaturedFlag, g.MobileFriendlyFlag)
	if g.ImageURL != "" {
		fmt.Fprintf(out, "    image: %s\n", g.ImageURL)
	}
	if g.FileURL != "" {
		fmt.Fprintf(out, "    file:  %s\n", g.FileURL)
	}
}

func printSummary(out io.Writer, s domain.CatalogSummary) {
	fmt.Fprintln(out, "Summary")
	fmt.Fprintf(out, "  Total:           %d\n", s.Total)
	fmt.Fprintf(out, "  Published:       %d\n", s.Published)
	fmt.Fprintf(out, "  Featured:        %d\n", s.Featured)
	fmt.Fprintf(out, "  Mobile friendly: %d\n", s.MobileFriendly)
	fmt.Fprintf(out, "  Total plays:     %d\n", s.TotalPlays)
	fmt.Fprintf(out, "  Average rating:  %.2f\n", s.AverageRating)
	if len(s.Categories) == 0 {
		return
	}
	fmt.Fprintln(out, "  Categories:")
	for _, c := range s.Categories {
		fmt.Fprintf(out, "    %d: %d\n", c.CategoryID, c.Count)
	}
}

func newCatalogImportCmd(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk insert catalog games from a JSON array of gm_games documents",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			list, err := readCatalogFile(file)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalog games in file")
				return nil
			}
			if err := s.store.Catalog().InsertMany(cmd.Context(), list); err != nil {
				return fmt.Errorf("insert catalog games: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d catalog games\n", len(list))
			return nil
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readCatalogFile(path string) ([]*domain.CatalogGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw []docs.Catalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	out := make([]*domain.CatalogGame, 0, len(raw))
	for i := range raw {
		g := raw[i].Domain()
		if raw[i].ID.IsZero() {
			g.ID = ""
		}
		out = append(out, g)
	}
	return out, nil
}

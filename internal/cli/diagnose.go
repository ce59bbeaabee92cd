package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naitik09090/backend-games/internal/seed"
)

func newDiagnoseCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Show store connectivity, collections and local games",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			info, err := s.store.Describe(ctx)
			if err != nil {
				return fmt.Errorf("describe store: %w", err)
			}
			fmt.Fprintf(out, "Backend:     %s\n", s.store.Backend())
			fmt.Fprintf(out, "Target:      %s\n", info.Target)
			fmt.Fprintf(out, "Database:    %s\n", info.Database)
			fmt.Fprintf(out, "Collections: %s\n", strings.Join(info.Collections, ", "))

			if err := s.store.Ping(ctx); err != nil {
				fmt.Fprintf(out, "Connection:  FAILED (%v)\n", err)
				return err
			}
			fmt.Fprintln(out, "Connection:  ok")

			local, err := s.store.Local().Count(ctx)
			if err != nil {
				return fmt.Errorf("count local games: %w", err)
			}
			catalog, err := s.store.Catalog().Count(ctx)
			if err != nil {
				return fmt.Errorf("count catalog games: %w", err)
			}
			fmt.Fprintf(out, "Counts:      local=%d catalog=%d\n", local, catalog)

			lines, err := seed.NewSeeder(s.store.Local(), s.log).Check(ctx)
			if err != nil {
				return err
			}
			printGames(cmd, lines)
			return nil
		}),
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naitik09090/backend-games/internal/seed"
)

func seedFile(flag string, s *session) string {
	if flag != "" {
		return flag
	}
	return s.cfg.SeedFile
}

func newSeedCmd(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace every local game with the seed set",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			_, list, err := seed.LoadGames(seedFile(file, s))
			if err != nil {
				return err
			}
			deleted, inserted, err := seed.NewSeeder(s.store.Local(), s.log).Seed(cmd.Context(), list)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted %d existing games\n", deleted)
			fmt.Fprintf(out, "Inserted %d games\n", inserted)
			return nil
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML seed file (default: embedded set)")
	return cmd
}

func newSeedIfEmptyCmd(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-if-empty",
		Short: "Insert the seed set only when there are no local games",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			_, list, err := seed.LoadGames(seedFile(file, s))
			if err != nil {
				return err
			}
			n, err := seed.NewSeeder(s.store.Local(), s.log).SeedIfEmpty(cmd.Context(), list)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Local games already present, nothing inserted")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d games\n", n)
			return nil
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML seed file (default: embedded set)")
	return cmd
}

func newClearSeedCmd(open opener) *cobra.Command {
	var (
		file  string
		names []string
	)
	cmd := &cobra.Command{
		Use:   "clear-seed",
		Short: "Delete local games by name (default: the seed set names)",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			if len(names) == 0 {
				set, _, err := seed.LoadGames(seedFile(file, s))
				if err != nil {
					return err
				}
				names = set.Names()
			}
			n, err := seed.NewSeeder(s.store.Local(), s.log).ClearSeed(cmd.Context(), names)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d games\n", n)
			return nil
		}),
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML seed file whose names are deleted")
	cmd.Flags().StringSliceVar(&names, "name", nil, "game name to delete (repeatable)")
	return cmd
}

func newCheckCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List local games",
		Args:  cobra.NoArgs,
		RunE: withSession(open, func(cmd *cobra.Command, s *session, _ []string) error {
			lines, err := seed.NewSeeder(s.store.Local(), s.log).Check(cmd.Context())
			if err != nil {
				return err
			}
			printGames(cmd, lines)
			return nil
		}),
	}
}

func printGames(cmd *cobra.Command, lines []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Local games: %d\n", len(lines))
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}

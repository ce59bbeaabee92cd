// Package cli implements gamesctl, the maintenance CLI for the record store.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/naitik09090/backend-games/internal/config"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/store"
)

// session is what a command needs to talk to the store.
type session struct {
	cfg   *config.Config
	log   logger.Logger
	store domain.Store
}

func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Close(ctx); err != nil {
		s.log.Warn("failed to close store", logger.Error(err))
	}
}

type opener func() (*session, error)

func openFromEnv() (*session, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	st, err := store.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, store: st}, nil
}

// New returns the `gamesctl` root command. Store settings come from the same
// environment as the server.
func New() *cobra.Command {
	return newRoot(openFromEnv)
}

func newRoot(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "gamesctl",
		Short:         "Maintenance commands for the games record store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSeedCmd(open),
		newSeedIfEmptyCmd(open),
		newClearSeedCmd(open),
		newCheckCmd(open),
		newDiagnoseCmd(open),
		newCatalogCmd(open),
		newVersionCmd(),
	)
	return root
}

// withSession opens the store for the duration of run.
func withSession(open opener, run func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := open()
		if err != nil {
			return err
		}
		defer s.close()
		return run(cmd, s, args)
	}
}

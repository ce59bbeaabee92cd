// Package seed loads sample local games from YAML and writes them to the
// local store.
package seed

import (
	"context"
	"fmt"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
	"github.com/naitik09090/backend-games/internal/logger"
)

// Seeder writes seed sets into a local game store.
type Seeder struct {
	store  domain.LocalGameStore
	logger logger.Logger
}

func NewSeeder(store domain.LocalGameStore, log logger.Logger) *Seeder {
	return &Seeder{store: store, logger: log}
}

// Seed replaces every local game with the given set.
func (s *Seeder) Seed(ctx context.Context, set []*domain.LocalGame) (deleted, inserted int, err error) {
	deleted, err = s.store.DeleteAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("clear local games: %w", err)
	}
	s.logger.Info("cleared existing games", logger.Int("deleted", deleted))

	if err := s.store.InsertMany(ctx, set); err != nil {
		return deleted, 0, fmt.Errorf("insert seed games: %w", err)
	}
	s.logger.Info("sample games added", logger.Int("inserted", len(set)))
	return deleted, len(set), nil
}

// SeedIfEmpty inserts the set only when the local store holds no games.
// It returns the number of games inserted.
func (s *Seeder) SeedIfEmpty(ctx context.Context, set []*domain.LocalGame) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count local games: %w", err)
	}
	if n > 0 {
		s.logger.Info("local games already present, skipping seed", logger.Int("count", n))
		return 0, nil
	}

	if err := s.store.InsertMany(ctx, set); err != nil {
		return 0, fmt.Errorf("insert seed games: %w", err)
	}
	s.logger.Info("seeded empty store", logger.Int("inserted", len(set)))
	return len(set), nil
}

// ClearSeed removes local games whose name is in names.
func (s *Seeder) ClearSeed(ctx context.Context, names []string) (int, error) {
	n, err := s.store.DeleteByNames(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("delete seed games: %w", err)
	}
	s.logger.Info("removed seed games", logger.Int("deleted", n), logger.Strings("names", names))
	return n, nil
}

// Check returns every local game rendered for display, newest first.
func (s *Seeder) Check(ctx context.Context) ([]string, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count local games: %w", err)
	}
	all, err := s.store.List(ctx, 0, n)
	if err != nil {
		return nil, fmt.Errorf("list local games: %w", err)
	}
	lines := make([]string, len(all))
	for i, g := range all {
		lines[i] = games.String(g)
	}
	return lines, nil
}

// LoadGames reads the seed file at path (or the embedded default) and maps it.
func LoadGames(path string) (Set, []*domain.LocalGame, error) {
	set, err := NewLoader(path).Load()
	if err != nil {
		return Set{}, nil, err
	}
	list, err := NewMapper().MapGames(set)
	if err != nil {
		return Set{}, nil, err
	}
	return set, list, nil
}

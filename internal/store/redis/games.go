package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/docs"
)

// ─────────────────────────────────────────────────────────────────
// Local games
// ─────────────────────────────────────────────────────────────────

type localStore struct{ c collection }

func localEntry(g *domain.LocalGame) (entry, error) {
	d, err := docs.FromLocal(g)
	if err != nil {
		return entry{}, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return entry{}, fmt.Errorf("failed to marshal game: %w", err)
	}
	return entry{id: d.ID.Hex(), score: float64(d.CreatedAt.UnixMilli()), data: data}, nil
}

func decodeLocal(data []byte) (*domain.LocalGame, error) {
	var d docs.Local
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return d.Domain(), nil
}

func decodeLocals(raw [][]byte) ([]*domain.LocalGame, error) {
	out := make([]*domain.LocalGame, 0, len(raw))
	for _, data := range raw {
		g, err := decodeLocal(data)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (l localStore) Insert(ctx context.Context, g *domain.LocalGame) error {
	return l.InsertMany(ctx, []*domain.LocalGame{g})
}

func (l localStore) InsertMany(ctx context.Context, games []*domain.LocalGame) error {
	now := time.Now().UTC()
	entries := make([]entry, 0, len(games))
	for _, g := range games {
		if g.ID == "" {
			g.ID = domain.NewID()
		}
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		if g.UpdatedAt.IsZero() {
			g.UpdatedAt = g.CreatedAt
		}
		e, err := localEntry(g)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	return l.c.insert(ctx, entries)
}

func (l localStore) Get(ctx context.Context, id string) (*domain.LocalGame, error) {
	data, err := l.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeLocal(data)
}

func (l localStore) List(ctx context.Context, skip, limit int) ([]*domain.LocalGame, error) {
	raw, err := l.c.list(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return decodeLocals(raw)
}

func (l localStore) Count(ctx context.Context) (int, error) { return l.c.count(ctx) }

func (l localStore) Update(ctx context.Context, g *domain.LocalGame) error {
	e, err := localEntry(g)
	if err != nil {
		return err
	}
	return l.c.replace(ctx, e)
}

func (l localStore) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	n, err := l.c.remove(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (l localStore) DeleteByNames(ctx context.Context, names []string) (int, error) {
	raw, err := l.c.all(ctx)
	if err != nil {
		return 0, err
	}
	games, err := decodeLocals(raw)
	if err != nil {
		return 0, err
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	var ids []string
	for _, g := range games {
		if _, ok := set[g.Name]; ok {
			ids = append(ids, g.ID)
		}
	}
	return l.c.remove(ctx, ids...)
}

func (l localStore) DeleteAll(ctx context.Context) (int, error) {
	raw, err := l.c.all(ctx)
	if err != nil {
		return 0, err
	}
	games, err := decodeLocals(raw)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return l.c.remove(ctx, ids...)
}

// ─────────────────────────────────────────────────────────────────
// Catalog games
// ─────────────────────────────────────────────────────────────────

type catalogStore struct{ c collection }

func catalogEntry(g *domain.CatalogGame) (entry, error) {
	d, err := docs.FromCatalog(g)
	if err != nil {
		return entry{}, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return entry{}, fmt.Errorf("failed to marshal catalog game: %w", err)
	}
	return entry{id: d.ID.Hex(), score: 0, data: data}, nil
}

func decodeCatalog(data []byte) (*domain.CatalogGame, error) {
	var d docs.Catalog
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog game: %w", err)
	}
	return d.Domain(), nil
}

func (c catalogStore) Insert(ctx context.Context, g *domain.CatalogGame) error {
	return c.InsertMany(ctx, []*domain.CatalogGame{g})
}

func (c catalogStore) InsertMany(ctx context.Context, games []*domain.CatalogGame) error {
	entries := make([]entry, 0, len(games))
	for _, g := range games {
		if g.ID == "" {
			g.ID = domain.NewID()
		}
		e, err := catalogEntry(g)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	return c.c.insert(ctx, entries)
}

func (c catalogStore) Get(ctx context.Context, id string) (*domain.CatalogGame, error) {
	data, err := c.c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeCatalog(data)
}

func (c catalogStore) List(ctx context.Context, skip, limit int) ([]*domain.CatalogGame, error) {
	raw, err := c.c.list(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CatalogGame, 0, len(raw))
	for _, data := range raw {
		g, err := decodeCatalog(data)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (c catalogStore) Count(ctx context.Context) (int, error) { return c.c.count(ctx) }

func (c catalogStore) Update(ctx context.Context, g *domain.CatalogGame) error {
	e, err := catalogEntry(g)
	if err != nil {
		return err
	}
	return c.c.replace(ctx, e)
}

func (c catalogStore) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	n, err := c.c.remove(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

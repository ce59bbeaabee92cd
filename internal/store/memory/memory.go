// Package memory is an in-process record store. It backs tests, local
// development and the CLI's dry runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
)

// Store keeps every collection in maps guarded by one RWMutex.
type Store struct {
	mu      sync.RWMutex
	local   map[string]*domain.LocalGame   // ID -> game
	catalog map[string]*domain.CatalogGame // ID -> game
	users   map[string]*domain.User        // username -> user

	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		local:   make(map[string]*domain.LocalGame),
		catalog: make(map[string]*domain.CatalogGame),
		users:   make(map[string]*domain.User),
	}
}

func (s *Store) Local() domain.LocalGameStore     { return localStore{s} }
func (s *Store) Catalog() domain.CatalogGameStore { return catalogStore{s} }
func (s *Store) Users() domain.UserStore          { return userStore{s} }

func (s *Store) Backend() string { return "memory" }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Describe(ctx context.Context) (domain.StoreInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.StoreInfo{
		Backend:     "memory",
		Target:      "process",
		Collections: []string{"games", "gm_games", "users"},
		Connected:   !s.closed,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Local games
// ─────────────────────────────────────────────────────────────────

type localStore struct{ s *Store }

func (l localStore) Insert(ctx context.Context, g *domain.LocalGame) error {
	return l.InsertMany(ctx, []*domain.LocalGame{g})
}

func (l localStore) InsertMany(ctx context.Context, games []*domain.LocalGame) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	for _, g := range games {
		if g.ID == "" {
			g.ID = domain.NewID()
		}
	}
	if err := checkNew(l.s.local, games, func(g *domain.LocalGame) string { return g.ID }); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, g := range games {
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		if g.UpdatedAt.IsZero() {
			g.UpdatedAt = g.CreatedAt
		}
		l.s.local[g.ID] = cloneLocal(g)
	}
	return nil
}

func (l localStore) Get(ctx context.Context, id string) (*domain.LocalGame, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	g, ok := l.s.local[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneLocal(g), nil
}

func (l localStore) List(ctx context.Context, skip, limit int) ([]*domain.LocalGame, error) {
	l.s.mu.RLock()
	all := make([]*domain.LocalGame, 0, len(l.s.local))
	for _, g := range l.s.local {
		all = append(all, g)
	}
	l.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	page := window(all, skip, limit)
	out := make([]*domain.LocalGame, len(page))
	for i, g := range page {
		out[i] = cloneLocal(g)
	}
	return out, nil
}

func (l localStore) Count(ctx context.Context) (int, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return len(l.s.local), nil
}

func (l localStore) Update(ctx context.Context, g *domain.LocalGame) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if _, ok := l.s.local[g.ID]; !ok {
		return domain.ErrNotFound
	}
	l.s.local[g.ID] = cloneLocal(g)
	return nil
}

func (l localStore) Delete(ctx context.Context, id string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if _, ok := l.s.local[id]; !ok {
		return domain.ErrNotFound
	}
	delete(l.s.local, id)
	return nil
}

func (l localStore) DeleteByNames(ctx context.Context, names []string) (int, error) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	n := 0
	for id, g := range l.s.local {
		if _, ok := set[g.Name]; ok {
			delete(l.s.local, id)
			n++
		}
	}
	return n, nil
}

func (l localStore) DeleteAll(ctx context.Context) (int, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	n := len(l.s.local)
	l.s.local = make(map[string]*domain.LocalGame)
	return n, nil
}

// ─────────────────────────────────────────────────────────────────
// Catalog games
// ─────────────────────────────────────────────────────────────────

type catalogStore struct{ s *Store }

func (c catalogStore) Insert(ctx context.Context, g *domain.CatalogGame) error {
	return c.InsertMany(ctx, []*domain.CatalogGame{g})
}

func (c catalogStore) InsertMany(ctx context.Context, games []*domain.CatalogGame) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for _, g := range games {
		if g.ID == "" {
			g.ID = domain.NewID()
		}
	}
	if err := checkNew(c.s.catalog, games, func(g *domain.CatalogGame) string { return g.ID }); err != nil {
		return err
	}
	for _, g := range games {
		c.s.catalog[g.ID] = cloneCatalog(g)
	}
	return nil
}

func (c catalogStore) Get(ctx context.Context, id string) (*domain.CatalogGame, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	g, ok := c.s.catalog[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCatalog(g), nil
}

func (c catalogStore) List(ctx context.Context, skip, limit int) ([]*domain.CatalogGame, error) {
	c.s.mu.RLock()
	all := make([]*domain.CatalogGame, 0, len(c.s.catalog))
	for _, g := range c.s.catalog {
		all = append(all, g)
	}
	c.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	page := window(all, skip, limit)
	out := make([]*domain.CatalogGame, len(page))
	for i, g := range page {
		out[i] = cloneCatalog(g)
	}
	return out, nil
}

func (c catalogStore) Count(ctx context.Context) (int, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return len(c.s.catalog), nil
}

func (c catalogStore) Update(ctx context.Context, g *domain.CatalogGame) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.catalog[g.ID]; !ok {
		return domain.ErrNotFound
	}
	c.s.catalog[g.ID] = cloneCatalog(g)
	return nil
}

func (c catalogStore) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.catalog[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.s.catalog, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────

type userStore struct{ s *Store }

func (u userStore) Insert(ctx context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	key := strings.TrimSpace(user.Username)
	if _, ok := u.s.users[key]; ok {
		return domain.ErrDuplicate
	}
	if user.ID == "" {
		user.ID = domain.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	u.s.users[key] = &cp
	return nil
}

func (u userStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

// ─────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────

// checkNew rejects a batch holding an existing ID or the same ID twice, so a
// failed InsertMany writes nothing.
func checkNew[T any](existing map[string]T, batch []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(batch))
	for _, g := range batch {
		k := id(g)
		if _, ok := existing[k]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := seen[k]; ok {
			return domain.ErrDuplicate
		}
		seen[k] = struct{}{}
	}
	return nil
}

func window[T any](all []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(all) || limit <= 0 {
		return nil
	}
	end := min(len(all), skip+limit)
	return all[skip:end]
}

func cloneLocal(g *domain.LocalGame) *domain.LocalGame {
	cp := *g
	if g.EmbedLinks != nil {
		cp.EmbedLinks = append([]string(nil), g.EmbedLinks...)
	}
	return &cp
}

func cloneCatalog(g *domain.CatalogGame) *domain.CatalogGame {
	cp := *g
	if g.CreatedAt != nil {
		t := *g.CreatedAt
		cp.CreatedAt = &t
	}
	return &cp
}

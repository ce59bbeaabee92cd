package domain

import "context"

// LocalGameStore persists curated games.
//
// List returns records ordered by CreatedAt descending, then ID descending.
// Get, Update and Delete return ErrNotFound for absent or malformed IDs.
type LocalGameStore interface {
	// Insert assigns ID and CreatedAt unless already set.
	Insert(ctx context.Context, g *LocalGame) error
	InsertMany(ctx context.Context, games []*LocalGame) error
	Get(ctx context.Context, id string) (*LocalGame, error)
	List(ctx context.Context, skip, limit int) ([]*LocalGame, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, g *LocalGame) error
	Delete(ctx context.Context, id string) error
	DeleteByNames(ctx context.Context, names []string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}

// CatalogGameStore persists imported catalog games.
//
// List returns records ordered by ID descending, which is creation order
// because IDs are time-ordered.
type CatalogGameStore interface {
	// Insert assigns ID unless already set.
	Insert(ctx context.Context, g *CatalogGame) error
	InsertMany(ctx context.Context, games []*CatalogGame) error
	Get(ctx context.Context, id string) (*CatalogGame, error)
	List(ctx context.Context, skip, limit int) ([]*CatalogGame, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, g *CatalogGame) error
	Delete(ctx context.Context, id string) error
}

// UserStore persists credential records.
type UserStore interface {
	// Insert returns ErrDuplicate when the username is taken.
	Insert(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// StoreInfo describes a backend for diagnostics.
type StoreInfo struct {
	Backend     string
	Target      string // connection target, credentials redacted
	Database    string
	Collections []string
	Connected   bool
}

// Store is the Record Store: one handle per process, shared by all requests.
type Store interface {
	Local() LocalGameStore
	Catalog() CatalogGameStore
	Users() UserStore

	Backend() string
	Ping(ctx context.Context) error
	Describe(ctx context.Context) (StoreInfo, error)
	Close(ctx context.Context) error
}

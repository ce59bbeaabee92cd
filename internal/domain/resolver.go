package domain

import (
	"context"
	"errors"
)

// Resolver looks a single game up across both stores.
type Resolver struct {
	local   LocalGameStore
	catalog CatalogGameStore
}

// NewResolver builds a Resolver over the two stores.
func NewResolver(local LocalGameStore, catalog CatalogGameStore) *Resolver {
	return &Resolver{local: local, catalog: catalog}
}

// Resolve returns the local game with the given id, falling back to the
// catalog. Catalog hits carry description and instructions.
// Malformed identifiers resolve to ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, id string) (View, error) {
	id = CleanID(id)
	if !ValidID(id) {
		return View{}, ErrNotFound
	}

	local, err := r.local.Get(ctx, id)
	switch {
	case err == nil:
		return NormalizeLocal(local), nil
	case !errors.Is(err, ErrNotFound):
		return View{}, storeErr("get local game", err)
	}

	catalog, err := r.catalog.Get(ctx, id)
	if err != nil {
		return View{}, storeErr("get catalog game", err)
	}
	return NormalizeCatalogDetail(catalog), nil
}

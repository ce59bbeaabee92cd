package domain

import "time"

// Normalize maps either record kind onto the unified view. It is the only
// conversion point between the two variants.
func Normalize(r Record) View {
	switch r.Source {
	case SourceCatalog:
		if r.Catalog != nil {
			return NormalizeCatalog(r.Catalog)
		}
	case SourceLocal:
		if r.Local != nil {
			return NormalizeLocal(r.Local)
		}
	}
	return View{}
}

// NormalizeLocal is the identity mapping plus the source tag.
func NormalizeLocal(g *LocalGame) View {
	links := g.EmbedLinks
	if links == nil {
		links = []string{}
	}
	return View{
		ID:         g.ID,
		Name:       g.Name,
		Logo:       g.Logo,
		URL:        g.URL,
		EmbedLinks: links,
		Active:     g.Active,
		CreatedAt:  g.CreatedAt,
		Source:     SourceLocal,
	}
}

// NormalizeCatalog renames and defaults catalog fields into the view shape.
func NormalizeCatalog(g *CatalogGame) View {
	links := []string{}
	if g.FileURL != "" {
		links = []string{g.FileURL}
	}
	return View{
		ID:         g.ID,
		Name:       g.Name(),
		Logo:       ParseLogo(g.ImageURL),
		URL:        g.FileURL,
		EmbedLinks: links,
		Active:     true,
		CreatedAt:  CatalogCreatedAt(g),
		Source:     SourceCatalog,
	}
}

// NormalizeCatalogDetail is NormalizeCatalog plus the long-form text fields.
func NormalizeCatalogDetail(g *CatalogGame) View {
	v := NormalizeCatalog(g)
	v.Description = g.Description
	v.Instructions = g.Instructions
	return v
}

// CatalogCreatedAt returns the stored creation time when present, otherwise
// the time embedded in the record's ID. Both are deterministic and follow
// the store's insertion order.
func CatalogCreatedAt(g *CatalogGame) time.Time {
	if g.CreatedAt != nil && !g.CreatedAt.IsZero() {
		return *g.CreatedAt
	}
	t, _ := IDTime(g.ID)
	return t
}

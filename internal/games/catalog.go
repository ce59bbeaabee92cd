package games

import (
	"context"
	"strings"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/validation"
)

// CatalogInput is the legacy create/update payload for catalog games.
// URL falls back to the first embed link when empty.
type CatalogInput struct {
	Name       string      `json:"gameName" validate:"omitempty,max=200"`
	Logo       domain.Logo `json:"gameLogo"`
	URL        string      `json:"gameUrl" validate:"omitempty,max=2048"`
	EmbedLinks []string    `json:"iframs"`
}

func (in CatalogInput) fileURL() string {
	if u := strings.TrimSpace(in.URL); u != "" {
		return u
	}
	if links := CleanLinks(in.EmbedLinks); len(links) > 0 {
		return links[0]
	}
	return ""
}

// Catalog serves the legacy catalog CRUD surface.
type Catalog struct {
	store  domain.CatalogGameStore
	logger logger.Logger
	now    func() time.Time
}

// NewCatalog builds a Catalog service.
func NewCatalog(store domain.CatalogGameStore, log logger.Logger) *Catalog {
	return &Catalog{store: store, logger: log, now: time.Now}
}

// List returns raw catalog records. Pagination applies only when both
// page and limit are positive; otherwise every record is returned.
func (c *Catalog) List(ctx context.Context, page, limit int) ([]*domain.CatalogGame, error) {
	skip, take := 0, 0
	if page > 0 && limit > 0 {
		skip, take = (page-1)*limit, limit
	} else {
		total, err := c.store.Count(ctx)
		if err != nil {
			return nil, &domain.StoreError{Op: "count catalog games", Err: err}
		}
		take = total
	}
	if take == 0 {
		return []*domain.CatalogGame{}, nil
	}
	out, err := c.store.List(ctx, skip, take)
	if err != nil {
		return nil, &domain.StoreError{Op: "list catalog games", Err: err}
	}
	return out, nil
}

// Get returns one raw catalog record.
func (c *Catalog) Get(ctx context.Context, id string) (*domain.CatalogGame, error) {
	g, err := c.store.Get(ctx, domain.CleanID(id))
	if err != nil {
		return nil, wrap("get catalog game", err)
	}
	return g, nil
}

// Create inserts a published catalog game.
func (c *Catalog) Create(ctx context.Context, in CatalogInput) (*domain.CatalogGame, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.Invalid("gameName", "is required")
	}

	now := c.now().UTC()
	g := &domain.CatalogGame{
		DisplayName:         in.Name,
		RawName:             in.Name,
		ImageURL:            in.Logo.Value,
		FileURL:             in.fileURL(),
		PublishedFlag:       1,
		AddedAtEpochSeconds: now.Unix(),
		CreatedAt:           &now,
	}
	if err := c.store.Insert(ctx, g); err != nil {
		return nil, &domain.StoreError{Op: "insert catalog game", Err: err}
	}
	c.logger.Info("catalog game created",
		logger.String("id", g.ID),
		logger.String("name", g.Name()))
	return g, nil
}

// Update applies the non-empty fields of in.
func (c *Catalog) Update(ctx context.Context, id string, in CatalogInput) (*domain.CatalogGame, error) {
	g, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if in.Name != "" {
		g.DisplayName = in.Name
		g.RawName = in.Name
	}
	if u := in.fileURL(); u != "" {
		g.FileURL = u
	}
	if !in.Logo.IsZero() {
		g.ImageURL = in.Logo.Value
	}
	if err := c.store.Update(ctx, g); err != nil {
		return nil, wrap("update catalog game", err)
	}
	return g, nil
}

// Delete removes a catalog game.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	id = domain.CleanID(id)
	if err := c.store.Delete(ctx, id); err != nil {
		return wrap("delete catalog game", err)
	}
	c.logger.Info("catalog game deleted", logger.String("id", id))
	return nil
}

// Package games implements the mutation side of the local game collection
// and the legacy catalog surface.
package games

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/validation"
)

// CreateInput is a new local game as submitted by a client.
type CreateInput struct {
	Name       string      `json:"gameName" validate:"required,max=200"`
	Logo       domain.Logo `json:"gameLogo" validate:"required"`
	URL        string      `json:"gameUrl" validate:"omitempty,max=2048"`
	EmbedLinks []string    `json:"iframs" validate:"dive,max=2048"`
}

// UpdateInput is a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name       *string      `json:"gameName" validate:"omitempty,max=200"`
	Logo       *domain.Logo `json:"gameLogo"`
	URL        *string      `json:"gameUrl" validate:"omitempty,max=2048"`
	EmbedLinks []string     `json:"iframs" validate:"omitempty,dive,max=2048"`
}

// Service owns create/update/toggle/delete of local games.
type Service struct {
	store  domain.LocalGameStore
	logger logger.Logger
	now    func() time.Time
}

// NewService builds a Service.
func NewService(store domain.LocalGameStore, log logger.Logger) *Service {
	return &Service{store: store, logger: log, now: time.Now}
}

// Create validates and inserts a local game.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.LocalGame, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	in.EmbedLinks = CleanLinks(in.EmbedLinks)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	game := &domain.LocalGame{
		Name:       in.Name,
		Logo:       in.Logo,
		URL:        in.URL,
		EmbedLinks: in.EmbedLinks,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Insert(ctx, game); err != nil {
		return nil, &domain.StoreError{Op: "insert local game", Err: err}
	}

	s.logger.Info("local game created",
		logger.String("id", game.ID),
		logger.String("name", game.Name),
		logger.String("logo_kind", game.Logo.Kind.String()))
	return game, nil
}

// Update applies the non-nil fields of in to the game with the given id.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.LocalGame, error) {
	game, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.URL != nil {
		url := strings.TrimSpace(*in.URL)
		in.URL = &url
	}
	if in.EmbedLinks != nil {
		in.EmbedLinks = CleanLinks(in.EmbedLinks)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// Empty values are treated as "not supplied", as multipart forms send them.
	if in.Name != nil && *in.Name != "" {
		game.Name = *in.Name
	}
	if in.URL != nil && *in.URL != "" {
		game.URL = *in.URL
	}
	if in.Logo != nil && !in.Logo.IsZero() {
		game.Logo = *in.Logo
	}
	if in.EmbedLinks != nil {
		game.EmbedLinks = in.EmbedLinks
	}
	game.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, game); err != nil {
		return nil, wrap("update local game", err)
	}
	return game, nil
}

// ToggleActive flips the active flag and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	game, err := s.get(ctx, id)
	if err != nil {
		return false, err
	}
	game.Active = !game.Active
	game.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, game); err != nil {
		return false, wrap("update local game", err)
	}

	s.logger.Info("local game status toggled",
		logger.String("id", game.ID),
		logger.Bool("active", game.Active))
	return game.Active, nil
}

// Delete removes a local game.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = domain.CleanID(id)
	if err := s.store.Delete(ctx, id); err != nil {
		return wrap("delete local game", err)
	}
	s.logger.Info("local game deleted", logger.String("id", id))
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*domain.LocalGame, error) {
	game, err := s.store.Get(ctx, domain.CleanID(id))
	if err != nil {
		return nil, wrap("get local game", err)
	}
	return game, nil
}

// wrap passes ErrNotFound through and turns everything else into a StoreError.
func wrap(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return &domain.StoreError{Op: op, Err: err}
}

// ParseLinks splits a comma-separated link list, trimming each entry and
// dropping empty ones. Order is preserved.
func ParseLinks(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return CleanLinks(strings.Split(s, ","))
}

// CleanLinks trims each link and drops empty entries.
func CleanLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// String renders a game for CLI listings.
func String(g *domain.LocalGame) string {
	return fmt.Sprintf("- %s (ID: %s)", g.Name, g.ID)
}

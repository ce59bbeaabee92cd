package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
)

// Mapper converts a seed set to local games
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new seed mapper
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// MapGames converts a Set to domain.LocalGame slice. Entries without a name
// or logo are skipped. Creation times step back one millisecond per entry
// so listings show the games in file order.
func (m *Mapper) MapGames(set Set) ([]*domain.LocalGame, error) {
	out := make([]*domain.LocalGame, 0, len(set.Games))
	now := m.now().UTC().Truncate(time.Millisecond)

	for _, entry := range set.Games {
		name := strings.TrimSpace(entry.Name)
		logo := domain.ParseLogo(entry.Logo)
		if name == "" || logo.IsZero() {
			continue
		}

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}

		created := now.Add(-time.Duration(len(out)) * time.Millisecond)
		out = append(out, &domain.LocalGame{
			Name:       name,
			Logo:       logo,
			URL:        strings.TrimSpace(entry.URL),
			EmbedLinks: games.CleanLinks(entry.EmbedLinks),
			Active:     active,
			CreatedAt:  created,
			UpdatedAt:  created,
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid games found in seed set")
	}
	return out, nil
}

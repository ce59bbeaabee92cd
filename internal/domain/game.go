package domain

import "time"

// Source tags which store a record or view originates from.
type Source string

const (
	SourceLocal   Source = "local"
	SourceCatalog Source = "catalog"
)

// LocalGame is a curated, admin-managed game.
type LocalGame struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the store on creation (24-char hex ObjectID).
	ID string

	// CreatedAt is set once, at creation.
	CreatedAt time.Time

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// Name is non-empty and whitespace-trimmed.
	Name string

	// Logo is a remote URL, a relative static path or an inline data URI.
	Logo Logo

	// URL is the primary playable link (optional).
	URL string

	// EmbedLinks are alternate/embeddable links, in display order.
	EmbedLinks []string

	// ─────────────────────────────
	// State
	// ─────────────────────────────

	// Active is toggled through the API; true on creation.
	Active bool

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time
}

// CatalogGame is a record of the large imported "GM" catalog.
// Field names follow the import feed; most fields are descriptive only.
type CatalogGame struct {
	ID          string
	ExternalID  int64  // game_id in the feed
	CatalogID   string // catalog_id in the feed
	DisplayName string // preferred name when present
	RawName     string

	ImageURL string // logo equivalent
	FileURL  string // playable link equivalent

	CategoryID int
	Kind       string // content type, e.g. "html5"
	Width      int
	Height     int

	PlayCount int64
	Rating    float64

	Description  string
	Instructions string

	ImportFlag         int
	PublishedFlag      int
	FeaturedFlag       int
	FeaturedOrder      string
	MobileFriendlyFlag int

	// AddedAtEpochSeconds is the feed's creation time in Unix seconds.
	AddedAtEpochSeconds int64

	// CreatedAt is only present on records created through this service.
	// Imported records rely on the time embedded in their ID.
	CreatedAt *time.Time
}

// Name returns DisplayName, falling back to RawName.
func (g *CatalogGame) Name() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.RawName
}

// Record is a tagged variant over the two stored kinds.
// Exactly one of Local or Catalog is set, matching Source.
type Record struct {
	Source  Source
	Local   *LocalGame
	Catalog *CatalogGame
}

// LocalRecord wraps a local game.
func LocalRecord(g *LocalGame) Record {
	return Record{Source: SourceLocal, Local: g}
}

// CatalogRecord wraps a catalog game.
func CatalogRecord(g *CatalogGame) Record {
	return Record{Source: SourceCatalog, Catalog: g}
}

// View is the unified projection returned by listing and lookup.
type View struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Logo       Logo      `json:"logo"`
	URL        string    `json:"url"`
	EmbedLinks []string  `json:"embedLinks"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	Source     Source    `json:"source"`

	// Only carried by single-record lookups of catalog games.
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// User is a stored credential record. PasswordHash is a bcrypt hash.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

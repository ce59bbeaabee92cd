// Package docs holds the persisted document shapes shared by the document
// backends. Field names match the collections written by earlier versions
// of the service, so existing data loads unchanged.
package docs

import (
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	LocalCollection   = "games"
	CatalogCollection = "gm_games"
	UserCollection    = "users"
)

// Local is a document of the "games" collection.
type Local struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Name       string             `bson:"gameName" json:"gameName"`
	Logo       string             `bson:"gameLogo" json:"gameLogo"`
	URL        string             `bson:"gameUrl,omitempty" json:"gameUrl,omitempty"`
	EmbedLinks []string           `bson:"iframs" json:"iframs"`
	Status     bool               `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Catalog is a document of the "gm_games" collection.
type Catalog struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	GameID          int64              `bson:"game_id,omitempty" json:"game_id,omitempty"`
	CatalogID       string             `bson:"catalog_id,omitempty" json:"catalog_id,omitempty"`
	GameName        string             `bson:"game_name,omitempty" json:"game_name,omitempty"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Import          int                `bson:"import" json:"import"`
	Category        int                `bson:"category,omitempty" json:"category,omitempty"`
	Plays           int64              `bson:"plays" json:"plays"`
	Rating          float64            `bson:"rating" json:"rating"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions    string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	File            string             `bson:"file,omitempty" json:"file,omitempty"`
	GameType        string             `bson:"game_type,omitempty" json:"game_type,omitempty"`
	Width           int                `bson:"w,omitempty" json:"w,omitempty"`
	Height          int                `bson:"h,omitempty" json:"h,omitempty"`
	DateAdded       int64              `bson:"date_added,omitempty" json:"date_added,omitempty"`
	Published       int                `bson:"published" json:"published"`
	Featured        int                `bson:"featured" json:"featured"`
	Mobile          int                `bson:"mobile" json:"mobile"`
	FeaturedSorting string             `bson:"featured_sorting,omitempty" json:"featured_sorting,omitempty"`
	CreatedAt       *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// User is a document of the "users" collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"password"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ObjectID parses a hex id. Malformed ids map to domain.ErrNotFound.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

// EnsureID parses id, or generates one when it is empty.
func EnsureID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NewObjectID(), nil
	}
	return ObjectID(id)
}

func FromLocal(g *domain.LocalGame) (*Local, error) {
	oid, err := EnsureID(g.ID)
	if err != nil {
		return nil, err
	}
	links := g.EmbedLinks
	if links == nil {
		links = []string{}
	}
	return &Local{
		ID:         oid,
		Name:       g.Name,
		Logo:       g.Logo.Value,
		URL:        g.URL,
		EmbedLinks: links,
		Status:     g.Active,
		CreatedAt:  g.CreatedAt.UTC(),
		UpdatedAt:  g.UpdatedAt.UTC(),
	}, nil
}

func (d *Local) Domain() *domain.LocalGame {
	return &domain.LocalGame{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Logo:       domain.ParseLogo(d.Logo),
		URL:        d.URL,
		EmbedLinks: d.EmbedLinks,
		Active:     d.Status,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func FromCatalog(g *domain.CatalogGame) (*Catalog, error) {
	oid, err := EnsureID(g.ID)
	if err != nil {
		return nil, err
	}
	d := &Catalog{
		ID:              oid,
		GameID:          g.ExternalID,
		CatalogID:       g.CatalogID,
		Name:            g.DisplayName,
		GameName:        g.RawName,
		Image:           g.ImageURL,
		Import:          g.ImportFlag,
		Category:        g.CategoryID,
		Plays:           g.PlayCount,
		Rating:          g.Rating,
		Description:     g.Description,
		Instructions:    g.Instructions,
		File:            g.FileURL,
		GameType:        g.Kind,
		Width:           g.Width,
		Height:          g.Height,
		DateAdded:       g.AddedAtEpochSeconds,
		Published:       g.PublishedFlag,
		Featured:        g.FeaturedFlag,
		Mobile:          g.MobileFriendlyFlag,
		FeaturedSorting: g.FeaturedOrder,
	}
	if g.CreatedAt != nil && !g.CreatedAt.IsZero() {
		t := g.CreatedAt.UTC()
		d.CreatedAt = &t
	}
	return d, nil
}

func (d *Catalog) Domain() *domain.CatalogGame {
	g := &domain.CatalogGame{
		ID:                  d.ID.Hex(),
		ExternalID:          d.GameID,
		CatalogID:           d.CatalogID,
		DisplayName:         d.Name,
		RawName:             d.GameName,
		ImageURL:            d.Image,
		FileURL:             d.File,
		CategoryID:          d.Category,
		Kind:                d.GameType,
		Width:               d.Width,
		Height:              d.Height,
		PlayCount:           d.Plays,
		Rating:              d.Rating,
		Description:         d.Description,
		Instructions:        d.Instructions,
		ImportFlag:          d.Import,
		PublishedFlag:       d.Published,
		FeaturedFlag:        d.Featured,
		FeaturedOrder:       d.FeaturedSorting,
		MobileFriendlyFlag:  d.Mobile,
		AddedAtEpochSeconds: d.DateAdded,
	}
	if d.CreatedAt != nil {
		t := d.CreatedAt.UTC()
		g.CreatedAt = &t
	}
	return g
}

func FromUser(u *domain.User) (*User, error) {
	oid, err := EnsureID(u.ID)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        oid,
		Username:  u.Username,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt.UTC(),
	}, nil
}

func (d *User) Domain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

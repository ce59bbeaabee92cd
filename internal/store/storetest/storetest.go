// Package storetest is a behavioural suite every domain.Store backend runs
// against itself.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
)

// Factory returns an empty store. Cleanup should be registered on t.
type Factory func(t *testing.T) domain.Store

// Run executes the whole suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("LocalInsertAndGet", func(t *testing.T) { testLocalInsertAndGet(t, newStore(t)) })
	t.Run("LocalOrdering", func(t *testing.T) { testLocalOrdering(t, newStore(t)) })
	t.Run("LocalUpdateDelete", func(t *testing.T) { testLocalUpdateDelete(t, newStore(t)) })
	t.Run("LocalBulkDelete", func(t *testing.T) { testLocalBulkDelete(t, newStore(t)) })
	t.Run("CatalogOrdering", func(t *testing.T) { testCatalogOrdering(t, newStore(t)) })
	t.Run("CatalogUpdateDelete", func(t *testing.T) { testCatalogUpdateDelete(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) { testPing(t, newStore(t)) })
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testLocalInsertAndGet(t *testing.T, s domain.Store) {
	ctx := context.Background()
	g := &domain.LocalGame{
		Name:       "Moto X3M",
		Logo:       domain.ParseLogo("https://cdn.example.com/moto.png"),
		URL:        "https://example.com/moto",
		EmbedLinks: []string{"https://example.com/moto/embed"},
		Active:     true,
		CreatedAt:  base,
	}
	if err := s.Local().Insert(ctx, g); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if !domain.ValidID(g.ID) {
		t.Fatalf("Insert() assigned id %q, want a valid id", g.ID)
	}

	got, err := s.Local().Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != g.Name || got.URL != g.URL || !got.Active {
		t.Errorf("Get() = %+v, want %+v", got, g)
	}
	if got.Logo.Kind != domain.LogoRemote || got.Logo.Value != g.Logo.Value {
		t.Errorf("Logo = %+v, want %+v", got.Logo, g.Logo)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}
	if len(got.EmbedLinks) != 1 || got.EmbedLinks[0] != g.EmbedLinks[0] {
		t.Errorf("EmbedLinks = %v, want %v", got.EmbedLinks, g.EmbedLinks)
	}

	if _, err := s.Local().Get(ctx, domain.NewID()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Local().Get(ctx, "not-an-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(malformed) error = %v, want ErrNotFound", err)
	}
}

func testLocalOrdering(t *testing.T, s domain.Store) {
	ctx := context.Background()
	older := &domain.LocalGame{Name: "older", CreatedAt: base}
	middle := &domain.LocalGame{Name: "middle", CreatedAt: base.Add(time.Minute)}
	newer := &domain.LocalGame{Name: "newer", CreatedAt: base.Add(2 * time.Minute)}
	// Same timestamp as middle, inserted later so its id sorts higher.
	twin := &domain.LocalGame{Name: "twin", CreatedAt: base.Add(time.Minute)}

	if err := s.Local().InsertMany(ctx, []*domain.LocalGame{older, middle, newer}); err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if err := s.Local().Insert(ctx, twin); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	n, err := s.Local().Count(ctx)
	if err != nil || n != 4 {
		t.Fatalf("Count() = %d, %v, want 4", n, err)
	}

	all, err := s.Local().List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	assertNames(t, localNames(all), []string{"newer", "twin", "middle", "older"})

	page, err := s.Local().List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("List(1, 2) error = %v", err)
	}
	assertNames(t, localNames(page), []string{"twin", "middle"})

	past, err := s.Local().List(ctx, 10, 5)
	if err != nil {
		t.Fatalf("List(10, 5) error = %v", err)
	}
	if len(past) != 0 {
		t.Errorf("List past the end returned %d items", len(past))
	}
}

func testLocalUpdateDelete(t *testing.T, s domain.Store) {
	ctx := context.Background()
	g := &domain.LocalGame{Name: "Drift Hunters", Active: true, CreatedAt: base}
	if err := s.Local().Insert(ctx, g); err != nil {
		t.Fatal(err)
	}

	g.Active = false
	g.EmbedLinks = []string{"a", "b"}
	if err := s.Local().Update(ctx, g); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := s.Local().Get(ctx, g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active || len(got.EmbedLinks) != 2 {
		t.Errorf("Update() not persisted: %+v", got)
	}

	missing := &domain.LocalGame{ID: domain.NewID(), Name: "ghost"}
	if err := s.Local().Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Local().Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Local().Delete(ctx, g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if n, _ := s.Local().Count(ctx); n != 0 {
		t.Errorf("Count() after delete = %d, want 0", n)
	}
}

func testLocalBulkDelete(t *testing.T, s domain.Store) {
	ctx := context.Background()
	games := []*domain.LocalGame{
		{Name: "Stickman Adventure", CreatedAt: base},
		{Name: "Puzzle Master", CreatedAt: base},
		{Name: "Moto X3M", CreatedAt: base},
	}
	if err := s.Local().InsertMany(ctx, games); err != nil {
		t.Fatal(err)
	}

	n, err := s.Local().DeleteByNames(ctx, []string{"Stickman Adventure", "Puzzle Master", "Space Explorer"})
	if err != nil {
		t.Fatalf("DeleteByNames() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByNames() = %d, want 2", n)
	}

	n, err = s.Local().DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteAll() = %d, want 1", n)
	}
	if c, _ := s.Local().Count(ctx); c != 0 {
		t.Errorf("Count() after DeleteAll = %d", c)
	}
}

func testCatalogOrdering(t *testing.T, s domain.Store) {
	ctx := context.Background()
	first := &domain.CatalogGame{ID: domain.NewID(), DisplayName: "first", PublishedFlag: 1, PlayCount: 10}
	second := &domain.CatalogGame{ID: domain.NewID(), RawName: "second", Rating: 4.5}
	created := base
	third := &domain.CatalogGame{ID: domain.NewID(), DisplayName: "third", CreatedAt: &created, Description: "desc"}

	if err := s.Catalog().InsertMany(ctx, []*domain.CatalogGame{first, second}); err != nil {
		t.Fatalf("InsertMany() error = %v", err)
	}
	if err := s.Catalog().Insert(ctx, third); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	n, err := s.Catalog().Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count() = %d, %v, want 3", n, err)
	}

	all, err := s.Catalog().List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	assertNames(t, catalogNames(all), []string{"third", "second", "first"})

	page, err := s.Catalog().List(ctx, 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	assertNames(t, catalogNames(page), []string{"first"})
	if page[0].PublishedFlag != 1 || page[0].PlayCount != 10 {
		t.Errorf("fields not persisted: %+v", page[0])
	}

	got, err := s.Catalog().Get(ctx, third.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}
	if got.Description != "desc" {
		t.Errorf("Description = %q", got.Description)
	}

	second2, err := s.Catalog().Get(ctx, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if second2.CreatedAt != nil {
		t.Errorf("CreatedAt should stay unset, got %v", second2.CreatedAt)
	}
	if second2.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", second2.Rating)
	}
}

func testCatalogUpdateDelete(t *testing.T, s domain.Store) {
	ctx := context.Background()
	g := &domain.CatalogGame{DisplayName: "before"}
	if err := s.Catalog().Insert(ctx, g); err != nil {
		t.Fatal(err)
	}
	if !domain.ValidID(g.ID) {
		t.Fatalf("Insert() assigned id %q", g.ID)
	}

	g.DisplayName = "after"
	if err := s.Catalog().Update(ctx, g); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := s.Catalog().Get(ctx, g.ID)
	if err != nil || got.DisplayName != "after" {
		t.Errorf("Get() = %+v, %v, want DisplayName after", got, err)
	}

	if err := s.Catalog().Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Catalog().Get(ctx, g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Catalog().Update(ctx, g); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := s.Catalog().Get(ctx, "zzz"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(malformed) error = %v, want ErrNotFound", err)
	}
}

func testUsers(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := &domain.User{Username: "alice", PasswordHash: "$2a$10$hash"}
	if err := s.Users().Insert(ctx, u); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if u.ID == "" {
		t.Error("Insert() should assign an id")
	}

	dup := &domain.User{Username: "alice", PasswordHash: "other"}
	if err := s.Users().Insert(ctx, dup); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("duplicate Insert() error = %v, want ErrDuplicate", err)
	}

	got, err := s.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.PasswordHash != u.PasswordHash || got.ID != u.ID {
		t.Errorf("GetByUsername() = %+v, want %+v", got, u)
	}

	if _, err := s.Users().GetByUsername(ctx, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByUsername(missing) error = %v, want ErrNotFound", err)
	}
}

func testPing(t *testing.T, s domain.Store) {
	ctx := context.Background()
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	info, err := s.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if info.Backend != s.Backend() {
		t.Errorf("Describe().Backend = %q, want %q", info.Backend, s.Backend())
	}
	if !info.Connected {
		t.Error("Describe().Connected should be true after Ping")
	}
}

func localNames(games []*domain.LocalGame) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

func catalogNames(games []*domain.CatalogGame) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name()
	}
	return out
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store { return New() })
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Local().Insert(ctx, &domain.LocalGame{Name: "game"})
		}()
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Local().List(ctx, 0, 10)
			_, _ = s.Local().Count(ctx)
		}()
	}

	wg.Wait()

	if n, _ := s.Local().Count(ctx); n != 50 {
		t.Errorf("Count() = %d, want 50", n)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	g := &domain.LocalGame{Name: "original", EmbedLinks: []string{"a"}}
	if err := s.Local().Insert(ctx, g); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Local().Get(ctx, g.ID)
	got.Name = "mutated"
	got.EmbedLinks[0] = "mutated"

	again, _ := s.Local().Get(ctx, g.ID)
	if again.Name != "original" || again.EmbedLinks[0] != "a" {
		t.Errorf("stored game was mutated through a returned pointer: %+v", again)
	}
}

func TestDuplicateID(t *testing.T) {
	s := New()
	ctx := context.Background()

	id := domain.NewID()
	if err := s.Catalog().Insert(ctx, &domain.CatalogGame{ID: id}); err != nil {
		t.Fatal(err)
	}
	if err := s.Catalog().Insert(ctx, &domain.CatalogGame{ID: id}); err != domain.ErrDuplicate {
		t.Errorf("Insert() duplicate id error = %v, want ErrDuplicate", err)
	}
}

func TestInsertManyWritesNothingOnDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	taken := domain.NewID()
	if err := s.Catalog().Insert(ctx, &domain.CatalogGame{ID: taken}); err != nil {
		t.Fatal(err)
	}
	batch := []*domain.CatalogGame{{DisplayName: "fresh"}, {ID: taken}}
	if err := s.Catalog().InsertMany(ctx, batch); err != domain.ErrDuplicate {
		t.Fatalf("InsertMany() error = %v, want ErrDuplicate", err)
	}
	if n, _ := s.Catalog().Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	repeated := domain.NewID()
	local := []*domain.LocalGame{{ID: repeated, Name: "one"}, {ID: repeated, Name: "two"}}
	if err := s.Local().InsertMany(ctx, local); err != domain.ErrDuplicate {
		t.Fatalf("InsertMany() repeated id error = %v, want ErrDuplicate", err)
	}
	if n, _ := s.Local().Count(ctx); n != 0 {
		t.Errorf("local Count() = %d, want 0", n)
	}
}

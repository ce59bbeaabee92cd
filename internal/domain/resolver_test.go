package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/memory"
)

type failingLocal struct {
	domain.LocalGameStore
	err error
}

func (f failingLocal) Get(context.Context, string) (*domain.LocalGame, error) { return nil, f.err }

func TestResolve(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	local := &domain.LocalGame{Name: "Moto", Logo: domain.ParseLogo("/images/m.jpg"), Active: true}
	named := &domain.CatalogGame{DisplayName: "Drift Hunters", RawName: "drift_hunters", Description: "drift", Instructions: "arrows"}
	raw := &domain.CatalogGame{RawName: "raw-only", FileURL: "https://play/raw"}
	for _, err := range []error{
		st.Local().Insert(ctx, local),
		st.Catalog().Insert(ctx, named),
		st.Catalog().Insert(ctx, raw),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	r := domain.NewResolver(st.Local(), st.Catalog())

	tests := []struct {
		name       string
		id         string
		wantName   string
		wantSource domain.Source
		wantErr    error
	}{
		{name: "local", id: local.ID, wantName: "Moto", wantSource: domain.SourceLocal},
		{name: "padded id", id: "  " + local.ID + "\t", wantName: "Moto", wantSource: domain.SourceLocal},
		{name: "catalog display name", id: named.ID, wantName: "Drift Hunters", wantSource: domain.SourceCatalog},
		{name: "catalog raw name fallback", id: raw.ID, wantName: "raw-only", wantSource: domain.SourceCatalog},
		{name: "absent", id: domain.NewID(), wantErr: domain.ErrNotFound},
		{name: "malformed", id: "abc123", wantErr: domain.ErrNotFound},
		{name: "empty", id: "   ", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Resolve(ctx, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if v.Name != tt.wantName || v.Source != tt.wantSource {
				t.Errorf("Resolve() = %+v", v)
			}
		})
	}

	v, _ := r.Resolve(ctx, named.ID)
	if v.Description != "drift" || v.Instructions != "arrows" {
		t.Errorf("catalog detail fields = %q, %q", v.Description, v.Instructions)
	}
	v, _ = r.Resolve(ctx, raw.ID)
	if len(v.EmbedLinks) != 1 || v.EmbedLinks[0] != "https://play/raw" || !v.Active {
		t.Errorf("catalog defaults = %+v", v)
	}
	if v.CreatedAt.IsZero() || time.Since(v.CreatedAt) > time.Minute {
		t.Errorf("catalog CreatedAt = %v, want the id time", v.CreatedAt)
	}
}

func TestResolveStoreError(t *testing.T) {
	st := memory.New()
	boom := errors.New("connection reset")
	r := domain.NewResolver(failingLocal{st.Local(), boom}, st.Catalog())

	_, err := r.Resolve(context.Background(), domain.NewID())
	var serr *domain.StoreError
	if !errors.As(err, &serr) || serr.Op != "get local game" || !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want StoreError", err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/store/memory"
)

type sink struct {
	mu     sync.Mutex
	counts map[string]int
	calls  int
}

func (s *sink) SetRecords(source string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int{}
	}
	s.counts[source] = n
	s.calls++
}

func (s *sink) snapshot() (map[string]int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		cp[k] = v
	}
	return cp, s.calls
}

type brokenCatalog struct{ domain.CatalogGameStore }

func (brokenCatalog) Count(context.Context) (int, error) { return 0, errors.New("catalog down") }

type brokenStore struct{ *memory.Store }

func (b brokenStore) Catalog() domain.CatalogGameStore {
	return brokenCatalog{b.Store.Catalog()}
}

func TestStoreStatsRefresh(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	for _, name := range []string{"a", "b", "c"} {
		if err := st.Local().Insert(ctx, &domain.LocalGame{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.Catalog().Insert(ctx, &domain.CatalogGame{DisplayName: "x"}); err != nil {
		t.Fatal(err)
	}

	out := &sink{}
	stats := NewStoreStats(st, out, logger.New("error", false), time.Hour, time.Second)
	if err := stats.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	counts, _ := out.snapshot()
	if counts["local"] != 3 || counts["catalog"] != 1 {
		t.Errorf("counts = %v, want local=3 catalog=1", counts)
	}
}

func TestStoreStatsRefreshFailure(t *testing.T) {
	out := &sink{}
	stats := NewStoreStats(brokenStore{memory.New()}, out, logger.New("error", false), 0, 0)

	err := stats.Refresh(context.Background())
	var serr *domain.StoreError
	if !errors.As(err, &serr) || serr.Op != "count catalog games" {
		t.Fatalf("Refresh() error = %v, want StoreError on catalog count", err)
	}
	counts, _ := out.snapshot()
	if n, ok := counts["local"]; !ok || n != 0 {
		t.Errorf("local count = %v (set %v), want 0 recorded", n, ok)
	}
	if _, ok := counts["catalog"]; ok {
		t.Error("catalog count recorded despite failure")
	}
	if stats.interval != DefaultStatsInterval {
		t.Errorf("interval = %v, want default", stats.interval)
	}
}

func TestStoreStatsStartStop(t *testing.T) {
	out := &sink{}
	stats := NewStoreStats(memory.New(), out, logger.New("error", false), 10*time.Millisecond, time.Second)

	stats.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, calls := out.snapshot(); calls >= 4 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no periodic refresh observed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	stats.Stop()
}

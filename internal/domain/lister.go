package domain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

// Page is one page of the unified listing.
type Page struct {
	Items      []View `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int    `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
	HasMore    bool   `json:"hasMore"`
	NextPage   *int   `json:"nextPage"`
}

// Lister pages over both stores as one sequence.
//
// Ordering is two-phase: every local game (newest first) precedes every
// catalog game (newest first). There is no chronological merge across the
// two stores, which keeps each page at O(pageSize) store work. Offsets are
// not snapshot-consistent: a write to either store between two page fetches
// may shift the boundary between the phases.
type Lister struct {
	local           LocalGameStore
	catalog         CatalogGameStore
	defaultPageSize int

	// OnServed, when set, is called with the number of items drawn from each
	// source for every page served.
	OnServed func(src Source, n int)
}

// NewLister builds a Lister. defaultPageSize <= 0 selects DefaultPageSize.
func NewLister(local LocalGameStore, catalog CatalogGameStore, defaultPageSize int) *Lister {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return &Lister{local: local, catalog: catalog, defaultPageSize: defaultPageSize}
}

// List computes one page. Values of page or pageSize below 1 fall back to
// the defaults. Any store failure fails the whole page.
func (l *Lister) List(ctx context.Context, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = l.defaultPageSize
	}

	var totalLocal, totalCatalog int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalLocal, err = l.local.Count(gctx)
		return storeErr("count local games", err)
	})
	g.Go(func() (err error) {
		totalCatalog, err = l.catalog.Count(gctx)
		return storeErr("count catalog games", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	totalCount := totalLocal + totalCatalog
	skip := offset(page, pageSize, totalCount)

	items := make([]View, 0, min(pageSize, max(0, totalCount-skip)))

	// Phase A: local games.
	if skip < totalLocal {
		budget := min(pageSize, totalLocal-skip)
		games, err := l.local.List(ctx, skip, budget)
		if err != nil {
			return nil, storeErr("list local games", err)
		}
		for _, game := range games[:min(len(games), budget)] {
			items = append(items, NormalizeLocal(game))
		}
	}
	fromLocal := len(items)

	// Phase B: catalog games fill the remaining budget.
	if remaining := pageSize - fromLocal; remaining > 0 {
		catalogSkip := max(0, skip-totalLocal)
		if catalogSkip < totalCatalog {
			remaining = min(remaining, totalCatalog-catalogSkip)
			games, err := l.catalog.List(ctx, catalogSkip, remaining)
			if err != nil {
				return nil, storeErr("list catalog games", err)
			}
			for _, game := range games[:min(len(games), remaining)] {
				items = append(items, NormalizeCatalog(game))
			}
		}
	}

	if l.OnServed != nil {
		l.OnServed(SourceLocal, fromLocal)
		l.OnServed(SourceCatalog, len(items)-fromLocal)
	}

	totalPages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		totalPages++
	}
	p := &Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
	if p.HasMore {
		next := page + 1
		p.NextPage = &next
	}
	return p, nil
}

// offset returns (page-1)*pageSize, or totalCount when the page starts past
// the end. The product is only formed when it cannot overflow.
func offset(page, pageSize, totalCount int) int {
	if page-1 > totalCount/pageSize {
		return totalCount
	}
	return (page - 1) * pageSize
}

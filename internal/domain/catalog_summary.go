package domain

import "sort"

// CategoryCount is the number of catalog games in one category.
type CategoryCount struct {
	CategoryID int
	Count      int
}

// CatalogSummary aggregates engagement and publishing flags over a catalog.
type CatalogSummary struct {
	Total          int
	Published      int
	Featured       int
	MobileFriendly int
	TotalPlays     int64
	AverageRating  float64
	Categories     []CategoryCount // most populated first
}

// SummarizeCatalog computes summary statistics. Games without a category
// (CategoryID 0) are left out of the breakdown.
func SummarizeCatalog(games []*CatalogGame) CatalogSummary {
	s := CatalogSummary{Total: len(games)}
	if len(games) == 0 {
		return s
	}

	var ratingSum float64
	byCategory := make(map[int]int)
	for _, g := range games {
		if g.PublishedFlag == 1 {
			s.Published++
		}
		if g.FeaturedFlag == 1 {
			s.Featured++
		}
		if g.MobileFriendlyFlag == 1 {
			s.MobileFriendly++
		}
		s.TotalPlays += g.PlayCount
		ratingSum += g.Rating
		if g.CategoryID != 0 {
			byCategory[g.CategoryID]++
		}
	}
	s.AverageRating = ratingSum / float64(len(games))

	s.Categories = make([]CategoryCount, 0, len(byCategory))
	for id, n := range byCategory {
		s.Categories = append(s.Categories, CategoryCount{CategoryID: id, Count: n})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Count != s.Categories[j].Count {
			return s.Categories[i].Count > s.Categories[j].Count
		}
		return s.Categories[i].CategoryID < s.Categories[j].CategoryID
	})
	return s
}

package domain

import (
	"reflect"
	"testing"
)

func TestSummarizeCatalog(t *testing.T) {
	games := []*CatalogGame{
		{CategoryID: 3, PlayCount: 100, Rating: 4.5, PublishedFlag: 1, FeaturedFlag: 1, MobileFriendlyFlag: 1},
		{CategoryID: 3, PlayCount: 50, Rating: 4, PublishedFlag: 1},
		{CategoryID: 7, PlayCount: 1, Rating: 4.25},
		{PlayCount: 9, Rating: 3.25, MobileFriendlyFlag: 1},
	}

	got := SummarizeCatalog(games)
	want := CatalogSummary{
		Total:          4,
		Published:      2,
		Featured:       1,
		MobileFriendly: 2,
		TotalPlays:     160,
		AverageRating:  4,
		Categories:     []CategoryCount{{CategoryID: 3, Count: 2}, {CategoryID: 7, Count: 1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SummarizeCatalog() =\n %+v\nwant\n %+v", got, want)
	}

	if empty := SummarizeCatalog(nil); empty.Total != 0 || empty.AverageRating != 0 || empty.Categories != nil {
		t.Errorf("SummarizeCatalog(nil) = %+v", empty)
	}
}

func TestSummarizeCatalogCategoryTies(t *testing.T) {
	games := []*CatalogGame{{CategoryID: 9}, {CategoryID: 2}, {CategoryID: 5}, {CategoryID: 5}}
	got := SummarizeCatalog(games).Categories
	want := []CategoryCount{{5, 2}, {2, 1}, {9, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %+v, want %+v", got, want)
	}
}

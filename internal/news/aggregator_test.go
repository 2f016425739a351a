package news

import (
	"errors"
	"testing"

	"MorningBrief/internal/collector"
	"MorningBrief/internal/model"
)

func TestDeduplicate_DropsNearDuplicateTitles(t *testing.T) {
	items := []model.NewsItem{
		{Title: "Apple announces new iPhone at September event"},
		{Title: "Apple announces new iPhone at September event!"},
		{Title: "Fed holds rates steady amid inflation concerns"},
	}
	got := Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique headlines, got %d", len(got))
	}
	if got[0].Title != items[0].Title || got[1].Title != items[2].Title {
		t.Errorf("unexpected survivors: %+v", got)
	}
}

func TestDeduplicate_KeepsDistinctTitles(t *testing.T) {
	items := []model.NewsItem{
		{Title: "Apple raises dividend"},
		{Title: "Microsoft ships new Surface"},
		{Title: ""},
	}
	got := Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 headlines (empty title dropped), got %d", len(got))
	}
}

func TestAggregate_SortsAndLimits(t *testing.T) {
	fetcher := &collector.MockFetcher{
		News: []model.NewsItem{
			{Title: "oldest", PublishedAt: 100},
			{Title: "newest", PublishedAt: 400},
			{Title: "older", PublishedAt: 200},
			{Title: "newer", PublishedAt: 300},
		},
	}
	a := &Aggregator{Fetcher: fetcher}

	got := a.Aggregate("AAPL")
	if len(got) != 3 {
		t.Fatalf("expected top 3 headlines, got %d", len(got))
	}
	if got[0].Title != "newest" || got[1].Title != "newer" || got[2].Title != "older" {
		t.Errorf("expected newest-first order, got %+v", got)
	}
}

func TestAggregate_FetchFailureIsBestEffort(t *testing.T) {
	fetcher := &collector.MockFetcher{Err: errors.New("upstream down")}
	a := &Aggregator{Fetcher: fetcher}
	if got := a.Aggregate("AAPL"); got != nil {
		t.Errorf("expected nil on fetch failure, got %+v", got)
	}
}

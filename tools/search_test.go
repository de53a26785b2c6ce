package tools

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
)

// mockIndex is an in-memory Index stand-in returning a canned result.
type mockIndex struct {
	result      *bleve.SearchResult
	searchError error
	closed      atomic.Bool
}

func (m *mockIndex) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("index closed")
	}
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.result, nil
}

func (m *mockIndex) DocCount() (uint64, error) {
	if m.result == nil {
		return 0, nil
	}
	return m.result.Total, nil
}

func (m *mockIndex) Close() error {
	m.closed.Store(true)
	return nil
}

// swapIndex installs a mock as the current search index and returns a
// restore function.
func swapIndex(idx Index) func() {
	old := searchMgr.current.Swap(&idx)
	return func() { searchMgr.current.Store(old) }
}

func TestRebuildSearchIndex(t *testing.T) {
	if err := LoadDatasets(); err != nil {
		t.Fatalf("LoadDatasets() error: %v", err)
	}
	if err := RebuildSearchIndex(); err != nil {
		t.Fatalf("RebuildSearchIndex() error: %v", err)
	}

	indexPtr := searchMgr.current.Load()
	if indexPtr == nil {
		t.Fatal("no index installed after rebuild")
	}
	count, err := (*indexPtr).DocCount()
	if err != nil {
		t.Fatalf("DocCount() error: %v", err)
	}

	want := uint64(0)
	for _, language := range []string{"javascript", "css", "html"} {
		q, err := Queries(language)
		if err != nil {
			t.Fatalf("Queries(%q) error: %v", language, err)
		}
		records, err := q.Records()
		if err != nil {
			t.Fatalf("Records(%q) error: %v", language, err)
		}
		want += uint64(len(records))
	}
	if count != want {
		t.Errorf("DocCount() = %d, want %d", count, want)
	}
}

func TestSearchReferenceFullText(t *testing.T) {
	mock := &mockIndex{
		result: &bleve.SearchResult{
			Total: 1,
			Hits: search.DocumentMatchCollection{
				{
					ID:    "css/entry/color",
					Score: 1.42,
					Fields: map[string]interface{}{
						"language":    "css",
						"kind":        "entry",
						"name":        "color",
						"description": "Foreground color of the element text",
						"category":    "visual",
					},
				},
			},
		},
	}
	restore := swapIndex(mock)
	defer restore()

	_, out, err := SearchReference(context.Background(), nil, SearchReferenceInput{Query: "color"})
	if err != nil {
		t.Fatalf("SearchReference() error: %v", err)
	}
	if out.TotalHits != 1 || len(out.Hits) != 1 {
		t.Fatalf("unexpected hit counts: %+v", out)
	}
	hit := out.Hits[0]
	if hit.ID != "css/entry/color" || hit.Language != "css" || hit.Kind != "entry" || hit.Name != "color" {
		t.Errorf("hit fields not mapped: %+v", hit)
	}
	if hit.Score != 1.42 {
		t.Errorf("score = %v", hit.Score)
	}
}

func TestSearchReferenceSearchError(t *testing.T) {
	mock := &mockIndex{searchError: fmt.Errorf("index exploded")}
	restore := swapIndex(mock)
	defer restore()

	_, _, err := SearchReference(context.Background(), nil, SearchReferenceInput{Query: "color"})
	if err == nil || !strings.Contains(err.Error(), "search failed") {
		t.Errorf("expected wrapped search error, got %v", err)
	}
}

func TestSearchReferenceSubstring(t *testing.T) {
	if err := LoadDatasets(); err != nil {
		t.Fatalf("LoadDatasets() error: %v", err)
	}

	_, out, err := SearchReference(context.Background(), nil, SearchReferenceInput{
		Query:     "color",
		Language:  "css",
		Substring: true,
	})
	if err != nil {
		t.Fatalf("SearchReference() error: %v", err)
	}
	if out.Substring == nil || out.TotalHits == 0 {
		t.Fatalf("expected substring hits for color, got %+v", out)
	}
	found := false
	for _, hit := range out.Substring.Entries {
		if hit.Name == "color" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the color property in entry hits, got %+v", out.Substring.Entries)
	}
}

func TestSearchReferenceSubstringRequiresLanguage(t *testing.T) {
	_, _, err := SearchReference(context.Background(), nil, SearchReferenceInput{Query: "x", Substring: true})
	if err == nil || !strings.Contains(err.Error(), "requires a language") {
		t.Errorf("expected language-required error, got %v", err)
	}
}

func TestSearchReferenceUnknownLanguageFilter(t *testing.T) {
	mock := &mockIndex{result: &bleve.SearchResult{}}
	restore := swapIndex(mock)
	defer restore()

	_, _, err := SearchReference(context.Background(), nil, SearchReferenceInput{Query: "x", Language: "perl"})
	if err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Errorf("expected unsupported-language error, got %v", err)
	}
}

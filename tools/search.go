package tools

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webref/mcp-server/internal/dataset"
)

// searchManager holds the shared full-text index over every loaded
// dataset. Searches load the pointer lock-free; rebuilds swap in a
// fresh index and close the old one once in-flight searches drain.
type searchManager struct {
	rebuildMu sync.Mutex // serializes rebuilds
	current   atomic.Pointer[Index]
	wg        sync.WaitGroup // tracks in-flight searches
}

var searchMgr = &searchManager{}

// RebuildSearchIndex builds an in-memory index over every record of
// every loaded dataset and atomically swaps it into place.
func RebuildSearchIndex() error {
	searchMgr.rebuildMu.Lock()
	defer searchMgr.rebuildMu.Unlock()

	newIndex, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	total := 0
	batch := newIndex.NewBatch()
	for language := range dataset.Schemas {
		q, err := Queries(language)
		if err != nil {
			newIndex.Close()
			return fmt.Errorf("cannot index %s dataset: %w", language, err)
		}
		records, err := q.Records()
		if err != nil {
			newIndex.Close()
			return fmt.Errorf("cannot index %s dataset: %w", language, err)
		}
		for _, record := range records {
			if err := batch.Index(record.ID, record); err != nil {
				newIndex.Close()
				return fmt.Errorf("failed to index record %s: %w", record.ID, err)
			}
			total++
		}
	}
	if err := newIndex.Batch(batch); err != nil {
		newIndex.Close()
		return fmt.Errorf("failed to commit index batch: %w", err)
	}

	wrapped := NewBleveIndexWrapper(newIndex)
	oldPtr := searchMgr.current.Swap(&wrapped)

	// Retire the previous index only after in-flight searches finish.
	go func(oldPtr *Index) {
		if oldPtr == nil {
			return
		}
		searchMgr.wg.Wait()
		if err := (*oldPtr).Close(); err != nil {
			log.Printf("Warning: error closing old search index: %v", err)
		}
	}(oldPtr)

	log.Printf("✓ Search index rebuilt with %d records", total)
	return nil
}

// SearchReferenceInput defines input for the search_reference tool.
type SearchReferenceInput struct {
	Query      string `json:"query" jsonschema:"Search text"`
	Language   string `json:"language,omitempty" jsonschema:"Restrict results to one dataset: javascript, css, or html"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum hits to return (default 10, max 20)"`
	Substring  bool   `json:"substring,omitempty" jsonschema:"Use exact case-insensitive substring matching over a single dataset instead of full-text search; requires language"`
}

// ReferenceHit is one scored full-text match.
type ReferenceHit struct {
	dataset.Record
	Score float64 `json:"score"`
}

// SearchReferenceOutput defines output for the search_reference tool.
type SearchReferenceOutput struct {
	Query     string                 `json:"query"`
	TotalHits int                    `json:"total_hits"`
	Hits      []ReferenceHit         `json:"hits,omitempty"`
	Substring *dataset.SearchResults `json:"substring,omitempty"`
}

// SearchReference searches the reference datasets. The default mode
// is scored full-text search across every language; substring mode
// returns the exact bucketed matches for one language.
func SearchReference(ctx context.Context, req *mcp.CallToolRequest, input SearchReferenceInput) (*mcp.CallToolResult, SearchReferenceOutput, error) {
	output := SearchReferenceOutput{Query: input.Query}

	if input.Substring {
		if input.Language == "" {
			return nil, output, fmt.Errorf("substring search requires a language")
		}
		q, err := Queries(input.Language)
		if err != nil {
			return nil, output, err
		}
		results, err := q.Search(input.Query)
		if err != nil {
			return nil, output, err
		}
		output.TotalHits = results.Total()
		output.Substring = &results
		return nil, output, nil
	}

	// Track in-flight searches for graceful swap (must precede Load).
	searchMgr.wg.Add(1)
	defer searchMgr.wg.Done()

	indexPtr := searchMgr.current.Load()
	if indexPtr == nil {
		if err := RebuildSearchIndex(); err != nil {
			return nil, output, fmt.Errorf("search index not available: %w", err)
		}
		indexPtr = searchMgr.current.Load()
		if indexPtr == nil {
			return nil, output, fmt.Errorf("search index still nil after rebuild")
		}
	}
	index := *indexPtr

	maxResults := input.MaxResults
	if maxResults <= 0 || maxResults > 20 {
		maxResults = 10
	}

	matchQuery := bleve.NewMatchQuery(input.Query)
	var search *bleve.SearchRequest
	if input.Language != "" {
		if _, ok := dataset.Schemas[input.Language]; !ok {
			return nil, output, fmt.Errorf("unsupported language %q (want one of javascript, css, html)", input.Language)
		}
		languageQuery := bleve.NewMatchQuery(input.Language)
		languageQuery.SetField("language")
		search = bleve.NewSearchRequest(bleve.NewConjunctionQuery(matchQuery, languageQuery))
	} else {
		search = bleve.NewSearchRequest(matchQuery)
	}
	search.Size = maxResults
	search.Fields = []string{"*"}

	searchResults, err := index.Search(search)
	if err != nil {
		return nil, output, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]ReferenceHit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		record := dataset.Record{ID: hit.ID}
		if language, ok := hit.Fields["language"].(string); ok {
			record.Language = language
		}
		if kind, ok := hit.Fields["kind"].(string); ok {
			record.Kind = kind
		}
		if name, ok := hit.Fields["name"].(string); ok {
			record.Name = name
		}
		if owner, ok := hit.Fields["owner"].(string); ok {
			record.Owner = owner
		}
		if description, ok := hit.Fields["description"].(string); ok {
			record.Description = description
		}
		if category, ok := hit.Fields["category"].(string); ok {
			record.Category = category
		}
		hits = append(hits, ReferenceHit{Record: record, Score: hit.Score})
	}

	output.TotalHits = int(searchResults.Total)
	output.Hits = hits
	return nil, output, nil
}

// CloseSearch closes the current search index.
func CloseSearch() error {
	indexPtr := searchMgr.current.Swap(nil)
	if indexPtr == nil {
		return nil
	}
	searchMgr.wg.Wait()
	return (*indexPtr).Close()
}

// RegisterSearchTools builds the initial index and registers the
// search tool.
func RegisterSearchTools(server *mcp.Server) error {
	if err := RebuildSearchIndex(); err != nil {
		log.Printf("Warning: search index build failed: %v", err)
		log.Printf("Search will attempt to build the index on first use")
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_reference",
			Description: "Search the web reference datasets by free text. Returns scored hits across entries, members, keywords, and properties, optionally restricted to one language. Substring mode returns exact case-insensitive matches bucketed by collection.",
		},
		SearchReference,
	)
	return nil
}

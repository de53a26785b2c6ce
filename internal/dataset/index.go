package dataset

import "sort"

// Index maps entry and keyword names to their records for O(1)
// lookup. Names are folded per the schema before indexing and before
// every lookup, so HTML finds "DIV" and "div" alike while JS keeps
// "Array" and "array" distinct. The index is rebuilt fully from a
// store; there is no incremental update.
type Index struct {
	schema   Schema
	entries  map[string]*Entry
	keywords map[string]*Keyword

	entryNames   []string
	keywordNames []string
}

// NewIndex builds the lookup index from a loaded store.
func NewIndex(s *Store) *Index {
	ix := &Index{
		schema:   s.Schema,
		entries:  make(map[string]*Entry, len(s.Entries)),
		keywords: make(map[string]*Keyword, len(s.Keywords)),
	}
	for name, e := range s.Entries {
		ix.entries[s.Schema.Fold(name)] = e
		ix.entryNames = append(ix.entryNames, name)
	}
	for name, kw := range s.Keywords {
		ix.keywords[s.Schema.Fold(name)] = kw
		ix.keywordNames = append(ix.keywordNames, name)
	}
	sort.Strings(ix.entryNames)
	sort.Strings(ix.keywordNames)
	return ix
}

// Entry resolves an entry name.
func (ix *Index) Entry(name string) (*Entry, bool) {
	e, ok := ix.entries[ix.schema.Fold(name)]
	return e, ok
}

// Keyword resolves a keyword name.
func (ix *Index) Keyword(name string) (*Keyword, bool) {
	kw, ok := ix.keywords[ix.schema.Fold(name)]
	return kw, ok
}

// EntryNames returns every known entry name in sorted order, in
// original case. Suggestion scans iterate this.
func (ix *Index) EntryNames() []string {
	return ix.entryNames
}

// KeywordNames returns every known keyword name in sorted order.
func (ix *Index) KeywordNames() []string {
	return ix.keywordNames
}

package dataset

import (
	"errors"
	"strings"
)

// ErrNotInitialized is returned by every query when the façade was
// built without a loaded store. Callers can tell "no dataset" apart
// from "name not found"; queries never partially execute.
var ErrNotInitialized = errors.New("dataset store not initialized")

// Queries is the public lookup surface over one loaded dataset. It
// wraps an immutable store and its index, so concurrent readers need
// no locking.
type Queries struct {
	store *Store
	index *Index
}

// NewQueries builds the façade for a loaded store. A nil store yields
// a façade whose every method fails with ErrNotInitialized.
func NewQueries(store *Store) *Queries {
	q := &Queries{store: store}
	if store != nil {
		q.index = NewIndex(store)
	}
	return q
}

// Schema returns the schema the façade was built with.
func (q *Queries) Schema() Schema {
	if q.store == nil {
		return Schema{}
	}
	return q.store.Schema
}

func (q *Queries) ready() error {
	if q.store == nil || q.index == nil {
		return ErrNotInitialized
	}
	return nil
}

// EntryResult reports whether an entry name exists, with nearby known
// names when it does not. Suggestions is non-nil but possibly empty.
type EntryResult struct {
	Exists      bool     `json:"exists"`
	Entry       *Entry   `json:"entry,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// ExistsEntry resolves an entry name against the index, producing
// fuzzy suggestions on a miss.
func (q *Queries) ExistsEntry(name string) (EntryResult, error) {
	if err := q.ready(); err != nil {
		return EntryResult{}, err
	}
	if e, ok := q.index.Entry(name); ok {
		return EntryResult{Exists: true, Entry: e, Suggestions: []string{}}, nil
	}
	return EntryResult{
		Suggestions: suggest(name, q.index.EntryNames(), q.store.Schema.Suggest),
	}, nil
}

// ExistsKeyword resolves a keyword name, with suggestions on a miss.
func (q *Queries) ExistsKeyword(name string) (EntryResult, error) {
	if err := q.ready(); err != nil {
		return EntryResult{}, err
	}
	if kw, ok := q.index.Keyword(name); ok {
		e := &Entry{Name: kw.Name, Description: kw.Description, Category: kw.Category, Children: kw.Attributes}
		return EntryResult{Exists: true, Entry: e, Suggestions: []string{}}, nil
	}
	return EntryResult{
		Suggestions: suggest(name, q.index.KeywordNames(), q.store.Schema.Suggest),
	}, nil
}

// ChildResult reports a member lookup. ParentFound distinguishes "the
// entry itself is unknown" from "the entry exists but has no such
// member".
type ChildResult struct {
	ParentFound bool        `json:"parentFound"`
	Exists      bool        `json:"exists"`
	Child       *ChildEntry `json:"child,omitempty"`
	Static      bool        `json:"static,omitempty"`
	Suggestions []string    `json:"suggestions"`
}

// ExistsChild resolves a member name within an entry's combined
// children/staticChildren namespace. When the entry itself is
// unknown the result carries entry-name suggestions instead.
func (q *Queries) ExistsChild(entryName, childName string) (ChildResult, error) {
	if err := q.ready(); err != nil {
		return ChildResult{}, err
	}
	e, ok := q.index.Entry(entryName)
	if !ok {
		return ChildResult{
			Suggestions: suggest(entryName, q.index.EntryNames(), q.store.Schema.Suggest),
		}, nil
	}
	child, static, found := e.Member(childName, q.store.Schema.FoldCase)
	if found {
		return ChildResult{ParentFound: true, Exists: true, Child: &child, Static: static, Suggestions: []string{}}, nil
	}
	return ChildResult{
		ParentFound: true,
		Suggestions: suggest(childName, e.MemberNames(), q.store.Schema.Suggest),
	}, nil
}

// EntryInfo is an entry record with derived member counts.
type EntryInfo struct {
	Entry
	ChildCount       int `json:"childCount"`
	StaticChildCount int `json:"staticChildCount"`
	PropertyCount    int `json:"propertyCount"`
}

// EntryInfo returns the record for a known entry with derived counts,
// or nil when the name does not resolve.
func (q *Queries) EntryInfo(name string) (*EntryInfo, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	e, ok := q.index.Entry(name)
	if !ok {
		return nil, nil
	}
	return &EntryInfo{
		Entry:            *e,
		ChildCount:       len(e.Children),
		StaticChildCount: len(e.StaticChildren),
		PropertyCount:    len(e.Properties),
	}, nil
}

// ChildInfo is a member record flattened with its owner.
type ChildInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Static      bool   `json:"static"`
}

// ChildInfo returns the flattened record for a known member, or nil
// when either the entry or the member does not resolve.
func (q *Queries) ChildInfo(entryName, childName string) (*ChildInfo, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	e, ok := q.index.Entry(entryName)
	if !ok {
		return nil, nil
	}
	child, static, found := e.Member(childName, q.store.Schema.FoldCase)
	if !found {
		return nil, nil
	}
	return &ChildInfo{
		Name:        child.Name,
		Description: child.Description,
		Owner:       e.Name,
		Static:      static,
	}, nil
}

// CategorySummary is a category with its derived member counts.
type CategorySummary struct {
	Name             string `json:"name"`
	EntryCount       int    `json:"entryCount"`
	KeywordCount     int    `json:"keywordCount"`
	SubcategoryCount int    `json:"subcategoryCount"`
}

// ListCategories returns every category with derived counts, sorted
// by name.
func (q *Queries) ListCategories() ([]CategorySummary, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	out := make([]CategorySummary, 0, len(q.store.Categories))
	for _, key := range sortedKeys(q.store.Categories) {
		cat := q.store.Categories[key]
		out = append(out, CategorySummary{
			Name:             key,
			EntryCount:       len(cat.EntryMembers),
			KeywordCount:     len(cat.KeywordMembers),
			SubcategoryCount: len(cat.Subcategories),
		})
	}
	return out, nil
}

// SearchHit is one search match. Owner is set for member and
// property hits.
type SearchHit struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// SearchResults buckets matches by collection. Children carries
// matches from both member maps; Properties is populated only for
// datasets that have a property map.
type SearchResults struct {
	Entries    []SearchHit `json:"entries"`
	Children   []SearchHit `json:"children"`
	Keywords   []SearchHit `json:"keywords"`
	Properties []SearchHit `json:"properties"`
}

// Total returns the combined hit count across every bucket.
func (sr SearchResults) Total() int {
	return len(sr.Entries) + len(sr.Children) + len(sr.Keywords) + len(sr.Properties)
}

// Search matches the query case-insensitively as a substring against
// the name and description of every record in every collection.
func (q *Queries) Search(query string) (SearchResults, error) {
	if err := q.ready(); err != nil {
		return SearchResults{}, err
	}
	needle := strings.ToLower(query)
	match := func(name, description string) bool {
		return strings.Contains(strings.ToLower(name), needle) ||
			strings.Contains(strings.ToLower(description), needle)
	}

	results := SearchResults{
		Entries:    []SearchHit{},
		Children:   []SearchHit{},
		Keywords:   []SearchHit{},
		Properties: []SearchHit{},
	}
	for _, name := range sortedKeys(q.store.Entries) {
		e := q.store.Entries[name]
		if match(name, e.Description) {
			results.Entries = append(results.Entries, SearchHit{Name: name, Description: e.Description})
		}
		for _, childName := range sortedKeys(e.Children) {
			child := e.Children[childName]
			if match(childName, child.Description) {
				results.Children = append(results.Children, SearchHit{Name: childName, Description: child.Description, Owner: name})
			}
		}
		for _, childName := range sortedKeys(e.StaticChildren) {
			child := e.StaticChildren[childName]
			if match(childName, child.Description) {
				results.Children = append(results.Children, SearchHit{Name: childName, Description: child.Description, Owner: name})
			}
		}
		for _, propName := range sortedKeys(e.Properties) {
			prop := e.Properties[propName]
			if match(propName, prop.Description) {
				results.Properties = append(results.Properties, SearchHit{Name: propName, Description: prop.Description, Owner: name})
			}
		}
	}
	for _, name := range sortedKeys(q.store.Keywords) {
		kw := q.store.Keywords[name]
		if match(name, kw.Description) {
			results.Keywords = append(results.Keywords, SearchHit{Name: name, Description: kw.Description})
		}
	}
	return results, nil
}

// Record is a flat view of one dataset record, used to feed the
// full-text search index. Kind is one of entry, member, keyword, or
// property; Owner names the containing entry for member and property
// records.
type Record struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Owner       string `json:"owner,omitempty"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Records flattens every collection into indexable records, in
// deterministic order.
func (q *Queries) Records() ([]Record, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	lang := q.store.Schema.Language
	var records []Record
	for _, name := range sortedKeys(q.store.Entries) {
		e := q.store.Entries[name]
		records = append(records, Record{
			ID:          lang + "/entry/" + name,
			Language:    lang,
			Kind:        "entry",
			Name:        name,
			Description: e.Description,
			Category:    e.Category,
		})
		for _, childName := range sortedKeys(e.Children) {
			records = append(records, Record{
				ID:          lang + "/member/" + name + "." + childName,
				Language:    lang,
				Kind:        "member",
				Name:        childName,
				Owner:       name,
				Description: e.Children[childName].Description,
			})
		}
		for _, childName := range sortedKeys(e.StaticChildren) {
			records = append(records, Record{
				ID:          lang + "/member/" + name + "." + childName,
				Language:    lang,
				Kind:        "member",
				Name:        childName,
				Owner:       name,
				Description: e.StaticChildren[childName].Description,
			})
		}
		for _, propName := range sortedKeys(e.Properties) {
			records = append(records, Record{
				ID:          lang + "/property/" + name + "." + propName,
				Language:    lang,
				Kind:        "property",
				Name:        propName,
				Owner:       name,
				Description: e.Properties[propName].Description,
			})
		}
	}
	for _, name := range sortedKeys(q.store.Keywords) {
		records = append(records, Record{
			ID:          lang + "/keyword/" + name,
			Language:    lang,
			Kind:        "keyword",
			Name:        name,
			Description: q.store.Keywords[name].Description,
			Category:    q.store.Keywords[name].Category,
		})
	}
	return records, nil
}

// Statistics is the stored metadata alongside live counts recomputed
// from the collections.
type Statistics struct {
	Metadata
	LiveCategories int `json:"liveCategories"`
	LiveEntries    int `json:"liveEntries"`
	LiveKeywords   int `json:"liveKeywords"`
	LiveChildren   int `json:"liveChildren"`
}

// Statistics reports the stored metadata plus live collection counts.
func (q *Queries) Statistics() (Statistics, error) {
	if err := q.ready(); err != nil {
		return Statistics{}, err
	}
	members := 0
	for _, e := range q.store.Entries {
		members += e.MemberCount()
	}
	return Statistics{
		Metadata:       q.store.Meta,
		LiveCategories: len(q.store.Categories),
		LiveEntries:    len(q.store.Entries),
		LiveKeywords:   len(q.store.Keywords),
		LiveChildren:   members,
	}, nil
}

package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ChildEntry is a named member owned by an entry or keyword: a JS
// method, an HTML attribute, or a CSS value.
type ChildEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Static      bool   `json:"static,omitempty"`
}

// Entry is a top-level named thing in a dataset: a JS built-in
// object, a CSS property, or an HTML element.
type Entry struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Category       string                `json:"category,omitempty"`
	Subcategory    string                `json:"subcategory,omitempty"`
	Children       map[string]ChildEntry `json:"children,omitempty"`
	StaticChildren map[string]ChildEntry `json:"staticChildren,omitempty"`
	Properties     map[string]ChildEntry `json:"properties,omitempty"`
}

// Keyword is a standalone language token with its own attribute set,
// not owned by an entry.
type Keyword struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    string                `json:"category,omitempty"`
	Attributes  map[string]ChildEntry `json:"attributes,omitempty"`
}

// Category groups entries and keywords by name. The member maps hold
// name references into the global collections; referential integrity
// between them is the validator's job, not the loader's.
type Category struct {
	Name           string            `json:"name"`
	Subcategories  map[string]string `json:"subcategories"`
	EntryMembers   map[string]string `json:"entryMembers"`
	KeywordMembers map[string]string `json:"keywordMembers"`
}

// Metadata carries the dataset's stored version stamp and derived
// totals. The totals are claims; Validate recomputes them from the
// live collections instead of trusting them.
type Metadata struct {
	Version         string `json:"version"`
	LastUpdated     string `json:"lastUpdated"`
	TotalCategories int    `json:"totalCategories"`
	TotalEntries    int    `json:"totalEntries"`
	TotalKeywords   int    `json:"totalKeywords"`
	TotalChildren   int    `json:"totalChildren"`
}

// Store is one loaded language dataset. It is immutable after Parse:
// queries and validation only read it, and regeneration happens by
// reloading the source file, never by mutation.
type Store struct {
	Schema     Schema
	Categories map[string]*Category
	Entries    map[string]*Entry
	Keywords   map[string]*Keyword
	Meta       Metadata

	// doc retains the raw decoded document so the validator can
	// check shape problems (missing fields, wrong container kinds)
	// that the lenient typed build above papers over.
	doc map[string]any
}

// Load reads and parses a dataset file. A missing or unreadable file
// is a fatal load error, not a validation finding: no per-entry
// checking is possible without a loaded store.
func Load(schema Schema, path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s dataset: %w", schema.Language, err)
	}
	return Parse(schema, data)
}

// Parse builds a Store from raw dataset JSON. Malformed JSON is a
// fatal error; malformed interior shapes are tolerated here and
// reported by Validate.
func Parse(schema Schema, data []byte) (*Store, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s dataset: %w", schema.Language, err)
	}

	s := &Store{
		Schema:     schema,
		Categories: make(map[string]*Category),
		Entries:    make(map[string]*Entry),
		Keywords:   make(map[string]*Keyword),
		doc:        doc,
	}

	if cats, ok := asMap(doc["categories"]); ok {
		for key, raw := range cats {
			cat, ok := asMap(raw)
			if !ok {
				continue
			}
			c := &Category{
				Name:           getString(cat, "name"),
				Subcategories:  stringMap(cat["subcategories"]),
				EntryMembers:   stringMap(cat[schema.EntriesKey]),
				KeywordMembers: stringMap(cat["keywords"]),
			}
			s.Categories[key] = c
		}
	}

	if entries, ok := asMap(doc[schema.EntriesKey]); ok {
		for key, raw := range entries {
			obj, ok := asMap(raw)
			if !ok {
				continue
			}
			e := &Entry{
				Name:        getString(obj, "name"),
				Description: getString(obj, "description"),
				Category:    getString(obj, "category"),
				Subcategory: getString(obj, "subcategory"),
			}
			if schema.ChildrenKey != "" {
				e.Children = childMap(obj[schema.ChildrenKey])
			}
			if schema.StaticChildrenKey != "" {
				e.StaticChildren = childMap(obj[schema.StaticChildrenKey])
			}
			if schema.PropertiesKey != "" {
				e.Properties = childMap(obj[schema.PropertiesKey])
			}
			s.Entries[key] = e
		}
	}

	if keywords, ok := asMap(doc["keywords"]); ok {
		for key, raw := range keywords {
			obj, ok := asMap(raw)
			if !ok {
				continue
			}
			s.Keywords[key] = &Keyword{
				Name:        getString(obj, "name"),
				Description: getString(obj, "description"),
				Category:    getString(obj, "category"),
				Attributes:  childMap(obj["attributes"]),
			}
		}
	}

	if meta, ok := asMap(doc["metadata"]); ok {
		s.Meta = Metadata{
			Version:         getString(meta, "version"),
			LastUpdated:     getString(meta, "lastUpdated"),
			TotalCategories: getInt(meta, schema.TotalCategoriesKey),
			TotalEntries:    getInt(meta, schema.TotalEntriesKey),
			TotalKeywords:   getInt(meta, schema.TotalKeywordsKey),
			TotalChildren:   getInt(meta, schema.TotalChildrenKey),
		}
	}

	return s, nil
}

// MemberCount returns the combined size of an entry's children and
// static children maps. Metadata reconciliation sums this across all
// entries.
func (e *Entry) MemberCount() int {
	return len(e.Children) + len(e.StaticChildren)
}

// Member resolves a name against the combined children/staticChildren
// namespace, reporting which map it came from.
func (e *Entry) Member(name string, fold bool) (ChildEntry, bool, bool) {
	for key, child := range e.Children {
		if key == name || (fold && strings.EqualFold(key, name)) {
			return child, false, true
		}
	}
	for key, child := range e.StaticChildren {
		if key == name || (fold && strings.EqualFold(key, name)) {
			return child, true, true
		}
	}
	return ChildEntry{}, false, false
}

// MemberNames returns every name in the combined member namespace,
// children first.
func (e *Entry) MemberNames() []string {
	names := make([]string, 0, e.MemberCount())
	for name := range e.Children {
		names = append(names, name)
	}
	for name := range e.StaticChildren {
		names = append(names, name)
	}
	return names
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// getInt reads a JSON number field; JSON numbers decode as float64.
func getInt(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func stringMap(v any) map[string]string {
	m, ok := asMap(v)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for key, raw := range m {
		s, _ := raw.(string)
		out[key] = s
	}
	return out
}

func childMap(v any) map[string]ChildEntry {
	m, ok := asMap(v)
	if !ok {
		return map[string]ChildEntry{}
	}
	out := make(map[string]ChildEntry, len(m))
	for key, raw := range m {
		obj, ok := asMap(raw)
		if !ok {
			out[key] = ChildEntry{}
			continue
		}
		static, _ := obj["static"].(bool)
		out[key] = ChildEntry{
			Name:        getString(obj, "name"),
			Description: getString(obj, "description"),
			Static:      static,
		}
	}
	return out
}


// Package dataset implements the generic reference-dataset engine:
// loading a language dataset from JSON, checking its internal
// consistency, and answering lookup/search/statistics queries with
// fuzzy suggestions on misses.
//
// One engine serves all three languages. The differences between them
// (JSON section names, case folding, naming conventions, suggestion
// tuning) are captured in a Schema value rather than in code.
package dataset

import (
	"strings"
	"unicode"
)

// Metric selects the string-distance strategy used for suggestions.
type Metric string

const (
	// MetricPositional scores the fraction of matching character
	// positions (up to the shorter string) over the longer length.
	MetricPositional Metric = "positional"

	// MetricLevenshtein accepts candidates within a fixed edit
	// distance of the queried name.
	MetricLevenshtein Metric = "levenshtein"
)

// SuggestConfig tunes the fuzzy suggestion engine for one dataset.
// The thresholds differ per language and are deliberately kept as
// configuration; no unified value is inferred.
type SuggestConfig struct {
	Metric Metric

	// Threshold is the minimum positional-match ratio (exclusive).
	// Only used with MetricPositional.
	Threshold float64

	// MaxDistance is the maximum accepted edit distance (inclusive).
	// Only used with MetricLevenshtein.
	MaxDistance int

	// Limit caps the number of returned suggestions.
	Limit int
}

// Schema describes how one language dataset maps onto the generic
// store: which top-level JSON sections hold what, how a category's
// member maps are named, how names fold for lookup, and how the
// dataset's naming convention and suggestion scoring behave.
type Schema struct {
	Language string

	// EntriesKey is the top-level section holding the entry
	// collection ("objects", "properties", "elements"). The same key
	// names a category's entry-member map.
	EntriesKey string

	// Per-entry member maps. An empty key means the dataset has no
	// such map.
	ChildrenKey       string
	StaticChildrenKey string
	PropertiesKey     string

	// Display terms used in findings and tool output.
	EntryTerm string
	ChildTerm string

	// Metadata total fields that must reconcile with live counts.
	TotalCategoriesKey string
	TotalEntriesKey    string
	TotalKeywordsKey   string
	TotalChildrenKey   string

	// FoldCase normalizes entry and member names to lowercase before
	// indexing and before every lookup. HTML tag and attribute names
	// are case-insensitive; JS and CSS names carry case.
	FoldCase bool

	// EntryNameOK reports whether an entry name follows the
	// dataset's naming convention. Violations are warnings.
	EntryNameOK func(name string) bool

	// NamingHint is the advisory text attached to convention warnings.
	NamingHint string

	Suggest SuggestConfig
}

// Fold normalizes a name for lookup under this schema.
func (s Schema) Fold(name string) string {
	if s.FoldCase {
		return strings.ToLower(name)
	}
	return name
}

// JavaScript describes the JS built-in object and keyword dataset.
// Object names are case-sensitive ("Array" and "array" are different
// names) and conventionally start with an uppercase letter; the
// single-character name "e" is a documented exception.
var JavaScript = Schema{
	Language:           "javascript",
	EntriesKey:         "objects",
	ChildrenKey:        "methods",
	StaticChildrenKey:  "staticMethods",
	PropertiesKey:      "properties",
	EntryTerm:          "object",
	ChildTerm:          "method",
	TotalCategoriesKey: "totalCategories",
	TotalEntriesKey:    "totalObjects",
	TotalKeywordsKey:   "totalKeywords",
	TotalChildrenKey:   "totalMethods",
	FoldCase:           false,
	EntryNameOK: func(name string) bool {
		if name == "e" {
			return true
		}
		r := []rune(name)
		return len(r) > 0 && unicode.IsUpper(r[0])
	},
	NamingHint: "object names should start with an uppercase letter",
	Suggest: SuggestConfig{
		Metric:    MetricPositional,
		Threshold: 0.5,
		Limit:     5,
	},
}

// CSS describes the CSS property dataset. Property names are
// lowercase with hyphens; suggestions use edit distance rather than
// the positional ratio.
var CSS = Schema{
	Language:           "css",
	EntriesKey:         "properties",
	ChildrenKey:        "values",
	EntryTerm:          "property",
	ChildTerm:          "value",
	TotalCategoriesKey: "totalCategories",
	TotalEntriesKey:    "totalProperties",
	TotalKeywordsKey:   "totalKeywords",
	TotalChildrenKey:   "totalValues",
	FoldCase:           false,
	EntryNameOK:        isLowerName,
	NamingHint:         "property names should be lowercase",
	Suggest: SuggestConfig{
		Metric:      MetricLevenshtein,
		MaxDistance: 3,
		Limit:       5,
	},
}

// HTML describes the HTML element dataset. Tag and attribute names
// are case-insensitive, so every lookup folds to lowercase.
var HTML = Schema{
	Language:           "html",
	EntriesKey:         "elements",
	ChildrenKey:        "attributes",
	EntryTerm:          "element",
	ChildTerm:          "attribute",
	TotalCategoriesKey: "totalCategories",
	TotalEntriesKey:    "totalElements",
	TotalKeywordsKey:   "totalKeywords",
	TotalChildrenKey:   "totalAttributes",
	FoldCase:           true,
	EntryNameOK:        isLowerName,
	NamingHint:         "element names should be lowercase",
	Suggest: SuggestConfig{
		Metric:    MetricPositional,
		Threshold: 0.6,
		Limit:     3,
	},
}

// Schemas lists the supported datasets keyed by language identifier.
var Schemas = map[string]Schema{
	JavaScript.Language: JavaScript,
	CSS.Language:        CSS,
	HTML.Language:       HTML,
}

func isLowerName(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return len(name) > 0
}

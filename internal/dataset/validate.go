package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Finding is a single validation message with a JSON-path-ish
// location and a stable code.
type Finding struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (f Finding) String() string {
	if f.Path != "" {
		return fmt.Sprintf("%s: %s", f.Path, f.Message)
	}
	return f.Message
}

// Result is the outcome of a consistency run. Errors mean the dataset
// is not usable; Warnings are advisory and never fail validation.
type Result struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Summary  string    `json:"summary"`
}

func (r *Result) errorf(path, code, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(path, code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

var versionPattern = regexp.MustCompile(`^v?\d+\.\d+(\.\d+)?$`)

// minDescriptionLen is the shortest description that avoids the
// short-description warning.
const minDescriptionLen = 10

// Validate runs every rule group against a loaded store and collects
// findings. The groups are independent and read-only; they are
// sequenced for readable output, not for dependency. Shape problems
// in the data never panic here: everything becomes a finding.
func Validate(s *Store) Result {
	r := Result{Errors: []Finding{}, Warnings: []Finding{}}

	checkStructure(s, &r)
	checkCategories(s, &r)
	checkEntries(s, &r)
	checkKeywords(s, &r)
	checkMetadata(s, &r)
	checkCrossReferences(s, &r)

	r.Valid = len(r.Errors) == 0
	if r.Valid {
		r.Summary = fmt.Sprintf("%s dataset is consistent (%d warning(s))", s.Schema.Language, len(r.Warnings))
	} else {
		r.Summary = fmt.Sprintf("%s dataset validation failed with %d error(s), %d warning(s)",
			s.Schema.Language, len(r.Errors), len(r.Warnings))
	}
	return r
}

// checkStructure verifies that every required top-level section is
// present and map-shaped.
func checkStructure(s *Store, r *Result) {
	sections := []string{"categories", s.Schema.EntriesKey, "keywords", "metadata"}
	for _, section := range sections {
		raw, ok := s.doc[section]
		if !ok {
			r.errorf("$."+section, "MISSING_SECTION", "missing required section %q", section)
			continue
		}
		if _, ok := asMap(raw); !ok {
			r.errorf("$."+section, "WRONG_TYPE", "section %q must be an object", section)
		}
	}
}

// checkCategories applies the per-category rules: a name field that
// matches the map key, plus the required substructure maps. A
// name/key mismatch usually means copy-paste corruption during
// dataset generation.
func checkCategories(s *Store, r *Result) {
	cats, ok := asMap(s.doc["categories"])
	if !ok {
		return
	}
	for _, key := range sortedKeys(cats) {
		path := "$.categories." + key
		cat, ok := asMap(cats[key])
		if !ok {
			r.errorf(path, "WRONG_TYPE", "category %q must be an object", key)
			continue
		}
		name, hasName := cat["name"].(string)
		if !hasName {
			r.errorf(path, "MISSING_FIELD", "category %q is missing required field %q", key, "name")
		} else if name != key {
			r.errorf(path, "NAME_KEY_MISMATCH", "category name %q does not match its key %q", name, key)
		}
		for _, field := range []string{"subcategories", s.Schema.EntriesKey, "keywords"} {
			if _, ok := cat[field]; !ok {
				r.errorf(path, "MISSING_FIELD", "category %q is missing required field %q", key, field)
			}
		}
	}
}

// checkEntries applies the per-entry rules: required fields, name/key
// agreement, the naming convention, description quality, member
// validation, and category resolution.
func checkEntries(s *Store, r *Result) {
	entries, ok := asMap(s.doc[s.Schema.EntriesKey])
	if !ok {
		return
	}
	for _, key := range sortedKeys(entries) {
		path := fmt.Sprintf("$.%s.%s", s.Schema.EntriesKey, key)
		obj, ok := asMap(entries[key])
		if !ok {
			r.errorf(path, "WRONG_TYPE", "%s %q must be an object", s.Schema.EntryTerm, key)
			continue
		}

		name, hasName := obj["name"].(string)
		if !hasName {
			r.errorf(path, "MISSING_FIELD", "%s %q is missing required field %q", s.Schema.EntryTerm, key, "name")
		} else if name != key {
			r.errorf(path, "NAME_KEY_MISMATCH", "%s name %q does not match its key %q", s.Schema.EntryTerm, name, key)
		}
		if hasName && s.Schema.EntryNameOK != nil && !s.Schema.EntryNameOK(name) {
			r.warnf(path, "NAMING_CONVENTION", "%s %q: %s", s.Schema.EntryTerm, name, s.Schema.NamingHint)
		}

		checkDescription(obj, path, s.Schema.EntryTerm, key, r)

		if s.Schema.ChildrenKey != "" {
			checkMembers(s, obj[s.Schema.ChildrenKey], path+"."+s.Schema.ChildrenKey, false, r)
		}
		if s.Schema.StaticChildrenKey != "" {
			checkMembers(s, obj[s.Schema.StaticChildrenKey], path+"."+s.Schema.StaticChildrenKey, true, r)
		}

		checkCategoryRef(s, obj, path, s.Schema.EntryTerm, key, r)
	}
}

// checkMembers validates one member map (children or static
// children). For static members the explicit static marker must agree
// with the map the member lives in; disagreement is advisory since
// map membership wins at query time.
func checkMembers(s *Store, raw any, path string, wantStatic bool, r *Result) {
	members, ok := asMap(raw)
	if !ok {
		return
	}
	for _, key := range sortedKeys(members) {
		memberPath := path + "." + key
		member, ok := asMap(members[key])
		if !ok {
			r.errorf(memberPath, "WRONG_TYPE", "%s %q must be an object", s.Schema.ChildTerm, key)
			continue
		}
		name, hasName := member["name"].(string)
		if !hasName {
			r.errorf(memberPath, "MISSING_FIELD", "%s %q is missing required field %q", s.Schema.ChildTerm, key, "name")
		} else if name != key {
			r.errorf(memberPath, "NAME_KEY_MISMATCH", "%s name %q does not match its key %q", s.Schema.ChildTerm, name, key)
		}
		if _, ok := member["description"]; !ok {
			r.errorf(memberPath, "MISSING_FIELD", "%s %q is missing required field %q", s.Schema.ChildTerm, key, "description")
		}
		if wantStatic {
			static, _ := member["static"].(bool)
			if !static {
				r.warnf(memberPath, "STATIC_FLAG_MISMATCH",
					"%s %q lives in %q but is not marked static", s.Schema.ChildTerm, key, s.Schema.StaticChildrenKey)
			}
		}
	}
}

// checkKeywords mirrors the entry rules for standalone keywords. The
// naming convention is inverted: keywords are expected to be
// all-lowercase. Attributes are validated like children minus the
// static-flag rule.
func checkKeywords(s *Store, r *Result) {
	keywords, ok := asMap(s.doc["keywords"])
	if !ok {
		return
	}
	for _, key := range sortedKeys(keywords) {
		path := "$.keywords." + key
		obj, ok := asMap(keywords[key])
		if !ok {
			r.errorf(path, "WRONG_TYPE", "keyword %q must be an object", key)
			continue
		}

		name, hasName := obj["name"].(string)
		if !hasName {
			r.errorf(path, "MISSING_FIELD", "keyword %q is missing required field %q", key, "name")
		} else if name != key {
			r.errorf(path, "NAME_KEY_MISMATCH", "keyword name %q does not match its key %q", name, key)
		}
		if hasName && !isLowerName(name) {
			r.warnf(path, "NAMING_CONVENTION", "keyword %q should be all lowercase", name)
		}

		checkDescription(obj, path, "keyword", key, r)
		checkMembers(s, obj["attributes"], path+".attributes", false, r)
		checkCategoryRef(s, obj, path, "keyword", key, r)
	}
}

// checkMetadata recomputes every derived total from the live
// collections and compares it against the stored claim. The member
// total sums children and static children across all entries;
// informational property maps do not count.
func checkMetadata(s *Store, r *Result) {
	meta, ok := asMap(s.doc["metadata"])
	if !ok {
		return
	}

	totalMembers := 0
	for _, e := range s.Entries {
		totalMembers += e.MemberCount()
	}
	totals := []struct {
		key  string
		want int
	}{
		{s.Schema.TotalCategoriesKey, len(s.Categories)},
		{s.Schema.TotalEntriesKey, len(s.Entries)},
		{s.Schema.TotalKeywordsKey, len(s.Keywords)},
		{s.Schema.TotalChildrenKey, totalMembers},
	}
	for _, total := range totals {
		path := "$.metadata." + total.key
		raw, ok := meta[total.key]
		if !ok {
			r.errorf(path, "MISSING_FIELD", "metadata is missing required field %q", total.key)
			continue
		}
		claimed, ok := raw.(float64)
		if !ok {
			r.errorf(path, "WRONG_TYPE", "metadata field %q must be a number", total.key)
			continue
		}
		if int(claimed) != total.want {
			r.errorf(path, "COUNT_MISMATCH", "metadata claims %s=%d but actual count is %d",
				total.key, int(claimed), total.want)
		}
	}

	if version, ok := meta["version"].(string); ok && !versionPattern.MatchString(version) {
		r.warnf("$.metadata.version", "VERSION_FORMAT", "version %q does not look like a semantic version", version)
	}
	if updated, ok := meta["lastUpdated"].(string); ok {
		if !parseableDate(updated) {
			r.errorf("$.metadata.lastUpdated", "INVALID_DATE", "lastUpdated %q is not a valid date", updated)
		}
	}
}

// checkCrossReferences ties the collections together: category member
// references must resolve globally, an entry's combined member
// namespace must be duplicate-free, and entries with no members at
// all are flagged as incomplete.
func checkCrossReferences(s *Store, r *Result) {
	for _, key := range sortedKeys(s.Categories) {
		cat := s.Categories[key]
		for _, member := range sortedKeys(cat.EntryMembers) {
			if _, ok := s.Entries[member]; !ok {
				r.errorf("$.categories."+key, "DANGLING_REFERENCE",
					"category %q references unknown %s %q", key, s.Schema.EntryTerm, member)
			}
		}
		for _, member := range sortedKeys(cat.KeywordMembers) {
			if _, ok := s.Keywords[member]; !ok {
				r.errorf("$.categories."+key, "DANGLING_REFERENCE",
					"category %q references unknown keyword %q", key, member)
			}
		}
	}

	for _, key := range sortedKeys(s.Entries) {
		e := s.Entries[key]
		path := fmt.Sprintf("$.%s.%s", s.Schema.EntriesKey, key)

		var dups []string
		for name := range e.Children {
			if _, ok := e.StaticChildren[name]; ok {
				dups = append(dups, name)
			}
		}
		if len(dups) > 0 {
			sort.Strings(dups)
			r.errorf(path, "DUPLICATE_MEMBER",
				"%s %q declares the same %s name in both member maps: %v", s.Schema.EntryTerm, key, s.Schema.ChildTerm, dups)
		}

		if e.MemberCount() == 0 && len(e.Properties) == 0 {
			r.warnf(path, "EMPTY_ENTRY", "%s %q has no %ss or properties", s.Schema.EntryTerm, key, s.Schema.ChildTerm)
		}
	}
}

func checkDescription(obj map[string]any, path, term, key string, r *Result) {
	desc, ok := obj["description"].(string)
	if !ok {
		r.errorf(path, "MISSING_FIELD", "%s %q is missing required field %q", term, key, "description")
		return
	}
	if len(desc) < minDescriptionLen {
		r.warnf(path, "SHORT_DESCRIPTION", "%s %q has a description shorter than %d characters", term, key, minDescriptionLen)
	}
}

func checkCategoryRef(s *Store, obj map[string]any, path, term, key string, r *Result) {
	category, ok := obj["category"].(string)
	if !ok || category == "" {
		return
	}
	if _, found := s.Categories[category]; !found {
		r.errorf(path, "UNKNOWN_CATEGORY", "%s %q references unknown category %q", term, key, category)
	}
}

func parseableDate(value string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// Map iteration order is random; findings must be stably ordered so
// repeated runs produce identical output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

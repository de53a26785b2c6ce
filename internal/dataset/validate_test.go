package dataset

import (
	"encoding/json"
	"strings"
	"testing"
)

// validJSDoc builds a small self-consistent JavaScript dataset. Tests
// corrupt a copy of it to trigger individual rules.
func validJSDoc() map[string]any {
	return map[string]any{
		"categories": map[string]any{
			"fundamentals": map[string]any{
				"name":          "fundamentals",
				"subcategories": map[string]any{},
				"objects": map[string]any{
					"Array":   "Indexed list collection",
					"Promise": "Asynchronous result placeholder",
				},
				"keywords": map[string]any{
					"const": "Block-scoped constant binding",
				},
			},
		},
		"objects": map[string]any{
			"Array": map[string]any{
				"name":        "Array",
				"description": "Indexed list collection of values",
				"category":    "fundamentals",
				"methods": map[string]any{
					"map":    map[string]any{"name": "map", "description": "Transforms every element through a callback"},
					"filter": map[string]any{"name": "filter", "description": "Keeps elements matching a predicate"},
				},
				"staticMethods": map[string]any{
					"isArray": map[string]any{"name": "isArray", "description": "Reports whether a value is an array", "static": true},
				},
				"properties": map[string]any{
					"length": map[string]any{"name": "length", "description": "Number of elements currently held"},
				},
			},
			"Promise": map[string]any{
				"name":        "Promise",
				"description": "Placeholder for an eventual asynchronous result",
				"category":    "fundamentals",
				"methods": map[string]any{
					"then": map[string]any{"name": "then", "description": "Chains a fulfillment handler"},
				},
			},
		},
		"keywords": map[string]any{
			"const": map[string]any{
				"name":        "const",
				"description": "Declares a block-scoped constant binding",
				"category":    "fundamentals",
				"attributes":  map[string]any{},
			},
		},
		"metadata": map[string]any{
			"version":         "1.0.0",
			"lastUpdated":     "2026-01-15",
			"totalCategories": float64(1),
			"totalObjects":    float64(2),
			"totalKeywords":   float64(1),
			"totalMethods":    float64(4),
		},
	}
}

func parseDoc(t *testing.T, schema Schema, doc map[string]any) *Store {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	store, err := Parse(schema, data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return store
}

func findingsWithCode(findings []Finding, code string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

func TestValidateCleanDataset(t *testing.T) {
	store := parseDoc(t, JavaScript, validJSDoc())
	result := Validate(store)

	if !result.Valid {
		t.Fatalf("expected valid dataset, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings, got %v", result.Warnings)
	}
	if !strings.Contains(result.Summary, "consistent") {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestValidateMissingSection(t *testing.T) {
	doc := validJSDoc()
	delete(doc, "keywords")
	// The category still references the keyword, so a dangling
	// reference follows the missing section.
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if result.Valid {
		t.Fatal("expected invalid dataset")
	}
	if len(findingsWithCode(result.Errors, "MISSING_SECTION")) != 1 {
		t.Errorf("expected one MISSING_SECTION error, got %v", result.Errors)
	}
	if len(findingsWithCode(result.Errors, "DANGLING_REFERENCE")) != 1 {
		t.Errorf("expected one DANGLING_REFERENCE error, got %v", result.Errors)
	}
}

func TestValidateNameKeyMismatch(t *testing.T) {
	doc := validJSDoc()
	doc["objects"].(map[string]any)["Array"].(map[string]any)["name"] = "Arrya"
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	mismatches := findingsWithCode(result.Errors, "NAME_KEY_MISMATCH")
	if len(mismatches) != 1 {
		t.Fatalf("expected exactly one NAME_KEY_MISMATCH, got %v", result.Errors)
	}
	if !strings.Contains(mismatches[0].Message, "Arrya") || !strings.Contains(mismatches[0].Message, "Array") {
		t.Errorf("mismatch message should cite both names: %q", mismatches[0].Message)
	}
}

func TestValidateUnknownCategory(t *testing.T) {
	doc := validJSDoc()
	doc["objects"].(map[string]any)["Promise"].(map[string]any)["category"] = "nonexistent"
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if len(findingsWithCode(result.Errors, "UNKNOWN_CATEGORY")) != 1 {
		t.Errorf("expected one UNKNOWN_CATEGORY error, got %v", result.Errors)
	}
}

func TestValidateDuplicateMember(t *testing.T) {
	doc := validJSDoc()
	arr := doc["objects"].(map[string]any)["Array"].(map[string]any)
	arr["staticMethods"].(map[string]any)["map"] = map[string]any{
		"name": "map", "description": "Duplicate of the instance method", "static": true,
	}
	// Keep the member total reconciled so only the duplicate fires.
	doc["metadata"].(map[string]any)["totalMethods"] = float64(5)
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	dups := findingsWithCode(result.Errors, "DUPLICATE_MEMBER")
	if len(dups) != 1 {
		t.Fatalf("expected one DUPLICATE_MEMBER error, got %v", result.Errors)
	}
	if !strings.Contains(dups[0].Message, "map") {
		t.Errorf("duplicate message should name the member: %q", dups[0].Message)
	}
}

func TestValidateCountMismatch(t *testing.T) {
	doc := validJSDoc()
	doc["metadata"].(map[string]any)["totalObjects"] = float64(99)
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	mismatches := findingsWithCode(result.Errors, "COUNT_MISMATCH")
	if len(mismatches) != 1 {
		t.Fatalf("expected one COUNT_MISMATCH error, got %v", result.Errors)
	}
	msg := mismatches[0].Message
	if !strings.Contains(msg, "totalObjects=99") || !strings.Contains(msg, "actual count is 2") {
		t.Errorf("count mismatch should cite claimed and actual values: %q", msg)
	}
}

func TestValidateMemberTotalSumsBothMaps(t *testing.T) {
	// totalMethods counts methods plus staticMethods across objects:
	// Array has 2+1, Promise has 1, so 4 reconciles and 3 does not.
	doc := validJSDoc()
	doc["metadata"].(map[string]any)["totalMethods"] = float64(3)
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if len(findingsWithCode(result.Errors, "COUNT_MISMATCH")) != 1 {
		t.Errorf("expected totalMethods mismatch, got %v", result.Errors)
	}
}

func TestValidateNamingConventionWarning(t *testing.T) {
	doc := validJSDoc()
	objects := doc["objects"].(map[string]any)
	objects["weakref"] = map[string]any{
		"name":        "weakref",
		"description": "Holds a weak reference to another object",
		"category":    "fundamentals",
		"methods": map[string]any{
			"deref": map[string]any{"name": "deref", "description": "Returns the referent if still alive"},
		},
	}
	meta := doc["metadata"].(map[string]any)
	meta["totalObjects"] = float64(3)
	meta["totalMethods"] = float64(5)
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if !result.Valid {
		t.Fatalf("convention violations must stay warnings, got errors: %v", result.Errors)
	}
	if len(findingsWithCode(result.Warnings, "NAMING_CONVENTION")) != 1 {
		t.Errorf("expected one NAMING_CONVENTION warning, got %v", result.Warnings)
	}
}

func TestValidateStaticFlagMismatch(t *testing.T) {
	doc := validJSDoc()
	arr := doc["objects"].(map[string]any)["Array"].(map[string]any)
	arr["staticMethods"].(map[string]any)["isArray"].(map[string]any)["static"] = false
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if !result.Valid {
		t.Fatalf("static flag disagreement must stay a warning, got errors: %v", result.Errors)
	}
	if len(findingsWithCode(result.Warnings, "STATIC_FLAG_MISMATCH")) != 1 {
		t.Errorf("expected one STATIC_FLAG_MISMATCH warning, got %v", result.Warnings)
	}
}

func TestValidateEmptyEntryWarning(t *testing.T) {
	doc := validJSDoc()
	objects := doc["objects"].(map[string]any)
	objects["Reflect"] = map[string]any{
		"name":        "Reflect",
		"description": "Namespace for interceptable runtime operations",
		"category":    "fundamentals",
	}
	doc["metadata"].(map[string]any)["totalObjects"] = float64(3)
	store := parseDoc(t, JavaScript, doc)
	result := Validate(store)

	if len(findingsWithCode(result.Warnings, "EMPTY_ENTRY")) != 1 {
		t.Errorf("expected one EMPTY_ENTRY warning, got %v", result.Warnings)
	}
}

func TestValidateMetadataFormats(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		updated   string
		wantError string
		wantWarn  string
	}{
		{"rfc3339 date", "1.0.0", "2026-01-15T10:00:00Z", "", ""},
		{"plain date", "v2.1", "2026-01-15", "", ""},
		{"bad date", "1.0.0", "last tuesday", "INVALID_DATE", ""},
		{"bad version", "release-7", "2026-01-15", "", "VERSION_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validJSDoc()
			meta := doc["metadata"].(map[string]any)
			meta["version"] = tt.version
			meta["lastUpdated"] = tt.updated
			result := Validate(parseDoc(t, JavaScript, doc))

			if tt.wantError == "" && !result.Valid {
				t.Fatalf("expected valid dataset, got %v", result.Errors)
			}
			if tt.wantError != "" && len(findingsWithCode(result.Errors, tt.wantError)) != 1 {
				t.Errorf("expected %s error, got %v", tt.wantError, result.Errors)
			}
			if tt.wantWarn != "" && len(findingsWithCode(result.Warnings, tt.wantWarn)) != 1 {
				t.Errorf("expected %s warning, got %v", tt.wantWarn, result.Warnings)
			}
		})
	}
}

func TestValidateShortDescription(t *testing.T) {
	doc := validJSDoc()
	doc["objects"].(map[string]any)["Promise"].(map[string]any)["description"] = "short"
	result := Validate(parseDoc(t, JavaScript, doc))

	if !result.Valid {
		t.Fatalf("short descriptions must stay warnings, got errors: %v", result.Errors)
	}
	if len(findingsWithCode(result.Warnings, "SHORT_DESCRIPTION")) != 1 {
		t.Errorf("expected one SHORT_DESCRIPTION warning, got %v", result.Warnings)
	}
}

func TestValidateDeterministicOrder(t *testing.T) {
	doc := validJSDoc()
	delete(doc["objects"].(map[string]any)["Array"].(map[string]any), "name")
	delete(doc["objects"].(map[string]any)["Promise"].(map[string]any), "name")

	first := Validate(parseDoc(t, JavaScript, doc))
	for i := 0; i < 5; i++ {
		again := Validate(parseDoc(t, JavaScript, doc))
		if len(again.Errors) != len(first.Errors) {
			t.Fatalf("finding count changed between runs: %d vs %d", len(first.Errors), len(again.Errors))
		}
		for j := range again.Errors {
			if again.Errors[j] != first.Errors[j] {
				t.Fatalf("finding order changed between runs at %d: %v vs %v", j, first.Errors[j], again.Errors[j])
			}
		}
	}
}

package dataset

import (
	"reflect"
	"testing"
)

func TestPositionalRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"array", "array", 1.0},
		{"", "array", 0},
		{"array", "", 0},
		{"flatmix", "flatmap", 5.0 / 7.0},
		{"map", "mop", 2.0 / 3.0},
		{"abc", "abcdef", 3.0 / 6.0},
		{"xyz", "abc", 0},
	}

	for _, tt := range tests {
		if got := positionalRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("positionalRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"color", "color", 0},
		{"color", "colour", 1},
		{"colr", "color", 1},
		{"margin", "margon", 1},
		{"display", "", 7},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestPositional(t *testing.T) {
	candidates := []string{"map", "filter", "flatMap", "forEach", "flat"}
	cfg := SuggestConfig{Metric: MetricPositional, Threshold: 0.5, Limit: 5}

	got := suggest("flatMix", candidates, cfg)
	if len(got) == 0 || got[0] != "flatMap" {
		t.Errorf("suggest(flatMix) = %v, want flatMap first", got)
	}
	for _, s := range got {
		if s == "forEach" {
			t.Errorf("forEach should score below the threshold, got %v", got)
		}
	}
}

func TestSuggestCaseInsensitiveScoring(t *testing.T) {
	cfg := SuggestConfig{Metric: MetricPositional, Threshold: 0.5, Limit: 5}
	got := suggest("array", []string{"Array", "ArrayBuffer"}, cfg)
	if len(got) == 0 || got[0] != "Array" {
		t.Errorf("suggest(array) = %v, want Array first", got)
	}
}

func TestSuggestLevenshtein(t *testing.T) {
	candidates := []string{"color", "display", "margin", "padding", "font-size"}
	cfg := SuggestConfig{Metric: MetricLevenshtein, MaxDistance: 3, Limit: 5}

	got := suggest("colr", candidates, cfg)
	if len(got) == 0 || got[0] != "color" {
		t.Errorf("suggest(colr) = %v, want color first", got)
	}
	for _, s := range got {
		if s == "font-size" {
			t.Errorf("font-size is more than 3 edits away, got %v", got)
		}
	}
}

func TestSuggestLimitAndTieBreak(t *testing.T) {
	// All candidates are one edit away, so ordering falls back to
	// the lexicographic tie break and the limit caps the output.
	candidates := []string{"colob", "colod", "coloa", "coloc"}
	cfg := SuggestConfig{Metric: MetricLevenshtein, MaxDistance: 3, Limit: 3}

	got := suggest("color", candidates, cfg)
	want := []string{"coloa", "colob", "coloc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggest() = %v, want %v", got, want)
	}
}

func TestSuggestNoMatches(t *testing.T) {
	cfg := SuggestConfig{Metric: MetricPositional, Threshold: 0.6, Limit: 3}
	if got := suggest("zzzzzz", []string{"div", "span", "section"}, cfg); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

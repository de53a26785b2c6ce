package dataset

import (
	"fmt"
	"regexp"
)

// syntaxCategories pattern-matches known JS syntax families. This is
// keyword spotting, not parsing; a category is reported when any of
// its markers appears in the snippet.
var syntaxCategories = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"declarations", regexp.MustCompile(`\b(var|let|const|function|class)\b`)},
	{"control-structures", regexp.MustCompile(`\b(if|else|for|while|switch|case|break|continue|return)\b`)},
	{"modules", regexp.MustCompile(`\b(import|export)\b`)},
	{"async", regexp.MustCompile(`\b(async|await)\b|\bPromise\b`)},
	{"error-handling", regexp.MustCompile(`\b(try|catch|finally|throw)\b`)},
}

// SyntaxReport is the outcome of a snippet sketch-check.
type SyntaxReport struct {
	Categories []string `json:"categories"`
	Errors     []string `json:"errors"`
	Balanced   bool     `json:"balanced"`
}

// CheckSyntax runs the shallow heuristic check over a JS snippet: it
// reports which syntax categories appear and whether brackets,
// parens, and braces balance. It does not tokenize; brackets inside
// string literals count like any other.
func CheckSyntax(snippet string) SyntaxReport {
	report := SyntaxReport{Categories: []string{}, Errors: []string{}}

	for _, category := range syntaxCategories {
		if category.pattern.MatchString(snippet) {
			report.Categories = append(report.Categories, category.name)
		}
	}

	closers := map[byte]byte{'(': ')', '[': ']', '{': '}'}
	type open struct {
		expect byte
		pos    int
	}
	var stack []open
	for i := 0; i < len(snippet); i++ {
		c := snippet[i]
		if expect, ok := closers[c]; ok {
			stack = append(stack, open{expect: expect, pos: i})
			continue
		}
		if c == ')' || c == ']' || c == '}' {
			if len(stack) == 0 {
				report.Errors = append(report.Errors, fmt.Sprintf("unexpected %q at position %d", string(c), i))
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.expect != c {
				report.Errors = append(report.Errors,
					fmt.Sprintf("mismatched %q at position %d, expected %q", string(c), i, string(top.expect)))
			}
		}
	}
	for _, unclosed := range stack {
		report.Errors = append(report.Errors, fmt.Sprintf("unclosed bracket opened at position %d", unclosed.pos))
	}

	report.Balanced = len(report.Errors) == 0
	return report
}

// Package extract scrapes HTML/CSS/JS references out of a document
// with regular expressions. It is deliberately not a parser: the
// consistency engine consumes only the References record, so a real
// parser can replace this package without touching the core contract.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	idAttrPattern    = regexp.MustCompile(`\bid\s*=\s*["']([^"']+)["']`)
	classAttrPattern = regexp.MustCompile(`\bclass\s*=\s*["']([^"']+)["']`)
	tagPattern       = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)[\s>/]`)
	domIDPattern     = regexp.MustCompile(`getElementById\s*\(\s*["']([^"']+)["']\s*\)`)
	selectorPattern  = regexp.MustCompile(`querySelector(?:All)?\s*\(\s*["']#([A-Za-z][\w-]*)["']\s*\)`)
	styleTagPattern  = regexp.MustCompile(`(?s)<style[^>]*>(.*?)</style>`)
	cssPropPattern   = regexp.MustCompile(`(?m)^\s*([a-z-]+)\s*:`)
)

// References is everything the cross-reference composer needs from a
// document: declared ids and classes, DOM id lookups embedded in
// scripts, tag names, and CSS property names from style blocks.
type References struct {
	IDs           []string `json:"ids"`
	Classes       []string `json:"classes"`
	DOMCalls      []string `json:"domCalls"`
	Tags          []string `json:"tags"`
	CSSProperties []string `json:"cssProperties"`
}

// Scan extracts references from a document. Results are deduplicated
// and sorted; tag names are folded to lowercase.
func Scan(doc string) References {
	refs := References{
		IDs:           captures(idAttrPattern, doc, false),
		Classes:       classNames(doc),
		Tags:          captures(tagPattern, doc, true),
		CSSProperties: cssProperties(doc),
	}

	calls := append(captures(domIDPattern, doc, false), captures(selectorPattern, doc, false)...)
	refs.DOMCalls = dedupe(calls)
	return refs
}

func captures(pattern *regexp.Regexp, doc string, fold bool) []string {
	var out []string
	for _, m := range pattern.FindAllStringSubmatch(doc, -1) {
		value := m[1]
		if fold {
			value = strings.ToLower(value)
		}
		out = append(out, value)
	}
	return dedupe(out)
}

// classNames splits multi-class attribute values.
func classNames(doc string) []string {
	var out []string
	for _, m := range classAttrPattern.FindAllStringSubmatch(doc, -1) {
		out = append(out, strings.Fields(m[1])...)
	}
	return dedupe(out)
}

// cssProperties scans declaration blocks inside <style> tags only;
// inline style attributes are out of reach for this heuristic.
func cssProperties(doc string) []string {
	var out []string
	for _, style := range styleTagPattern.FindAllStringSubmatch(doc, -1) {
		for _, m := range cssPropPattern.FindAllStringSubmatch(style[1], -1) {
			out = append(out, m[1])
		}
	}
	return dedupe(out)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

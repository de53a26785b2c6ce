package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webref/mcp-server/internal/dataset"
	"github.com/webref/mcp-server/internal/extract"
)

// CrossCheckDocumentInput defines input for the cross_check_document tool.
type CrossCheckDocumentInput struct {
	Document string `json:"document,omitempty" jsonschema:"HTML document content to check"`
	Path     string `json:"path,omitempty" jsonschema:"Path to an HTML document; alternative to document"`
}

// CrossCheckDocumentOutput defines output for the cross_check_document tool.
type CrossCheckDocumentOutput struct {
	Valid      bool               `json:"valid"`
	Errors     []dataset.Finding  `json:"errors"`
	Warnings   []dataset.Finding  `json:"warnings"`
	References extract.References `json:"references"`
	Summary    string             `json:"summary"`
}

// CrossCheckDocument checks a document's internal consistency against
// the reference datasets: DOM id lookups in scripts must resolve to an
// id declared in the markup, tag names must exist in the HTML dataset,
// and style-block property names must exist in the CSS dataset.
func CrossCheckDocument(ctx context.Context, req *mcp.CallToolRequest, input CrossCheckDocumentInput) (*mcp.CallToolResult, CrossCheckDocumentOutput, error) {
	doc := input.Document
	if doc == "" && input.Path != "" {
		data, err := os.ReadFile(input.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, CrossCheckDocumentOutput{}, fmt.Errorf("document not found: %s", input.Path)
			}
			return nil, CrossCheckDocumentOutput{}, fmt.Errorf("failed to read document %s: %w", input.Path, err)
		}
		doc = string(data)
	}
	if doc == "" {
		return nil, CrossCheckDocumentOutput{}, fmt.Errorf("either document or path must be provided")
	}

	htmlQ, err := Queries("html")
	if err != nil {
		return nil, CrossCheckDocumentOutput{}, err
	}
	cssQ, err := Queries("css")
	if err != nil {
		return nil, CrossCheckDocumentOutput{}, err
	}

	refs := extract.Scan(doc)
	out := CrossCheckDocumentOutput{
		Errors:     []dataset.Finding{},
		Warnings:   []dataset.Finding{},
		References: refs,
	}

	declared := make(map[string]struct{}, len(refs.IDs))
	for _, id := range refs.IDs {
		declared[id] = struct{}{}
	}
	referenced := make(map[string]struct{}, len(refs.DOMCalls))
	for _, id := range refs.DOMCalls {
		referenced[id] = struct{}{}
		if _, ok := declared[id]; !ok {
			out.Errors = append(out.Errors, dataset.Finding{
				Path:    "script",
				Message: fmt.Sprintf("DOM lookup targets id %q but no element declares it", id),
				Code:    "UNRESOLVED_DOM_ID",
			})
		}
	}
	for _, id := range refs.IDs {
		if _, ok := referenced[id]; !ok {
			out.Warnings = append(out.Warnings, dataset.Finding{
				Path:    "markup",
				Message: fmt.Sprintf("id %q is declared but never referenced by a DOM lookup", id),
				Code:    "UNREFERENCED_ID",
			})
		}
	}

	for _, tag := range refs.Tags {
		res, err := htmlQ.ExistsEntry(tag)
		if err != nil {
			return nil, CrossCheckDocumentOutput{}, err
		}
		if !res.Exists {
			out.Errors = append(out.Errors, dataset.Finding{
				Path:    "markup",
				Message: unknownMessage("element", tag, res.Suggestions),
				Code:    "UNKNOWN_ELEMENT",
			})
		}
	}

	for _, prop := range refs.CSSProperties {
		res, err := cssQ.ExistsEntry(prop)
		if err != nil {
			return nil, CrossCheckDocumentOutput{}, err
		}
		if !res.Exists {
			out.Errors = append(out.Errors, dataset.Finding{
				Path:    "style",
				Message: unknownMessage("CSS property", prop, res.Suggestions),
				Code:    "UNKNOWN_CSS_PROPERTY",
			})
		}
	}

	out.Valid = len(out.Errors) == 0
	if out.Valid {
		out.Summary = fmt.Sprintf("document is consistent: %d ids, %d tags, %d CSS properties checked, %d warning(s)",
			len(refs.IDs), len(refs.Tags), len(refs.CSSProperties), len(out.Warnings))
	} else {
		out.Summary = fmt.Sprintf("document has %d cross-reference error(s), %d warning(s)",
			len(out.Errors), len(out.Warnings))
	}
	return nil, out, nil
}

// unknownMessage formats a not-found message, appending suggestions
// when the fuzzy matcher produced any.
func unknownMessage(kind, name string, suggestions []string) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf("unknown %s %q", kind, name)
	}
	return fmt.Sprintf("unknown %s %q (did you mean %s?)", kind, name, strings.Join(suggestions, ", "))
}

// RegisterCrossRefTools registers the document cross-reference tool.
func RegisterCrossRefTools(server *mcp.Server) error {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "cross_check_document",
			Description: "Cross-check an HTML document against the reference datasets: script DOM id lookups must resolve to declared ids, tag names must be known HTML elements, and style-block properties must be known CSS properties. Returns errors, warnings, and the extracted references.",
		},
		CrossCheckDocument,
	)
	return nil
}

package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webref/mcp-server/internal/dataset"
)

// CheckSnippetSyntaxInput defines input for the check_snippet_syntax tool.
type CheckSnippetSyntaxInput struct {
	Snippet string `json:"snippet" jsonschema:"JavaScript snippet to check"`
}

// CheckSnippetSyntaxOutput defines output for the check_snippet_syntax tool.
type CheckSnippetSyntaxOutput struct {
	dataset.SyntaxReport
	Summary string `json:"summary"`
}

// CheckSnippetSyntax runs the shallow syntax heuristics over a JS
// snippet: bracket balance plus syntax-category spotting.
func CheckSnippetSyntax(ctx context.Context, req *mcp.CallToolRequest, input CheckSnippetSyntaxInput) (*mcp.CallToolResult, CheckSnippetSyntaxOutput, error) {
	if input.Snippet == "" {
		return nil, CheckSnippetSyntaxOutput{}, fmt.Errorf("snippet must not be empty")
	}

	report := dataset.CheckSyntax(input.Snippet)
	summary := fmt.Sprintf("snippet is balanced, %d syntax categories detected", len(report.Categories))
	if !report.Balanced {
		summary = fmt.Sprintf("snippet has %d bracket error(s)", len(report.Errors))
	}

	return nil, CheckSnippetSyntaxOutput{
		SyntaxReport: report,
		Summary:      summary,
	}, nil
}

// RegisterSyntaxTools registers the snippet syntax tool.
func RegisterSyntaxTools(server *mcp.Server) error {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "check_snippet_syntax",
			Description: "Run shallow syntax heuristics over a JavaScript snippet: bracket, paren, and brace balance plus detection of syntax families (declarations, control structures, modules, async, error handling). Not a parser.",
		},
		CheckSnippetSyntax,
	)
	return nil
}

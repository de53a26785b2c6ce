package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webref/mcp-server/internal/dataset"
)

// LookupEntryInput defines input for the lookup_entry tool.
type LookupEntryInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
	Name     string `json:"name" jsonschema:"Entry name to look up, e.g. Array, color, or div"`
	Keyword  bool   `json:"keyword,omitempty" jsonschema:"Look up in the keyword collection instead of the entry collection"`
}

// LookupEntryOutput defines output for the lookup_entry tool.
type LookupEntryOutput struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	dataset.EntryResult
}

// LookupEntry checks whether a named entry or keyword exists in a
// dataset and returns close-match suggestions when it does not.
func LookupEntry(ctx context.Context, req *mcp.CallToolRequest, input LookupEntryInput) (*mcp.CallToolResult, LookupEntryOutput, error) {
	q, err := Queries(input.Language)
	if err != nil {
		return nil, LookupEntryOutput{}, err
	}

	var res dataset.EntryResult
	if input.Keyword {
		res, err = q.ExistsKeyword(input.Name)
	} else {
		res, err = q.ExistsEntry(input.Name)
	}
	if err != nil {
		return nil, LookupEntryOutput{}, err
	}

	return nil, LookupEntryOutput{
		Language:    input.Language,
		Name:        input.Name,
		EntryResult: res,
	}, nil
}

// LookupMemberInput defines input for the lookup_member tool.
type LookupMemberInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
	Entry    string `json:"entry" jsonschema:"Owning entry name, e.g. Array or div"`
	Member   string `json:"member" jsonschema:"Member name to look up, e.g. map or href"`
}

// LookupMemberOutput defines output for the lookup_member tool.
type LookupMemberOutput struct {
	Language string `json:"language"`
	Entry    string `json:"entry"`
	Member   string `json:"member"`
	dataset.ChildResult
}

// LookupMember checks whether an entry owns a named member. When the
// entry itself is unknown the suggestions refer to entry names; when
// only the member is unknown they refer to the entry's member names.
func LookupMember(ctx context.Context, req *mcp.CallToolRequest, input LookupMemberInput) (*mcp.CallToolResult, LookupMemberOutput, error) {
	q, err := Queries(input.Language)
	if err != nil {
		return nil, LookupMemberOutput{}, err
	}

	res, err := q.ExistsChild(input.Entry, input.Member)
	if err != nil {
		return nil, LookupMemberOutput{}, err
	}

	return nil, LookupMemberOutput{
		Language:    input.Language,
		Entry:       input.Entry,
		Member:      input.Member,
		ChildResult: res,
	}, nil
}

// GetEntryInfoInput defines input for the get_entry_info tool.
type GetEntryInfoInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
	Name     string `json:"name" jsonschema:"Entry name to describe"`
	Member   string `json:"member,omitempty" jsonschema:"Optional member name; returns member detail instead of the entry summary"`
}

// GetEntryInfoOutput defines output for the get_entry_info tool.
type GetEntryInfoOutput struct {
	Language string             `json:"language"`
	Found    bool               `json:"found"`
	Entry    *dataset.EntryInfo `json:"entry,omitempty"`
	Member   *dataset.ChildInfo `json:"member,omitempty"`
}

// GetEntryInfo returns the full record for an entry, or for one of
// its members when a member name is given.
func GetEntryInfo(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInfoInput) (*mcp.CallToolResult, GetEntryInfoOutput, error) {
	q, err := Queries(input.Language)
	if err != nil {
		return nil, GetEntryInfoOutput{}, err
	}

	out := GetEntryInfoOutput{Language: input.Language}
	if input.Member != "" {
		info, err := q.ChildInfo(input.Name, input.Member)
		if err != nil {
			return nil, GetEntryInfoOutput{}, err
		}
		out.Found = info != nil
		out.Member = info
		return nil, out, nil
	}

	info, err := q.EntryInfo(input.Name)
	if err != nil {
		return nil, GetEntryInfoOutput{}, err
	}
	out.Found = info != nil
	out.Entry = info
	return nil, out, nil
}

// ListCategoriesInput defines input for the list_categories tool.
type ListCategoriesInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
}

// ListCategoriesOutput defines output for the list_categories tool.
type ListCategoriesOutput struct {
	Language   string                    `json:"language"`
	Total      int                       `json:"total"`
	Categories []dataset.CategorySummary `json:"categories"`
}

// ListCategories returns category summaries with member counts,
// sorted by name.
func ListCategories(ctx context.Context, req *mcp.CallToolRequest, input ListCategoriesInput) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	q, err := Queries(input.Language)
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	cats, err := q.ListCategories()
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	return nil, ListCategoriesOutput{
		Language:   input.Language,
		Total:      len(cats),
		Categories: cats,
	}, nil
}

// DatasetStatisticsInput defines input for the dataset_statistics tool.
type DatasetStatisticsInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
}

// DatasetStatisticsOutput defines output for the dataset_statistics tool.
type DatasetStatisticsOutput struct {
	Language string `json:"language"`
	dataset.Statistics
}

// DatasetStatistics reports the dataset's declared metadata next to
// counts recomputed from the live collections, so stale metadata is
// visible at a glance.
func DatasetStatistics(ctx context.Context, req *mcp.CallToolRequest, input DatasetStatisticsInput) (*mcp.CallToolResult, DatasetStatisticsOutput, error) {
	q, err := Queries(input.Language)
	if err != nil {
		return nil, DatasetStatisticsOutput{}, err
	}

	stats, err := q.Statistics()
	if err != nil {
		return nil, DatasetStatisticsOutput{}, err
	}

	return nil, DatasetStatisticsOutput{
		Language:   input.Language,
		Statistics: stats,
	}, nil
}

// RegisterLookupTools registers the dataset lookup tools with the MCP
// server.
func RegisterLookupTools(server *mcp.Server) error {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "lookup_entry",
			Description: "Check whether an entry (object, property, or element) or a keyword exists in a reference dataset. Returns the record when found, or ranked close-match suggestions when not.",
		},
		LookupEntry,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "lookup_member",
			Description: "Check whether an entry owns a named member (method, value, or attribute). Distinguishes an unknown entry from an unknown member and suggests close matches for either.",
		},
		LookupMember,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_entry_info",
			Description: "Return the full record for a dataset entry, including description, category, member counts, and member listings. Pass a member name to get that member's detail instead.",
		},
		GetEntryInfo,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_categories",
			Description: "List the categories of a reference dataset with entry, keyword, and subcategory counts.",
		},
		ListCategories,
	)
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "dataset_statistics",
			Description: "Report a dataset's declared metadata totals alongside counts recomputed from the live collections.",
		},
		DatasetStatistics,
	)
	return nil
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/webref/mcp-server/internal/dataset"
)

// ValidateDatasetInput defines input for the validate_dataset tool.
type ValidateDatasetInput struct {
	Language string `json:"language" jsonschema:"Dataset language: javascript, css, or html"`
	Path     string `json:"path,omitempty" jsonschema:"Optional path to a dataset file; defaults to the bundled dataset"`
}

// ValidateDatasetOutput defines output for the validate_dataset tool.
type ValidateDatasetOutput struct {
	Language string `json:"language"`
	Source   string `json:"source"` // "file" or "embedded"
	dataset.Result
}

// ValidateDataset runs the full consistency check over a dataset:
// JSON syntax first, then the structural JSON Schema, then the rule
// groups. A missing or unparseable file aborts the run with an error
// rather than producing partial findings.
func ValidateDataset(ctx context.Context, req *mcp.CallToolRequest, input ValidateDatasetInput) (*mcp.CallToolResult, ValidateDatasetOutput, error) {
	schema, ok := dataset.Schemas[input.Language]
	if !ok {
		return nil, ValidateDatasetOutput{}, fmt.Errorf("unsupported language %q (want one of javascript, css, html)", input.Language)
	}

	source := "embedded"
	var data []byte
	var err error
	if input.Path != "" {
		source = "file"
		data, err = os.ReadFile(input.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ValidateDatasetOutput{}, fmt.Errorf("dataset file not found: %s", input.Path)
			}
			return nil, ValidateDatasetOutput{}, fmt.Errorf("failed to read dataset file %s: %w", input.Path, err)
		}
	} else {
		data, err = DatasetBytes(input.Language)
		if err != nil {
			return nil, ValidateDatasetOutput{}, err
		}
	}

	result, err := RunValidation(schema, data)
	if err != nil {
		return nil, ValidateDatasetOutput{}, err
	}

	return nil, ValidateDatasetOutput{
		Language: input.Language,
		Source:   source,
		Result:   result,
	}, nil
}

// RunValidation is the shared validation pipeline used by the MCP
// tool and the CLI: structural schema findings first, then the
// consistency rule groups.
func RunValidation(schema dataset.Schema, data []byte) (dataset.Result, error) {
	store, err := dataset.Parse(schema, data)
	if err != nil {
		return dataset.Result{}, err
	}

	structural := validateAgainstSchema(schema.Language, data)
	result := dataset.Validate(store)
	if len(structural) > 0 {
		result.Errors = append(structural, result.Errors...)
		result.Valid = false
		result.Summary = fmt.Sprintf("%s dataset validation failed with %d error(s), %d warning(s)",
			schema.Language, len(result.Errors), len(result.Warnings))
	}
	return result, nil
}

// validateAgainstSchema checks the raw document against the bundled
// JSON Schema. Schema trouble (missing or uncompilable schema file)
// degrades to a skipped precheck rather than failing the run; the
// consistency validator still covers the required material.
func validateAgainstSchema(language string, data []byte) []dataset.Finding {
	schemaData, err := defaultDataProvider.ReadFile("schemas/" + language + ".schema.json")
	if err != nil {
		return nil
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaData)))
	if err != nil {
		return nil
	}
	schemaURL := "https://webref.dev/schema/" + language + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil // Parse already rejected malformed JSON
	}
	if err := compiled.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return schemaFindings(validationErr)
		}
		return []dataset.Finding{{Message: err.Error(), Code: "SCHEMA_VIOLATION"}}
	}
	return nil
}

// schemaFindings converts jsonschema validation errors to findings,
// walking nested causes recursively.
func schemaFindings(validationErr *jsonschema.ValidationError) []dataset.Finding {
	var findings []dataset.Finding

	path := "$"
	if len(validationErr.InstanceLocation) > 0 {
		path = "$." + strings.Join(validationErr.InstanceLocation, ".")
	}
	if len(validationErr.Causes) == 0 {
		findings = append(findings, dataset.Finding{
			Path:    path,
			Message: validationErr.Error(),
			Code:    "SCHEMA_VIOLATION",
		})
	}
	for _, cause := range validationErr.Causes {
		findings = append(findings, schemaFindings(cause)...)
	}
	return findings
}

// RegisterValidationTools registers the dataset validation tool with
// the MCP server.
func RegisterValidationTools(server *mcp.Server) error {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "validate_dataset",
			Description: "Run the consistency checklist over a reference dataset: structural completeness, name/key agreement, referential integrity between categories and entries, and derived-count reconciliation. Returns ordered error and warning findings; the dataset is valid only when the error list is empty.",
		},
		ValidateDataset,
	)
	return nil
}

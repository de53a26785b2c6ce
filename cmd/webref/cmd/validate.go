package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webref/mcp-server/internal/dataset"
	"github.com/webref/mcp-server/tools"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate <language>",
	Short: "Run the consistency checklist over a dataset",
	Long:  "Validate a reference dataset: structure, name/key agreement, referential integrity, and metadata reconciliation. Exits 1 when errors are found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	language := args[0]
	schema, ok := dataset.Schemas[language]
	if !ok {
		return fmt.Errorf("unsupported language %q (want one of javascript, css, html)", language)
	}

	var data []byte
	var err error
	if validateFile != "" {
		data, err = os.ReadFile(validateFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", validateFile, err)
		}
	} else {
		data, err = tools.DatasetBytes(language)
		if err != nil {
			return err
		}
	}

	result, err := tools.RunValidation(schema, data)
	if err != nil {
		return err
	}
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s dataset is invalid: %d error(s)", language, len(result.Errors))
	}
	return nil
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "dataset file to validate instead of the loaded dataset")
}

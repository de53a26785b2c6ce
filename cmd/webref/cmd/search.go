package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webref/mcp-server/tools"
)

var searchLanguage string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Substring search across dataset records",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	languages := []string{"css", "html", "javascript"}
	if searchLanguage != "" {
		languages = []string{searchLanguage}
	}

	total := 0
	results := make(map[string]any, len(languages))
	for _, language := range languages {
		q, err := tools.Queries(language)
		if err != nil {
			return err
		}
		res, err := q.Search(query)
		if err != nil {
			return err
		}
		results[language] = res
		total += res.Total()
	}

	if err := printJSON(results); err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("no matches for %q", query)
	}
	return nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchLanguage, "language", "l", "", "restrict to one dataset: javascript, css, or html")
}

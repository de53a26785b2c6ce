package cmd

import (
	"github.com/spf13/cobra"

	"github.com/webref/mcp-server/tools"
)

var statsCmd = &cobra.Command{
	Use:   "stats [language]",
	Short: "Print dataset statistics",
	Long:  "Print stored metadata alongside live counts for one dataset, or all three when no language is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	languages := []string{"css", "html", "javascript"}
	if len(args) == 1 {
		languages = args[:1]
	}

	out := make(map[string]any, len(languages))
	for _, language := range languages {
		q, err := tools.Queries(language)
		if err != nil {
			return err
		}
		stats, err := q.Statistics()
		if err != nil {
			return err
		}
		out[language] = stats
	}
	return printJSON(out)
}

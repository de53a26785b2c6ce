package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webref/mcp-server/internal/dataset"
	"github.com/webref/mcp-server/tools"
)

var (
	lookupMember  string
	lookupKeyword bool
	lookupInfo    bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <language> <name>",
	Short: "Look up an entry, keyword, or member in a dataset",
	Long:  "Check whether a name exists in a reference dataset. Exits 1 when the name is not found.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	language, name := args[0], args[1]
	q, err := tools.Queries(language)
	if err != nil {
		return err
	}

	if lookupMember != "" {
		res, err := q.ExistsChild(name, lookupMember)
		if err != nil {
			return err
		}
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Exists {
			return fmt.Errorf("%s.%s not found in %s dataset", name, lookupMember, language)
		}
		return nil
	}

	if lookupInfo {
		info, err := q.EntryInfo(name)
		if err != nil {
			return err
		}
		if info == nil {
			return fmt.Errorf("%s not found in %s dataset", name, language)
		}
		return printJSON(info)
	}

	var res dataset.EntryResult
	if lookupKeyword {
		res, err = q.ExistsKeyword(name)
	} else {
		res, err = q.ExistsEntry(name)
	}
	if err != nil {
		return err
	}
	if err := printJSON(res); err != nil {
		return err
	}
	if !res.Exists {
		return fmt.Errorf("%s not found in %s dataset", name, language)
	}
	return nil
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupMember, "member", "m", "", "look up a member of the named entry")
	lookupCmd.Flags().BoolVarP(&lookupKeyword, "keyword", "k", false, "look up in the keyword collection")
	lookupCmd.Flags().BoolVar(&lookupInfo, "info", false, "print the full entry record")
}

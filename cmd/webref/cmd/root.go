package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/webref/mcp-server/tools"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "webref",
	Short: "webref — web technology reference dataset toolkit",
	Long:  "Validate, query, and search the HTML, CSS, and JavaScript reference datasets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(os.Stderr)
		if dataDir != "" {
			if err := os.Setenv(tools.DataDirEnv, dataDir); err != nil {
				return err
			}
		}
		return tools.LoadDatasets()
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory of override dataset files (default: embedded datasets)")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
}

// webref is a command-line front end for the web reference datasets:
// consistency validation, entry lookup, search, and statistics.
package main

import (
	"os"

	"github.com/webref/mcp-server/cmd/webref/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

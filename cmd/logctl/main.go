// Command logctl drives the log plugin from the command line: emit single
// records, pipe JSON records from stdin, or print the effective config.
package main

import (
	"os"

	"github.com/Station-Manager/logplugin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

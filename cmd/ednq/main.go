// Command ednq reads, writes and formats EDN and extracts Datalog query
// literals from model output.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ednq/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

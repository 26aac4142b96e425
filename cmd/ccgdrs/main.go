// Command ccgdrs compiles CCG derivations into Discourse Representation
// Structures.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ccgdrs/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands print their own results; cobra errors (bad flags, bad
		// args) have not been shown yet.
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

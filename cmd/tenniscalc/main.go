// Command tenniscalc scores tennis matches and answers queries about them.
package main

import (
	"os"

	"github.com/roach88/tenniscalc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}

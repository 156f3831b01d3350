// Command irutils decodes, encodes and converts infrared remote codes.
package main

import (
	"os"

	"github.com/MicaelJarniac/ir-utils/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}

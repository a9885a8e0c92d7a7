package main

import (
	"fmt"
	"os"

	"github.com/promptq/promptq/internal/cli"
	"github.com/promptq/promptq/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		util.Exit(cli.ExitCode(err))
	}
}

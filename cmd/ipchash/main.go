package main

import (
	"os"

	"github.com/pipe-works/ipc/internal/cli"
)

var version = "0.1.0-dev"

func main() {
	if err := cli.Execute(cli.NewRootCommand(version)); err != nil {
		os.Exit(1)
	}
}

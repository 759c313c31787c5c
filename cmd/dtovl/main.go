package main

import (
	"os"

	"github.com/arthur-debert/dtovl/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCmd()))
}

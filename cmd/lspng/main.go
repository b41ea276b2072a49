package main

import (
	"os"

	"github.com/ysh86/lspng/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr))
}

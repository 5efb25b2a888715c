package main

import (
	"os"

	"github.com/lookerci/contentcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

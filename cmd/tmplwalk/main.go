package main

import (
	"os"

	"github.com/dshills/tmplwalk/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

package main

import (
	"os"

	"github.com/deltalint/deltalint/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

package main

import (
	"os"

	"github.com/ariel-frischer/overcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

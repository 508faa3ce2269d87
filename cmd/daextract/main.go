package main

import (
	"os"

	"github.com/planport/daextract/cmd/daextract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

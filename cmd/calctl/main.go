package main

import (
	"os"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		os.Exit(1)
	}
}

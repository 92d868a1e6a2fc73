package main

import (
	"os"

	"github.com/mcravey/makemefly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

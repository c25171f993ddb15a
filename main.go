package main

import (
	"os"

	"github.com/wikisage/wikisage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/zephyrtronium/crepl/cmd/crepl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"repo-link/cmd/repolink"
	"repo-link/helpers"
)

func main() {
	if err := run(); err != nil {
		helpers.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	return repolink.NewRootCmd().Execute()
}

// Package main is the entry point for the captainslog CLI.
package main

import (
	"os"

	"github.com/bashhack/captainslog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

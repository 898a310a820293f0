package main

import (
	"os"

	"github.com/cfwren/palimpsest/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

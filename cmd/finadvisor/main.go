package main

import (
	"os"

	"github.com/junhyuk/finadvisor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

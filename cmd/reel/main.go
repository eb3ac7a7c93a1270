package main

import (
	"os"

	"github.com/mmcdole/reel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

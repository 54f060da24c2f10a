package main

import (
	"os"

	"github.com/rustyeddy/histtrader/cmd/histtrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

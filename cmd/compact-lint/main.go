package main

import (
	"os"

	"github.com/OpenZeppelin/compact-tools/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

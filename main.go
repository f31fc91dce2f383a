package main

import (
	"os"

	"github.com/raysh454/kensa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/DanielEliad/powerworld/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

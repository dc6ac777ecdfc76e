package main

import (
	"os"

	"github.com/NathanNorman/claude-session-visualizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

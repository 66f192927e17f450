package main

import (
	"os"

	"github.com/hoistlab/liftcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

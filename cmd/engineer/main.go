package main

import (
	"os"

	"github.com/edp1096/toy-engineer/cmd/engineer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

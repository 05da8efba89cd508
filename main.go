package main

import (
	"os"

	"github.com/eernst/seqsieve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

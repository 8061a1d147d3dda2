package main

import (
	"fmt"
	"os"

	"github.com/terraincognita07/ssclab/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ssclab: %v\n", err)
		os.Exit(1)
	}
}

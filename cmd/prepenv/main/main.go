package main

import (
	"fmt"
	"os"

	"github.com/fanimeengine/prepenv/cmd/prepenv"
)

func main() {
	rootCmd := prepenv.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, prepenv.FormatError(err))
		os.Exit(1)
	}
}

// Command frontierctl is a cobra CLI over a Frontier, in the shape of
// walker's own cmd package: one persistent --config flag, one
// subcommand per operation, recover-and-print-error instead of a raw
// panic trace at the top level.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigPath is the value set by the --config flag; every subcommand
// reads it through mustOpenOrResume if it isn't empty.
var ConfigPath string

var rootCommand = &cobra.Command{
	Use:   "frontierctl",
	Short: "Operate a crawl frontier database",
}

func main() {
	rootCommand.PersistentFlags().StringVarP(&ConfigPath,
		"config", "c", "", "path to a frontier tuning YAML file")

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Exiting with error: %v\n", r)
		}
	}()
	if err := rootCommand.Execute(); err != nil {
		panic(err.Error())
	}
}

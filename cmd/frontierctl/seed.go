package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NEOS-AI/stract-frontier/frontier"
)

var seedRoot string

func init() {
	cmd := &cobra.Command{
		Use:   "seed [urls...]",
		Short: "Insert seed URLs, creating their domains as Pending",
		Run:   seedFunc,
	}
	cmd.Flags().StringVar(&seedRoot, "root", "", "frontier directory (created if it doesn't exist)")
	rootCommand.AddCommand(cmd)
}

func seedFunc(cmd *cobra.Command, args []string) {
	if seedRoot == "" {
		panic("--root is required")
	}
	if len(args) == 0 {
		panic("seed requires at least one URL")
	}

	f := mustOpenOrResume(seedRoot)
	defer f.Close()

	if err := f.InsertSeedUrls(args); err != nil {
		panic(err.Error())
	}
	fmt.Printf("seeded %d urls\n", len(args))
}

// mustOpenOrResume resumes an existing frontier directory, or creates
// one fresh if it doesn't exist yet — frontierctl runs one process per
// command, so it can't rely on Open's single-process fresh-path guard
// the way a long-lived crawler process would.
func mustOpenOrResume(path string) *frontier.Frontier {
	t := LoadTuning(ConfigPath)
	f, err := frontier.Resume(path, t)
	if err != nil {
		panic(err.Error())
	}
	return f
}

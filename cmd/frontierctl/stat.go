package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NEOS-AI/stract-frontier/domainstore"
)

var statRoot string

func init() {
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Print one line per known domain: status, weight, max_shard_id",
		Run:   statFunc,
	}
	cmd.Flags().StringVar(&statRoot, "root", "", "frontier directory")
	rootCommand.AddCommand(cmd)
}

func statFunc(cmd *cobra.Command, args []string) {
	if statRoot == "" {
		panic("--root is required")
	}

	f := mustOpenOrResume(statRoot)
	defer f.Close()

	count := 0
	err := f.Domains().Iter(func(e domainstore.Entry) bool {
		fmt.Printf("%-40s %-16s weight=%g max_shard_id=%d\n",
			e.Domain, e.State.Status, e.State.Weight, e.State.MaxShardID)
		count++
		return true
	})
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("%d domains\n", count)
}

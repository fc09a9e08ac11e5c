package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NEOS-AI/stract-frontier/frontier/reconcile"
)

var reconcileRoot string

func init() {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reset CrawlInProgress domains and Crawling urls left by a crashed process",
		Long: `If a crawler process claimed domains via sample and crashed before
calling SetDomainStatus or before prepare-jobs completed, those domains and urls stay
claimed forever. reconcile resets them to Pending so a future sample call
can pick them up again.`,
		Run: reconcileFunc,
	}
	cmd.Flags().StringVar(&reconcileRoot, "root", "", "frontier directory")
	rootCommand.AddCommand(cmd)
}

func reconcileFunc(cmd *cobra.Command, args []string) {
	if reconcileRoot == "" {
		panic("--root is required")
	}

	f := mustOpenOrResume(reconcileRoot)
	defer f.Close()

	domains, urls, err := reconcile.Sweep(f)
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("reset %d domains and %d urls\n", domains, urls)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sampleRoot string
	sampleN    int
)

func init() {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample Pending domains and mark them CrawlInProgress",
		Run:   sampleFunc,
	}
	cmd.Flags().StringVar(&sampleRoot, "root", "", "frontier directory")
	cmd.Flags().IntVar(&sampleN, "n", 10, "number of domains to sample")
	rootCommand.AddCommand(cmd)
}

func sampleFunc(cmd *cobra.Command, args []string) {
	if sampleRoot == "" {
		panic("--root is required")
	}

	f := mustOpenOrResume(sampleRoot)
	defer f.Close()

	domains, err := f.SampleDomains(sampleN)
	if err != nil {
		panic(err.Error())
	}
	for _, d := range domains {
		fmt.Println(d)
	}
}

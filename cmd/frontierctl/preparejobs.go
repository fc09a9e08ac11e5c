package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NEOS-AI/stract-frontier/domain"
)

var (
	prepareRoot string
	prepareK    int
)

func init() {
	cmd := &cobra.Command{
		Use:   "prepare-jobs [domains...]",
		Short: "Build Jobs for the given domains, marking sampled URLs Crawling",
		Run:   prepareJobsFunc,
	}
	cmd.Flags().StringVar(&prepareRoot, "root", "", "frontier directory")
	cmd.Flags().IntVar(&prepareK, "k", 50, "max urls per job")
	rootCommand.AddCommand(cmd)
}

func prepareJobsFunc(cmd *cobra.Command, args []string) {
	if prepareRoot == "" {
		panic("--root is required")
	}
	if len(args) == 0 {
		panic("prepare-jobs requires at least one domain")
	}

	f := mustOpenOrResume(prepareRoot)
	defer f.Close()

	domains := make([]domain.Domain, len(args))
	for i, d := range args {
		domains[i] = domain.Domain(d)
	}

	jobs, err := f.PrepareJobs(domains, prepareK)
	if err != nil {
		panic(err.Error())
	}
	for _, job := range jobs {
		fmt.Printf("%s\tsitemap=%v\turls=%d\n", job.Domain, job.FetchSitemap, len(job.Urls))
		for _, u := range job.Urls {
			fmt.Printf("\t%s\n", u)
		}
	}
}

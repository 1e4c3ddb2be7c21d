package main

import (
	"fmt"

	"github.com/fwojciec/urlcrawl"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := urlcrawl.RunFilter{Limit: c.Limit}
	if c.Seed != "" {
		filter.SeedURL = &c.Seed
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcrawl.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Crawl with --db to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d/%d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Reason, r.DiscoveredCount, r.Target, r.SeedURL)
	}

	return nil
}

// Run executes the urls command.
func (c *URLsCmd) Run(deps *Dependencies) error {
	urls, err := deps.Runs.FindRunURLs(deps.Ctx, c.ID)
	if err != nil {
		if urlcrawl.ErrorCode(err) == urlcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Run %q not found. Use 'urlcrawl runs' to list runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", urlcrawl.ErrorMessage(err))
		}
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}

// Run executes the seen command.
func (c *SeenCmd) Run(deps *Dependencies) error {
	found, err := deps.Runs.HasURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", urlcrawl.ErrorMessage(err))
		return err
	}

	if found {
		fmt.Fprintf(deps.Stdout, "%s was discovered by a recorded run\n", c.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "%s has not been discovered\n", c.URL)
	}

	return nil
}

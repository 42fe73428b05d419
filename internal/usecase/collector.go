// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/naka-gawa/ncu/internal/gateway"
	"github.com/naka-gawa/ncu/internal/summary"
	"golang.org/x/sync/errgroup"
)

// Collector gathers everything a pull request summary needs.
type Collector struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Collect fetches the pull request, its commits and the author's first-time
// status concurrently.
func (c *Collector) Collect(ctx context.Context, owner, repo string, number int) (*summary.Data, error) {
	if owner == "" || repo == "" {
		return nil, errors.New("owner and repo are required")
	}
	if number <= 0 {
		return nil, fmt.Errorf("invalid pull request number %d", number)
	}
	c.logger.Printf("Usecase: collecting %s/%s#%d...", owner, repo, number)

	data := &summary.Data{}
	var authorIsNew bool

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		pr, err := c.fetcher.FetchPullRequest(egCtx, owner, repo, number)
		if err != nil {
			return err
		}
		data.PR = *pr
		return nil
	})

	eg.Go(func() error {
		var err error
		data.Commits, err = c.fetcher.FetchCommits(egCtx, owner, repo, number)
		return err
	})

	eg.Go(func() error {
		var err error
		authorIsNew, err = c.fetcher.FetchAuthorIsNew(egCtx, owner, repo, number)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	data.PR.Author.FirstTimer = authorIsNew
	data.AuthorIsNew = func() bool { return authorIsNew }
	c.logger.Printf("Usecase: collected %d commits.", len(data.Commits))
	return data, nil
}

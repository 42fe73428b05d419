// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/ncu/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching pull request data from GitHub.
type Fetcher interface {
	FetchPullRequest(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error)
	FetchCommits(ctx context.Context, owner, repo string, number int) ([]domain.Commit, error)
	// FetchAuthorIsNew reports whether the PR author has no prior contributions to the repository.
	FetchAuthorIsNew(ctx context.Context, owner, repo string, number int) (bool, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// authorAssociationQuery fetches how the PR author relates to the repository.
type authorAssociationQuery struct {
	Repository struct {
		PullRequest struct {
			AuthorAssociation githubv4.CommentAuthorAssociation
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

var coAuthorTrailer = regexp.MustCompile(`(?mi)^co-authored-by:\s*(.*?)\s*<([^>]+)>\s*$`)

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error) {
	g.logger.Printf("[1/3] Fetching pull request %s/%s#%d...", owner, repo, number)
	pr, _, err := g.restClient.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request with REST API: %w", err)
	}

	login := pr.GetUser().GetLogin()
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get author %s with REST API: %w", login, err)
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	g.logger.Println("Completed fetching pull request.")
	return &domain.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Author: domain.Author{
			Login: login,
			Name:  user.GetName(),
			Email: user.GetEmail(),
		},
		HeadOwner:  pr.GetHead().GetUser().GetLogin(),
		HeadBranch: pr.GetHead().GetRef(),
		BaseOwner:  pr.GetBase().GetUser().GetLogin(),
		BaseBranch: pr.GetBase().GetRef(),
		Labels:     labels,
	}, nil
}

func (g *GitHubGateway) FetchCommits(ctx context.Context, owner, repo string, number int) ([]domain.Commit, error) {
	g.logger.Println("[2/3] Fetching commit data using REST API...")
	opts := &github.ListOptions{PerPage: 100}
	var commits []domain.Commit
	for {
		page, resp, err := g.restClient.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits with REST API: %w", err)
		}
		for _, rc := range page {
			commits = append(commits, toCommit(rc))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of commits...")
	}
	g.logger.Printf("Completed fetching %d commits.", len(commits))
	return commits, nil
}

func (g *GitHubGateway) FetchAuthorIsNew(ctx context.Context, owner, repo string, number int) (bool, error) {
	g.logger.Println("[3/3] Fetching author association using GraphQL API...")
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"repo":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}
	var q authorAssociationQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return false, fmt.Errorf("failed to execute GraphQL query for author association: %w", err)
	}
	switch q.Repository.PullRequest.AuthorAssociation {
	case githubv4.CommentAuthorAssociationFirstTimer, githubv4.CommentAuthorAssociationFirstTimeContributor:
		return true, nil
	}
	return false, nil
}

// toCommit lists the git author, then the git committer, then every
// Co-authored-by trailer as the commit's committers.
func toCommit(rc *github.RepositoryCommit) domain.Commit {
	gc := rc.GetCommit()
	author := domain.Committer{
		Name:  gc.GetAuthor().GetName(),
		Email: gc.GetAuthor().GetEmail(),
	}
	c := domain.Commit{
		SHA:     rc.GetSHA(),
		Message: gc.GetMessage(),
		Author:  author,
	}
	if gc.GetAuthor() != nil {
		c.Committers = append(c.Committers, author)
	}
	if gc.GetCommitter() != nil {
		c.Committers = append(c.Committers, domain.Committer{
			Name:  gc.GetCommitter().GetName(),
			Email: gc.GetCommitter().GetEmail(),
		})
	}
	for _, m := range coAuthorTrailer.FindAllStringSubmatch(c.Message, -1) {
		c.Committers = append(c.Committers, domain.Committer{Name: m[1], Email: m[2]})
	}
	return c
}

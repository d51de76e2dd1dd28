package resolver

import (
	"context"

	"github.com/google/go-github/v68/github"
)

// GitHub adapts the GitHub API client to the Tracker interface.
type GitHub struct {
	client *github.Client
}

// NewGitHub builds a Tracker over the GitHub REST API. An empty token
// yields an unauthenticated client with its much smaller quota.
func NewGitHub(token string) *GitHub {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHub{client: client}
}

func (g *GitHub) Issue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := g.client.Issues.Get(ctx, owner, repo, number)
	return issue, err
}

func (g *GitHub) PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	return pr, err
}

// Remaining polls the core REST quota.
func (g *GitHub) Remaining(ctx context.Context) (int, error) {
	limits, _, err := g.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, err
	}
	return limits.Core.Remaining, nil
}

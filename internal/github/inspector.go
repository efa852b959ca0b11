package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Inspector retrieves the diff and changed-file list through the GitHub
// compare API. Used on shallow CI checkouts where the parent commit is not
// present locally.
type Inspector struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	owner       string
	repo        string
	baseRev     string
	headRev     string
	logger      *logrus.Logger
}

// NewInspector creates a GitHub-backed change source for "owner/name"
func NewInspector(token, repository, baseRev, headRev string, rateLimit int, logger *logrus.Logger) (*Inspector, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repository %q, expected owner/name", repository)
	}
	if rateLimit <= 0 {
		rateLimit = 10
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Inspector{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		owner:       owner,
		repo:        repo,
		baseRev:     baseRev,
		headRev:     headRev,
		logger:      logger,
	}, nil
}

// Changes compares base and head and reconstructs a unified diff from the
// per-file patches. An unresolvable base (first commit on the branch) yields
// an empty ChangeSet and no error.
func (i *Inspector) Changes(ctx context.Context) (models.ChangeSet, error) {
	cs := models.ChangeSet{BaseRev: i.baseRev, HeadRev: i.headRev}

	if err := i.rateLimiter.Wait(ctx); err != nil {
		return cs, fmt.Errorf("rate limiter: %w", err)
	}

	comparison, resp, err := i.client.Repositories.CompareCommits(
		ctx, i.owner, i.repo, i.baseRev, i.headRev, &github.ListOptions{PerPage: 100})
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			i.logger.WithField("base", i.baseRev).Info("base revision not found on remote, treating as empty change set")
			return cs, nil
		}
		return cs, fmt.Errorf("compare commits: %w", err)
	}

	var diff strings.Builder
	for _, file := range comparison.Files {
		cs.Files = append(cs.Files, file.GetFilename())
		if patch := file.GetPatch(); patch != "" {
			fmt.Fprintf(&diff, "diff --git a/%s b/%s\n", file.GetFilename(), file.GetFilename())
			fmt.Fprintf(&diff, "--- a/%s\n+++ b/%s\n", file.GetFilename(), file.GetFilename())
			diff.WriteString(patch)
			if !strings.HasSuffix(patch, "\n") {
				diff.WriteString("\n")
			}
		}
	}
	cs.Diff = diff.String()

	return cs, nil
}

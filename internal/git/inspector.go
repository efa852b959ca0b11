package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// Inspector retrieves the unified diff and changed-file list between two
// revisions using the git CLI. Base defaults to the immediate parent commit,
// head to the working HEAD.
type Inspector struct {
	repoPath string
	baseRev  string
	headRev  string
	logger   *logrus.Logger
}

// NewInspector creates a git-backed change source rooted at repoPath
func NewInspector(repoPath, baseRev, headRev string, logger *logrus.Logger) *Inspector {
	if baseRev == "" {
		baseRev = "HEAD~1"
	}
	if headRev == "" {
		headRev = "HEAD"
	}
	return &Inspector{
		repoPath: repoPath,
		baseRev:  baseRev,
		headRev:  headRev,
		logger:   logger,
	}
}

// Changes returns the diff text and changed file paths for the revision range.
// A missing base revision (first commit) yields an empty ChangeSet and no
// error: downstream calculators treat "no changes" as zero risk.
func (i *Inspector) Changes(ctx context.Context) (models.ChangeSet, error) {
	cs := models.ChangeSet{BaseRev: i.baseRev, HeadRev: i.headRev}

	if !i.revExists(ctx, i.baseRev) {
		i.logger.WithField("rev", i.baseRev).Info("base revision does not exist, treating as empty change set")
		return cs, nil
	}

	diff, err := i.run(ctx, "diff", i.baseRev, i.headRev)
	if err != nil {
		return cs, fmt.Errorf("git diff failed: %w", err)
	}
	cs.Diff = diff

	names, err := i.run(ctx, "diff", "--name-only", i.baseRev, i.headRev)
	if err != nil {
		return cs, fmt.Errorf("git diff --name-only failed: %w", err)
	}
	cs.Files = splitLines(names)

	return cs, nil
}

// revExists checks whether a revision resolves in the repository
func (i *Inspector) revExists(ctx context.Context, rev string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", rev)
	cmd.Dir = i.repoPath
	return cmd.Run() == nil
}

func (i *Inspector) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = i.repoPath
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

func splitLines(s string) []string {
	var result []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// FindGitRoot returns the root directory of the git repository
func FindGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

package risk

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// complexityNormalizer scales the raw token count onto [0,1]
const complexityNormalizer = 100.0

// ComplexityCalculator counts control-structure tokens in changed source
// files. More conditionals, loops and declarations touched means a riskier
// change to reason about.
type ComplexityCalculator struct {
	repoPath string
	readFile func(string) ([]byte, error)
}

// NewComplexityCalculator creates the code-complexity factor rooted at repoPath
func NewComplexityCalculator(repoPath string) *ComplexityCalculator {
	return &ComplexityCalculator{
		repoPath: repoPath,
		readFile: os.ReadFile,
	}
}

func (c *ComplexityCalculator) Name() string     { return models.FactorCodeComplexity }
func (c *ComplexityCalculator) Default() float64 { return 0.5 }

// Calculate sums vocabulary token occurrences across changed source files,
// normalizes by 100 and caps at 1.0. Files that cannot be read are skipped.
func (c *ComplexityCalculator) Calculate(ctx context.Context, in Input) float64 {
	total := 0

	for _, path := range in.Change.Files {
		tokens, ok := complexityVocabulary[filepath.Ext(path)]
		if !ok {
			continue
		}

		data, err := c.readFile(filepath.Join(c.repoPath, path))
		if err != nil {
			// Deleted or unreadable file: skip, never abort the factor
			logrus.WithError(err).WithField("file", path).Debug("skipping unreadable file in complexity analysis")
			continue
		}

		content := string(data)
		for _, token := range tokens {
			total += strings.Count(content, token)
		}
	}

	return models.Clamp01(float64(total) / complexityNormalizer)
}

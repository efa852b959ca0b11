package risk

import (
	"context"
	"strings"

	"github.com/shipgate/shipgate/internal/git"
	"github.com/shipgate/shipgate/internal/models"
)

// performanceKeywords are data-access, looping, concurrency, caching and
// resource-usage terms whose presence in a diff hints at performance impact
var performanceKeywords = []string{
	"database", "query", "loop", "recursive", "async", "await",
	"promise", "timeout", "cache", "memory", "cpu", "optimization",
}

const (
	keywordWeight        = 0.1
	largeLineThreshold   = 500
	largeLineBonus       = 0.3
	mediumLineThreshold  = 200
	mediumLineBonus      = 0.2
)

// PerformanceCalculator scores the potential performance impact of a change
type PerformanceCalculator struct{}

// NewPerformanceCalculator creates the performance-impact factor
func NewPerformanceCalculator() *PerformanceCalculator {
	return &PerformanceCalculator{}
}

func (c *PerformanceCalculator) Name() string     { return models.FactorPerformanceImpact }
func (c *PerformanceCalculator) Default() float64 { return 0.0 }

// Calculate adds 0.1 per performance keyword present anywhere in the diff
// (case-insensitive presence test, not frequency-weighted), plus a line-volume
// bonus: +0.3 above 500 changed lines, else +0.2 above 200. Capped at 1.0.
func (c *PerformanceCalculator) Calculate(ctx context.Context, in Input) float64 {
	score := 0.0
	lowered := strings.ToLower(in.Change.Diff)

	for _, keyword := range performanceKeywords {
		if strings.Contains(lowered, keyword) {
			score += keywordWeight
		}
	}

	added, deleted := git.CountDiffLines(in.Change.Diff)
	switch linesChanged := added + deleted; {
	case linesChanged > largeLineThreshold:
		score += largeLineBonus
	case linesChanged > mediumLineThreshold:
		score += mediumLineBonus
	}

	return models.Clamp01(score)
}

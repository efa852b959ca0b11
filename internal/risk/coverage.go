package risk

import (
	"context"

	"github.com/shipgate/shipgate/internal/models"
)

// CoverageCalculator scores the test-coverage risk of a change: source files
// changed without accompanying test changes raise the risk.
type CoverageCalculator struct{}

// NewCoverageCalculator creates the test-coverage factor
func NewCoverageCalculator() *CoverageCalculator {
	return &CoverageCalculator{}
}

func (c *CoverageCalculator) Name() string     { return models.FactorTestCoverage }
func (c *CoverageCalculator) Default() float64 { return 0.5 }

// Calculate partitions changed files into test-like and source-like and
// returns max(0, 1 - tests/sources). Zero source-like files means there is
// no source risk to cover: 0.0 regardless of test count.
func (c *CoverageCalculator) Calculate(ctx context.Context, in Input) float64 {
	tests := 0
	sources := 0

	for _, path := range in.Change.Files {
		if isTestFile(path) {
			tests++
		} else if isSourceFile(path) {
			sources++
		}
	}

	if sources == 0 {
		return 0.0
	}

	risk := 1.0 - float64(tests)/float64(sources)
	if risk < 0 {
		return 0.0
	}
	return models.Clamp01(risk)
}

package risk

import (
	"context"
	"sync"
	"time"

	"github.com/shipgate/shipgate/internal/models"
	"golang.org/x/sync/errgroup"
)

// Input is the shared contract consumed by every risk factor calculator
type Input struct {
	Change  models.ChangeSet
	History []models.DeploymentRecord
	Now     time.Time
}

// Calculator derives one bounded heuristic risk signal from a change.
// Calculate never returns an error: I/O and parse failures inside a
// calculator degrade to its documented default (risk analysis degrades,
// never blocks).
type Calculator interface {
	Name() string
	Default() float64
	Calculate(ctx context.Context, in Input) float64
}

// Calculators returns the five factor calculators in canonical order.
// repoPath is the repository root used to read changed file contents.
func Calculators(repoPath string) []Calculator {
	return []Calculator{
		NewComplexityCalculator(repoPath),
		NewDependencyCalculator(),
		NewCoverageCalculator(),
		NewPerformanceCalculator(),
		NewHistoricalCalculator(),
	}
}

// Evaluate runs all calculators concurrently and assembles the factor
// scores. The calculators are mutually independent and their outputs are
// combined commutatively, so no ordering is required among them.
func Evaluate(ctx context.Context, calcs []Calculator, in Input) models.RiskFactors {
	var (
		mu      sync.Mutex
		factors models.RiskFactors
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, calc := range calcs {
		g.Go(func() error {
			score := calc.Calculate(gctx, in)
			mu.Lock()
			setFactor(&factors, calc.Name(), score)
			mu.Unlock()
			return nil
		})
	}
	g.Wait() // calculators never return errors

	factors.Clamp()
	return factors
}

func setFactor(f *models.RiskFactors, name string, score float64) {
	switch name {
	case models.FactorCodeComplexity:
		f.CodeComplexity = score
	case models.FactorDependencyChanges:
		f.DependencyChanges = score
	case models.FactorTestCoverage:
		f.TestCoverage = score
	case models.FactorPerformanceImpact:
		f.PerformanceImpact = score
	case models.FactorHistoricalFailures:
		f.HistoricalFailures = score
	}
}

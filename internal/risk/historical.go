package risk

import (
	"context"
	"time"

	"github.com/shipgate/shipgate/internal/history"
	"github.com/shipgate/shipgate/internal/models"
)

// failureWindow is the trailing period over which past deployment failures
// count toward the historical-failure factor
const failureWindow = 7 * 24 * time.Hour

// HistoricalCalculator scores the recent deployment failure rate from the
// rolling history. It is independent of the diff.
type HistoricalCalculator struct{}

// NewHistoricalCalculator creates the historical-failure factor
func NewHistoricalCalculator() *HistoricalCalculator {
	return &HistoricalCalculator{}
}

func (c *HistoricalCalculator) Name() string     { return models.FactorHistoricalFailures }
func (c *HistoricalCalculator) Default() float64 { return 0.0 }

// Calculate returns failed/total over records in the trailing 7 days.
// No recent records is a no-data result: 0.0, not a failure.
func (c *HistoricalCalculator) Calculate(ctx context.Context, in Input) float64 {
	recent := history.Recent(in.History, in.Now, failureWindow)
	return models.Clamp01(history.FailureRate(recent))
}

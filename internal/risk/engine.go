package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shipgate/shipgate/internal/history"
	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// ChangeSource supplies the diff and changed-file list for the revision
// range under assessment
type ChangeSource interface {
	Changes(ctx context.Context) (models.ChangeSet, error)
}

// Result is the outcome of one assessment run
type Result struct {
	Change       models.ChangeSet
	Factors      models.RiskFactors
	Assessment   models.RiskAssessment
	Record       models.DeploymentRecord
	UsedFallback bool
}

// Engine runs the sequential assessment pipeline: diff inspection, factor
// calculation, aggregation, history append. All collaborators are
// constructor-injected so the run is testable without a filesystem or network.
type Engine struct {
	source      ChangeSource
	calculators []Calculator
	advisors    *AdvisorChain
	store       history.Store
	logger      *logrus.Logger
	now         func() time.Time
}

// NewEngine wires the pipeline
func NewEngine(source ChangeSource, calculators []Calculator, advisors *AdvisorChain, store history.Store, logger *logrus.Logger) *Engine {
	return &Engine{
		source:      source,
		calculators: calculators,
		advisors:    advisors,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one assessment. The engine never fails to produce a verdict:
// calculator failures degrade to defaults, advisory failures fall back to the
// deterministic rule, and a missing history is an empty history. The only
// error case is a history persistence failure, and even then the completed
// Result is returned alongside the error so callers can still emit the
// recommendation and flag the persistence failure separately.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	now := e.now()

	// History is loaded once per run; the read-modify-write below is the
	// single critical section of the pipeline.
	records, err := e.store.Load(ctx)
	if err != nil {
		e.logger.WithError(err).Warn("failed to load deployment history, starting empty")
		records = nil
	}

	change, sourceErr := e.source.Changes(ctx)
	if sourceErr != nil {
		e.logger.WithError(sourceErr).Warn("diff inspection failed, factors degrade to defaults")
	}

	in := Input{Change: change, History: records, Now: now}

	var factors models.RiskFactors
	if sourceErr != nil {
		factors = e.defaultFactors(ctx, in)
	} else {
		factors = Evaluate(ctx, e.calculators, in)
	}

	e.logger.WithFields(logrus.Fields{
		models.FactorCodeComplexity:     factors.CodeComplexity,
		models.FactorDependencyChanges:  factors.DependencyChanges,
		models.FactorTestCoverage:       factors.TestCoverage,
		models.FactorPerformanceImpact:  factors.PerformanceImpact,
		models.FactorHistoricalFailures: factors.HistoricalFailures,
	}).Info("risk factors calculated")

	assessment, usedFallback := e.advisors.Assess(ctx, factors)
	assessment.Clamp()

	record := models.DeploymentRecord{
		ID:         uuid.NewString(),
		Timestamp:  now,
		Status:     models.StatusPending,
		Factors:    factors,
		Assessment: assessment,
	}

	records = history.Append(records, record)

	result := &Result{
		Change:       change,
		Factors:      factors,
		Assessment:   assessment,
		Record:       record,
		UsedFallback: usedFallback,
	}

	if err := e.store.Save(ctx, records); err != nil {
		return result, fmt.Errorf("persist deployment history: %w", err)
	}

	return result, nil
}

// defaultFactors substitutes each diff-driven calculator's documented default
// when the change source itself failed. The historical-failure factor does
// not depend on the diff and is still computed.
func (e *Engine) defaultFactors(ctx context.Context, in Input) models.RiskFactors {
	var factors models.RiskFactors
	for _, calc := range e.calculators {
		if calc.Name() == models.FactorHistoricalFailures {
			setFactor(&factors, calc.Name(), calc.Calculate(ctx, in))
		} else {
			setFactor(&factors, calc.Name(), calc.Default())
		}
	}
	factors.Clamp()
	return factors
}

package models

import (
	"time"
)

// RiskLevel categorizes the overall deployment risk
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the three known values
func (l RiskLevel) Valid() bool {
	return l == RiskLow || l == RiskMedium || l == RiskHigh
}

// Strategy is the recommended deployment strategy
type Strategy string

const (
	StrategyBlueGreen      Strategy = "blue_green"
	StrategyCanary         Strategy = "canary"
	StrategyManualApproval Strategy = "manual_approval"
)

// Valid reports whether the strategy is one of the three known values
func (s Strategy) Valid() bool {
	return s == StrategyBlueGreen || s == StrategyCanary || s == StrategyManualApproval
}

// Fixed factor names used in prompts, JSON output and history records
const (
	FactorCodeComplexity     = "code_complexity"
	FactorDependencyChanges  = "dependency_changes"
	FactorTestCoverage       = "test_coverage"
	FactorPerformanceImpact  = "performance_impact"
	FactorHistoricalFailures = "historical_failures"
)

// RiskFactors holds the five heuristic risk signals, each in [0,1]
type RiskFactors struct {
	CodeComplexity     float64 `json:"code_complexity"`
	DependencyChanges  float64 `json:"dependency_changes"`
	TestCoverage       float64 `json:"test_coverage"`
	PerformanceImpact  float64 `json:"performance_impact"`
	HistoricalFailures float64 `json:"historical_failures"`
}

// Clamp bounds every factor to [0,1] in place
func (f *RiskFactors) Clamp() {
	f.CodeComplexity = Clamp01(f.CodeComplexity)
	f.DependencyChanges = Clamp01(f.DependencyChanges)
	f.TestCoverage = Clamp01(f.TestCoverage)
	f.PerformanceImpact = Clamp01(f.PerformanceImpact)
	f.HistoricalFailures = Clamp01(f.HistoricalFailures)
}

// Mean returns the arithmetic mean of the five factors
func (f RiskFactors) Mean() float64 {
	return (f.CodeComplexity + f.DependencyChanges + f.TestCoverage +
		f.PerformanceImpact + f.HistoricalFailures) / 5.0
}

// Map returns the factors keyed by their canonical names
func (f RiskFactors) Map() map[string]float64 {
	return map[string]float64{
		FactorCodeComplexity:     f.CodeComplexity,
		FactorDependencyChanges:  f.DependencyChanges,
		FactorTestCoverage:       f.TestCoverage,
		FactorPerformanceImpact:  f.PerformanceImpact,
		FactorHistoricalFailures: f.HistoricalFailures,
	}
}

// RiskAssessment is the aggregated verdict for one pending change
type RiskAssessment struct {
	OverallRiskScore    float64   `json:"overall_risk_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
	RecommendedStrategy Strategy  `json:"recommended_strategy"`
	KeyConcerns         []string  `json:"key_concerns"`
	MitigationSteps     []string  `json:"mitigation_steps"`
	Confidence          float64   `json:"confidence"`
}

// Clamp bounds the numeric fields to [0,1] in place
func (a *RiskAssessment) Clamp() {
	a.OverallRiskScore = Clamp01(a.OverallRiskScore)
	a.Confidence = Clamp01(a.Confidence)
}

// Deployment outcome statuses stored in history records
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// DeploymentRecord is an immutable snapshot of one assessment run.
// Only Status is ever updated after creation, via `shipgate outcome`.
type DeploymentRecord struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Status     string         `json:"status"`
	Factors    RiskFactors    `json:"risk_factors"`
	Assessment RiskAssessment `json:"assessment"`
}

// DeploymentHistory is the persisted wire format of the history file
type DeploymentHistory struct {
	Deployments []DeploymentRecord `json:"deployments"`
}

// ChangeSet is the output of a diff inspection: the literal unified diff
// and the changed file paths relative to the repository root. An empty
// ChangeSet (first commit, no base revision) is a normal condition.
type ChangeSet struct {
	Diff    string   `json:"diff"`
	Files   []string `json:"files"`
	BaseRev string   `json:"base_rev"`
	HeadRev string   `json:"head_rev"`
}

// Empty reports whether there are no changes to assess
func (c ChangeSet) Empty() bool {
	return c.Diff == "" && len(c.Files) == 0
}

// Clamp01 bounds v to [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

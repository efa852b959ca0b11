package risk

import (
	"context"

	"github.com/shipgate/shipgate/internal/models"
)

// Canonical threshold mapping from overall score to level and strategy
const (
	lowRiskThreshold  = 0.3
	highRiskThreshold = 0.7
)

// Fixed placeholder texts marking a fallback-produced assessment so operators
// can tell AI assessment was unavailable
const (
	FallbackConcern    = "AI analysis unavailable"
	FallbackMitigation = "Manual review recommended"
	fallbackConfidence = 0.5
)

// ThresholdVerdict maps an overall risk score to the canonical risk level
// and deployment strategy: <0.3 low/blue_green, <0.7 medium/canary,
// otherwise high/manual_approval.
func ThresholdVerdict(score float64) (models.RiskLevel, models.Strategy) {
	switch {
	case score < lowRiskThreshold:
		return models.RiskLow, models.StrategyBlueGreen
	case score < highRiskThreshold:
		return models.RiskMedium, models.StrategyCanary
	default:
		return models.RiskHigh, models.StrategyManualApproval
	}
}

// RuleAdvisor is the fully deterministic aggregation used when the reasoning
// service is unavailable: the overall score is the arithmetic mean of the
// five factors, mapped through the canonical thresholds.
type RuleAdvisor struct{}

// NewRuleAdvisor creates the deterministic fallback advisor
func NewRuleAdvisor() *RuleAdvisor {
	return &RuleAdvisor{}
}

// Assess never fails: the engine must always produce a strategy
func (a *RuleAdvisor) Assess(ctx context.Context, factors models.RiskFactors) (models.RiskAssessment, error) {
	score := models.Clamp01(factors.Mean())
	level, strategy := ThresholdVerdict(score)

	return models.RiskAssessment{
		OverallRiskScore:    score,
		RiskLevel:           level,
		RecommendedStrategy: strategy,
		KeyConcerns:         []string{FallbackConcern},
		MitigationSteps:     []string{FallbackMitigation},
		Confidence:          fallbackConfidence,
	}, nil
}

package risk

import (
	"context"
	"time"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultAdvisorTimeout bounds the remote advisory call; on expiry the chain
// proceeds immediately to the fallback rather than blocking the run
const DefaultAdvisorTimeout = 30 * time.Second

// AdvisorChain composes the remote advisor with the deterministic fallback.
// Any failure in the primary path (timeout, transport error, malformed
// payload) produces a fallback verdict; the chain itself never fails.
type AdvisorChain struct {
	primary  Advisor
	fallback Advisor
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewAdvisorChain wires the primary advisor and fallback. A nil primary
// means the fallback is used unconditionally.
func NewAdvisorChain(primary, fallback Advisor, timeout time.Duration, logger *logrus.Logger) *AdvisorChain {
	if timeout <= 0 {
		timeout = DefaultAdvisorTimeout
	}
	return &AdvisorChain{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

// Assess returns the verdict and whether the fallback path produced it
func (c *AdvisorChain) Assess(ctx context.Context, factors models.RiskFactors) (models.RiskAssessment, bool) {
	if c.primary != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		assessment, err := c.primary.Assess(callCtx, factors)
		cancel()

		if err == nil {
			c.checkConsistency(assessment)
			return assessment, false
		}
		c.logger.WithError(err).Warn("AI risk assessment failed, using rule-based fallback")
	}

	assessment, _ := c.fallback.Assess(ctx, factors) // RuleAdvisor never fails
	return assessment, true
}

// checkConsistency logs a remote verdict whose level/strategy disagree with
// the canonical threshold mapping for its own score. The remote judgment may
// intentionally override the numeric heuristic, so it is kept, not corrected.
func (c *AdvisorChain) checkConsistency(a models.RiskAssessment) {
	level, strategy := ThresholdVerdict(a.OverallRiskScore)
	if a.RiskLevel != level || a.RecommendedStrategy != strategy {
		c.logger.WithFields(logrus.Fields{
			"score":              a.OverallRiskScore,
			"risk_level":         a.RiskLevel,
			"strategy":           a.RecommendedStrategy,
			"threshold_level":    level,
			"threshold_strategy": strategy,
		}).Warn("advisory verdict disagrees with canonical threshold mapping, keeping advisory verdict")
	}
}

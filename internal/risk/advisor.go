package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shipgate/shipgate/internal/llm"
	"github.com/shipgate/shipgate/internal/models"
)

// Advisor aggregates the five factor scores into a deployment verdict.
// Two interchangeable implementations exist: the LLM-backed advisor and the
// deterministic RuleAdvisor used as its fallback.
type Advisor interface {
	Assess(ctx context.Context, factors models.RiskFactors) (models.RiskAssessment, error)
}

const advisorSystemPrompt = "You are an expert DevOps engineer specializing in deployment risk assessment and mitigation strategies."

const advisorPromptTemplate = `You are a DevOps expert analyzing deployment risk. Based on these risk factors, provide a comprehensive risk assessment:

Risk Factors:
- Code Complexity: %.2f (0=simple, 1=very complex)
- Dependency Changes: %.2f (0=none, 1=major changes)
- Test Coverage Risk: %.2f (0=well tested, 1=poor coverage)
- Performance Impact: %.2f (0=no impact, 1=high impact)
- Historical Failure Rate: %.2f (0=no failures, 1=frequent failures)

Provide your assessment in JSON format:
{
    "overall_risk_score": <0.0-1.0>,
    "risk_level": "<low|medium|high>",
    "recommended_strategy": "<blue_green|canary|manual_approval>",
    "key_concerns": ["concern1", "concern2"],
    "mitigation_steps": ["step1", "step2"],
    "confidence": <0.0-1.0>
}`

// Completer is the slice of llm.Client the advisor needs
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	IsEnabled() bool
}

// LLMAdvisor submits the factor scores to the reasoning service and parses
// the structured verdict embedded in its free-form response
type LLMAdvisor struct {
	client Completer
}

// NewLLMAdvisor creates an advisor backed by the given LLM client
func NewLLMAdvisor(client Completer) *LLMAdvisor {
	return &LLMAdvisor{client: client}
}

// Assess requests a structured verdict from the reasoning service. Any
// failure in the call, payload extraction or parsing is returned as an error
// so the caller can fall back to the deterministic rule.
func (a *LLMAdvisor) Assess(ctx context.Context, factors models.RiskFactors) (models.RiskAssessment, error) {
	var assessment models.RiskAssessment

	if !a.client.IsEnabled() {
		return assessment, fmt.Errorf("advisory service not configured")
	}

	prompt := fmt.Sprintf(advisorPromptTemplate,
		factors.CodeComplexity,
		factors.DependencyChanges,
		factors.TestCoverage,
		factors.PerformanceImpact,
		factors.HistoricalFailures,
	)

	response, err := a.client.Complete(ctx, advisorSystemPrompt, prompt)
	if err != nil {
		return assessment, fmt.Errorf("advisory call failed: %w", err)
	}

	payload, err := llm.ExtractJSON(response)
	if err != nil {
		return assessment, fmt.Errorf("advisory response had no structured payload: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &assessment); err != nil {
		return assessment, fmt.Errorf("advisory payload malformed: %w", err)
	}

	if err := validateAssessment(&assessment); err != nil {
		return assessment, err
	}

	assessment.Clamp()
	return assessment, nil
}

// validateAssessment checks the enum fields; out-of-range scores are clamped
// by the caller rather than rejected
func validateAssessment(a *models.RiskAssessment) error {
	level := models.RiskLevel(strings.ToLower(string(a.RiskLevel)))
	strategy := models.Strategy(strings.ToLower(string(a.RecommendedStrategy)))

	if !level.Valid() {
		return fmt.Errorf("advisory verdict has unknown risk_level %q", a.RiskLevel)
	}
	if !strategy.Valid() {
		return fmt.Errorf("advisory verdict has unknown recommended_strategy %q", a.RecommendedStrategy)
	}

	a.RiskLevel = level
	a.RecommendedStrategy = strategy
	return nil
}

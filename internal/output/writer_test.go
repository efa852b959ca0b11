package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/shipgate/shipgate/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *risk.Result {
	return &risk.Result{
		Factors: models.RiskFactors{
			CodeComplexity:     0.4,
			DependencyChanges:  0.3,
			TestCoverage:       0.6,
			PerformanceImpact:  0.2,
			HistoricalFailures: 0.0,
		},
		Assessment: models.RiskAssessment{
			OverallRiskScore:    0.45,
			RiskLevel:           models.RiskMedium,
			RecommendedStrategy: models.StrategyCanary,
			KeyConcerns:         []string{"low test coverage"},
			MitigationSteps:     []string{"add integration tests"},
			Confidence:          0.8,
		},
	}
}

func TestWriter_WriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	require.NoError(t, writer.WriteArtifacts(testResult()))

	strategy, err := os.ReadFile(filepath.Join(dir, StrategyFile))
	require.NoError(t, err)
	assert.Equal(t, "canary", string(strategy))

	score, err := os.ReadFile(filepath.Join(dir, ScoreFile))
	require.NoError(t, err)
	assert.Equal(t, "0.45", string(score))

	data, err := os.ReadFile(filepath.Join(dir, AssessmentFile))
	require.NoError(t, err)

	var assessment models.RiskAssessment
	require.NoError(t, json.Unmarshal(data, &assessment))
	assert.Equal(t, models.RiskMedium, assessment.RiskLevel)
	assert.Equal(t, []string{"low test coverage"}, assessment.KeyConcerns)
}

func TestWriter_AssessmentFieldNames(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	require.NoError(t, writer.WriteArtifacts(testResult()))

	data, err := os.ReadFile(filepath.Join(dir, AssessmentFile))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{
		"overall_risk_score",
		"risk_level",
		"recommended_strategy",
		"key_concerns",
		"mitigation_steps",
		"confidence",
	} {
		assert.Contains(t, doc, key)
	}
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	writer := NewWriter(dir)

	require.NoError(t, writer.WriteArtifacts(testResult()))
	assert.FileExists(t, filepath.Join(dir, StrategyFile))
}

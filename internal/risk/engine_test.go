package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shipgate/shipgate/internal/history"
	"github.com/shipgate/shipgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns a canned change set
type fakeSource struct {
	change models.ChangeSet
	err    error
}

func (f *fakeSource) Changes(ctx context.Context) (models.ChangeSet, error) {
	return f.change, f.err
}

// memStore keeps history in memory for pipeline tests
type memStore struct {
	records []models.DeploymentRecord
	saveErr error
}

func (m *memStore) Load(ctx context.Context) ([]models.DeploymentRecord, error) {
	return append([]models.DeploymentRecord(nil), m.records...), nil
}

func (m *memStore) Save(ctx context.Context, records []models.DeploymentRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append([]models.DeploymentRecord(nil), records...)
	return nil
}

func (m *memStore) Close() error { return nil }

func newTestEngine(t *testing.T, source ChangeSource, store history.Store) *Engine {
	t.Helper()
	chain := NewAdvisorChain(nil, NewRuleAdvisor(), time.Second, quietLogger())
	return NewEngine(source, Calculators(t.TempDir()), chain, store, quietLogger())
}

// Scenario: no prior revision exists. The inspector reports an empty change
// set (a normal condition), every diff-driven factor computes zero risk, the
// fallback produces a deterministic verdict and history grows by one record.
func TestEngine_FirstCommitProducesLowRiskVerdict(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(t, &fakeSource{}, store)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RiskFactors{}, result.Factors)
	assert.True(t, result.UsedFallback)
	assert.Equal(t, 0.0, result.Assessment.OverallRiskScore)
	assert.Equal(t, models.RiskLow, result.Assessment.RiskLevel)
	assert.Equal(t, models.StrategyBlueGreen, result.Assessment.RecommendedStrategy)

	require.Len(t, store.records, 1)
	assert.Equal(t, models.StatusPending, store.records[0].Status)
	assert.NotEmpty(t, store.records[0].ID)
}

// Scenario: the diff touches requirements.txt only, with no loose version
// markers. Dependency risk 0.3, everything else 0, mean 0.06, low/blue_green.
func TestEngine_ManifestOnlyChange(t *testing.T) {
	diff := "diff --git a/requirements.txt b/requirements.txt\n" +
		"--- a/requirements.txt\n+++ b/requirements.txt\n" +
		"@@ -1 +1 @@\n-flask==1.0\n+flask==2.0\n"

	store := &memStore{}
	engine := newTestEngine(t, &fakeSource{change: models.ChangeSet{
		Diff:  diff,
		Files: []string{"requirements.txt"},
	}}, store)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 0.3, result.Factors.DependencyChanges, 1e-9)
	assert.Equal(t, 0.0, result.Factors.CodeComplexity)
	assert.Equal(t, 0.0, result.Factors.TestCoverage)
	assert.Equal(t, 0.0, result.Factors.PerformanceImpact)
	assert.Equal(t, 0.0, result.Factors.HistoricalFailures)

	assert.InDelta(t, 0.06, result.Assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, models.RiskLow, result.Assessment.RiskLevel)
	assert.Equal(t, models.StrategyBlueGreen, result.Assessment.RecommendedStrategy)
	assert.Len(t, store.records, 1)
}

// Diff inspection failure degrades the diff-driven factors to their
// documented defaults; the run still completes with a valid verdict.
func TestEngine_SourceFailureUsesFactorDefaults(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(t, &fakeSource{err: errors.New("not a git repository")}, store)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.5, result.Factors.CodeComplexity)
	assert.Equal(t, 0.0, result.Factors.DependencyChanges)
	assert.Equal(t, 0.5, result.Factors.TestCoverage)
	assert.Equal(t, 0.0, result.Factors.PerformanceImpact)
	assert.Equal(t, 0.0, result.Factors.HistoricalFailures)

	assert.InDelta(t, 0.2, result.Assessment.OverallRiskScore, 1e-9)
	assert.Equal(t, models.RiskLow, result.Assessment.RiskLevel)
	assert.Len(t, store.records, 1)
}

func TestEngine_HistoricalFactorFeedsFromStore(t *testing.T) {
	now := time.Now()
	store := &memStore{records: []models.DeploymentRecord{
		{ID: "a", Timestamp: now.Add(-24 * time.Hour), Status: models.StatusFailed},
		{ID: "b", Timestamp: now.Add(-48 * time.Hour), Status: models.StatusSucceeded},
	}}

	engine := newTestEngine(t, &fakeSource{}, store)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Factors.HistoricalFailures, 1e-9)
	assert.Len(t, store.records, 3)
}

func TestEngine_HistoryStaysBounded(t *testing.T) {
	now := time.Now()
	var records []models.DeploymentRecord
	for i := 0; i < history.MaxRecords; i++ {
		records = append(records, models.DeploymentRecord{
			ID:        string(rune('a' + i%26)),
			Timestamp: now.Add(-time.Duration(history.MaxRecords-i) * time.Hour * 24 * 30),
			Status:    models.StatusSucceeded,
		})
	}
	oldest := records[0]

	store := &memStore{records: records}
	engine := newTestEngine(t, &fakeSource{}, store)

	_, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.records, history.MaxRecords)
	// Oldest record was evicted, newest run is at the tail
	assert.NotEqual(t, oldest.Timestamp, store.records[0].Timestamp)
	assert.Equal(t, models.StatusPending, store.records[history.MaxRecords-1].Status)
}

func TestEngine_SaveFailureStillYieldsVerdict(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	engine := newTestEngine(t, &fakeSource{}, store)

	result, err := engine.Run(context.Background())
	require.Error(t, err)

	// A persistence failure must not cost the caller the recommendation
	require.NotNil(t, result)
	assert.True(t, result.Assessment.RiskLevel.Valid())
	assert.True(t, result.Assessment.RecommendedStrategy.Valid())
	assert.Equal(t, models.StatusPending, result.Record.Status)
}

package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int, now time.Time) []models.DeploymentRecord {
	records := make([]models.DeploymentRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.DeploymentRecord{
			ID:        fmt.Sprintf("rec-%03d", i),
			Timestamp: now.Add(time.Duration(i) * time.Minute),
			Status:    models.StatusSucceeded,
		})
	}
	return records
}

func TestAppend_GrowsBelowCap(t *testing.T) {
	records := makeRecords(3, time.Now())

	out := Append(records, models.DeploymentRecord{ID: "new"})

	require.Len(t, out, 4)
	assert.Equal(t, "new", out[3].ID)
}

func TestAppend_EvictsOldestAtCap(t *testing.T) {
	now := time.Now()
	records := makeRecords(MaxRecords, now)

	out := Append(records, models.DeploymentRecord{ID: "new"})

	require.Len(t, out, MaxRecords)
	assert.Equal(t, "rec-001", out[0].ID, "oldest record evicted")
	assert.Equal(t, "new", out[MaxRecords-1].ID)
}

func TestAppend_TruncatesOversizedInput(t *testing.T) {
	now := time.Now()
	records := makeRecords(MaxRecords+10, now)

	out := Append(records, models.DeploymentRecord{ID: "new"})

	require.Len(t, out, MaxRecords)
	assert.Equal(t, "new", out[MaxRecords-1].ID)
}

func TestRecent_FiltersByWindow(t *testing.T) {
	now := time.Now()
	records := []models.DeploymentRecord{
		{ID: "old", Timestamp: now.Add(-8 * 24 * time.Hour)},
		{ID: "edge", Timestamp: now.Add(-7 * 24 * time.Hour)},
		{ID: "recent", Timestamp: now.Add(-time.Hour)},
	}

	recent := Recent(records, now, 7*24*time.Hour)

	require.Len(t, recent, 1)
	assert.Equal(t, "recent", recent[0].ID)
}

func TestFailureRate(t *testing.T) {
	assert.Equal(t, 0.0, FailureRate(nil))

	records := []models.DeploymentRecord{
		{Status: models.StatusFailed},
		{Status: models.StatusSucceeded},
		{Status: models.StatusPending},
		{Status: models.StatusSucceeded},
	}
	assert.InDelta(t, 0.25, FailureRate(records), 1e-9)
}

func TestSetOutcome_ByID(t *testing.T) {
	records := makeRecords(3, time.Now())

	out, err := SetOutcome(records, "rec-001", models.StatusFailed)
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, out[1].Status)
	assert.Equal(t, models.StatusSucceeded, out[0].Status)
}

func TestSetOutcome_Latest(t *testing.T) {
	records := makeRecords(3, time.Now())

	out, err := SetOutcome(records, "latest", models.StatusFailed)
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, out[2].Status)
}

func TestSetOutcome_UnknownID(t *testing.T) {
	records := makeRecords(2, time.Now())

	_, err := SetOutcome(records, "rec-999", models.StatusFailed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetOutcome_EmptyHistory(t *testing.T) {
	_, err := SetOutcome(nil, "latest", models.StatusSucceeded)
	assert.ErrorIs(t, err, ErrNotFound)
}

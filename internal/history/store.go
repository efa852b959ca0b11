package history

import (
	"context"
	"errors"
	"time"

	"github.com/shipgate/shipgate/internal/models"
)

// MaxRecords caps the persisted history; the oldest records are evicted first
const MaxRecords = 50

// ErrNotFound is returned when a record id does not exist in the history
var ErrNotFound = errors.New("deployment record not found")

// Store persists the rolling deployment history. Load on missing or corrupt
// state returns an empty slice, not an error; Save rewrites the full history
// atomically.
type Store interface {
	Load(ctx context.Context) ([]models.DeploymentRecord, error)
	Save(ctx context.Context, records []models.DeploymentRecord) error
	Close() error
}

// Append adds a record and truncates to the MaxRecords most recent entries,
// strict FIFO: the oldest records are dropped first.
func Append(records []models.DeploymentRecord, rec models.DeploymentRecord) []models.DeploymentRecord {
	records = append(records, rec)
	if len(records) > MaxRecords {
		records = records[len(records)-MaxRecords:]
	}
	return records
}

// Recent returns the records whose timestamp falls within the trailing
// window ending at now
func Recent(records []models.DeploymentRecord, now time.Time, window time.Duration) []models.DeploymentRecord {
	cutoff := now.Add(-window)
	var recent []models.DeploymentRecord
	for _, r := range records {
		if r.Timestamp.After(cutoff) {
			recent = append(recent, r)
		}
	}
	return recent
}

// FailureRate returns the fraction of records with status "failed".
// Returns 0.0 for an empty slice (no data, not a failure).
func FailureRate(records []models.DeploymentRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}
	failed := 0
	for _, r := range records {
		if r.Status == models.StatusFailed {
			failed++
		}
	}
	return float64(failed) / float64(len(records))
}

// SetOutcome updates the status of the record with the given id, or of the
// most recent record when id is "latest". Returns the updated slice.
func SetOutcome(records []models.DeploymentRecord, id, status string) ([]models.DeploymentRecord, error) {
	if len(records) == 0 {
		return records, ErrNotFound
	}
	if id == "latest" {
		records[len(records)-1].Status = status
		return records, nil
	}
	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			return records, nil
		}
	}
	return records, ErrNotFound
}

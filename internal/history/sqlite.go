package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// SQLiteStore persists history in a local SQLite database. Useful for teams
// that keep the history on a shared runner volume instead of a workspace file.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewSQLiteStore opens (creating if needed) the history database at path
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.WithError(err).Debug("failed to enable WAL journal mode")
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deployments (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		status TEXT NOT NULL,
		risk_factors TEXT NOT NULL,
		assessment TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deployments_timestamp ON deployments(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

type deploymentRow struct {
	ID         string    `db:"id"`
	Timestamp  time.Time `db:"timestamp"`
	Status     string    `db:"status"`
	Factors    string    `db:"risk_factors"`
	Assessment string    `db:"assessment"`
}

// Load returns all records in chronological order. A corrupt row is skipped
// with a warning rather than failing the load.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.DeploymentRecord, error) {
	var rows []deploymentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, timestamp, status, risk_factors, assessment FROM deployments ORDER BY timestamp ASC`); err != nil {
		s.logger.WithError(err).Warn("failed to load deployment history, starting empty")
		return nil, nil
	}

	var records []models.DeploymentRecord
	for _, row := range rows {
		rec := models.DeploymentRecord{
			ID:        row.ID,
			Timestamp: row.Timestamp,
			Status:    row.Status,
		}
		if err := json.Unmarshal([]byte(row.Factors), &rec.Factors); err != nil {
			s.logger.WithError(err).WithField("id", row.ID).Warn("skipping corrupt risk_factors row")
			continue
		}
		if err := json.Unmarshal([]byte(row.Assessment), &rec.Assessment); err != nil {
			s.logger.WithError(err).WithField("id", row.ID).Warn("skipping corrupt assessment row")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Save rewrites the deployments table in a single transaction, mirroring the
// full-rewrite semantics of the file backend.
func (s *SQLiteStore) Save(ctx context.Context, records []models.DeploymentRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deployments`); err != nil {
		return fmt.Errorf("clear deployments: %w", err)
	}

	for _, rec := range records {
		factors, err := json.Marshal(rec.Factors)
		if err != nil {
			return fmt.Errorf("marshal risk factors: %w", err)
		}
		assessment, err := json.Marshal(rec.Assessment)
		if err != nil {
			return fmt.Errorf("marshal assessment: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deployments (id, timestamp, status, risk_factors, assessment) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, rec.Timestamp, rec.Status, string(factors), string(assessment)); err != nil {
			return fmt.Errorf("insert deployment %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shipgate/shipgate/internal/risk"
)

// Artifact file names consumed by the surrounding CI orchestration
const (
	StrategyFile   = "deployment-strategy.txt"
	ScoreFile      = "risk-score.txt"
	AssessmentFile = "deployment-assessment.json"
)

// Writer projects an assessment result onto the output artifacts. It holds
// no decision logic: strategy selection lives entirely in the aggregator.
type Writer struct {
	dir string
}

// NewWriter creates a writer that places artifacts under dir
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// WriteArtifacts writes the strategy identifier, the numeric score and the
// full structured assessment as separate files
func (w *Writer) WriteArtifacts(result *risk.Result) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	strategy := string(result.Assessment.RecommendedStrategy)
	if err := os.WriteFile(filepath.Join(w.dir, StrategyFile), []byte(strategy), 0644); err != nil {
		return fmt.Errorf("write strategy artifact: %w", err)
	}

	score := strconv.FormatFloat(result.Assessment.OverallRiskScore, 'g', -1, 64)
	if err := os.WriteFile(filepath.Join(w.dir, ScoreFile), []byte(score), 0644); err != nil {
		return fmt.Errorf("write score artifact: %w", err)
	}

	assessment, err := json.MarshalIndent(result.Assessment, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, AssessmentFile), assessment, 0644); err != nil {
		return fmt.Errorf("write assessment artifact: %w", err)
	}

	return nil
}

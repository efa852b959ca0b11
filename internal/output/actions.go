package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shipgate/shipgate/internal/risk"
)

// CI signal names exposed to the orchestrating pipeline
const (
	SignalStrategy  = "deployment-strategy"
	SignalRiskScore = "risk-score"
	SignalRiskLevel = "risk-level"
)

// EmitSignals exposes the verdict as named key/value signals. When the
// GITHUB_OUTPUT file is available the signals are appended there; otherwise
// they are printed as legacy ::set-output workflow commands.
func EmitSignals(stdout io.Writer, result *risk.Result) error {
	signals := [][2]string{
		{SignalStrategy, string(result.Assessment.RecommendedStrategy)},
		{SignalRiskScore, strconv.FormatFloat(result.Assessment.OverallRiskScore, 'g', -1, 64)},
		{SignalRiskLevel, string(result.Assessment.RiskLevel)},
	}

	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open GITHUB_OUTPUT: %w", err)
		}
		defer f.Close()

		for _, kv := range signals {
			if _, err := fmt.Fprintf(f, "%s=%s\n", kv[0], kv[1]); err != nil {
				return fmt.Errorf("write GITHUB_OUTPUT: %w", err)
			}
		}
		return nil
	}

	for _, kv := range signals {
		fmt.Fprintf(stdout, "::set-output name=%s::%s\n", kv[0], kv[1])
	}
	return nil
}

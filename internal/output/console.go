package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shipgate/shipgate/internal/risk"
)

// PrintSummary writes the human-readable console summary: computed factor
// scores and the final recommendation, whichever path produced it.
func PrintSummary(w io.Writer, result *risk.Result) {
	fmt.Fprintln(w, "🚀 Deployment Risk Assessment")
	fmt.Fprintln(w, strings.Repeat("=", 40))

	fmt.Fprintln(w, "Risk factors:")
	fmt.Fprintf(w, "  code_complexity:     %.2f\n", result.Factors.CodeComplexity)
	fmt.Fprintf(w, "  dependency_changes:  %.2f\n", result.Factors.DependencyChanges)
	fmt.Fprintf(w, "  test_coverage:       %.2f\n", result.Factors.TestCoverage)
	fmt.Fprintf(w, "  performance_impact:  %.2f\n", result.Factors.PerformanceImpact)
	fmt.Fprintf(w, "  historical_failures: %.2f\n", result.Factors.HistoricalFailures)

	fmt.Fprintln(w, "\n🎯 Deployment Recommendation:")
	fmt.Fprintf(w, "Strategy: %s\n", strings.ToUpper(string(result.Assessment.RecommendedStrategy)))
	fmt.Fprintf(w, "Risk Level: %s\n", strings.ToUpper(string(result.Assessment.RiskLevel)))
	fmt.Fprintf(w, "Risk Score: %.2f\n", result.Assessment.OverallRiskScore)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", result.Assessment.Confidence*100)

	if result.UsedFallback {
		fmt.Fprintln(w, "⚠️  AI assessment unavailable, verdict produced by rule-based fallback")
	}

	if len(result.Assessment.KeyConcerns) > 0 {
		fmt.Fprintln(w, "Key Concerns:")
		for _, concern := range result.Assessment.KeyConcerns {
			fmt.Fprintf(w, "  - %s\n", concern)
		}
	}

	if len(result.Assessment.MitigationSteps) > 0 {
		fmt.Fprintln(w, "Mitigation Steps:")
		for _, step := range result.Assessment.MitigationSteps {
			fmt.Fprintf(w, "  - %s\n", step)
		}
	}

	fmt.Fprintf(w, "\n✅ Analysis complete. Strategy: %s\n", result.Assessment.RecommendedStrategy)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shipgate/shipgate/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd prints the persisted deployment history, most recent first
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the rolling deployment history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "show at most N records (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No deployment history recorded yet")
		return nil
	}

	recent := history.Recent(records, time.Now(), 7*24*time.Hour)
	fmt.Printf("%d deployments recorded, trailing 7-day failure rate: %.2f\n\n",
		len(records), history.FailureRate(recent))

	shown := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		fmt.Printf("%s  %s  score=%.2f  level=%-6s  strategy=%-15s  status=%s\n",
			r.Timestamp.Format(time.RFC3339),
			r.ID,
			r.Assessment.OverallRiskScore,
			r.Assessment.RiskLevel,
			r.Assessment.RecommendedStrategy,
			r.Status,
		)
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}

	return nil
}

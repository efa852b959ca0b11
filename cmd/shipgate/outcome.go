package main

import (
	"context"
	"fmt"

	"github.com/shipgate/shipgate/internal/history"
	"github.com/shipgate/shipgate/internal/models"
	"github.com/spf13/cobra"
)

// outcomeCmd records the real outcome of a past deployment. The
// historical-failure factor counts records marked failed, so CI should call
// this after each deployment completes or is rolled back.
var outcomeCmd = &cobra.Command{
	Use:   "outcome <id|latest> <succeeded|failed>",
	Short: "Record the outcome of a past deployment",
	Args:  cobra.ExactArgs(2),
	RunE:  runOutcome,
}

func runOutcome(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id, status := args[0], args[1]

	switch status {
	case models.StatusSucceeded, models.StatusFailed:
	default:
		return fmt.Errorf("invalid status %q, expected %q or %q", status, models.StatusSucceeded, models.StatusFailed)
	}

	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer store.Close()

	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	records, err = history.SetOutcome(records, id, status)
	if err != nil {
		return err
	}

	if err := store.Save(ctx, records); err != nil {
		return fmt.Errorf("save history: %w", err)
	}

	fmt.Printf("✅ Deployment %s marked %s\n", id, status)
	return nil
}

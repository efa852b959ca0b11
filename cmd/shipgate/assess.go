package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shipgate/shipgate/internal/git"
	"github.com/shipgate/shipgate/internal/github"
	"github.com/shipgate/shipgate/internal/history"
	"github.com/shipgate/shipgate/internal/llm"
	"github.com/shipgate/shipgate/internal/output"
	"github.com/shipgate/shipgate/internal/risk"
	"github.com/spf13/cobra"
)

// assessCmd runs the full risk assessment pipeline once per CI run
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess deployment risk for the pending change",
	Long: `Inspects the diff between the previous and current revision, computes five
heuristic risk factors, aggregates them into a verdict (AI-assisted with a
deterministic fallback), writes the output artifacts and appends the run to
the rolling deployment history.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().String("base", "", "base revision (default: HEAD~1)")
	assessCmd.Flags().String("head", "", "head revision (default: HEAD)")
	assessCmd.Flags().String("output-dir", "", "directory for output artifacts")
	assessCmd.Flags().Bool("no-ai", false, "skip the AI advisory call, use the rule-based verdict")
	assessCmd.Flags().Bool("github", false, "fetch the diff via the GitHub compare API instead of local git")
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	baseRev, _ := cmd.Flags().GetString("base")
	headRev, _ := cmd.Flags().GetString("head")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	noAI, _ := cmd.Flags().GetBool("no-ai")
	useGitHub, _ := cmd.Flags().GetBool("github")

	if baseRev == "" {
		baseRev = cfg.Git.BaseRev
	}
	if headRev == "" {
		headRev = cfg.Git.HeadRev
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	// The tool usually runs from somewhere inside the checkout; resolve the
	// repository root so file reads and git invocations agree on paths
	repoPath := cfg.Git.RepoPath
	if repoPath == "" || repoPath == "." {
		if root, err := git.FindGitRoot(); err == nil {
			repoPath = root
		}
	}

	// Diff inspection: local git by default, GitHub compare API for shallow
	// CI checkouts where the parent commit is not present locally
	var source risk.ChangeSource
	if useGitHub {
		inspector, err := github.NewInspector(
			cfg.GitHub.Token, cfg.GitHub.Repository, baseRev, headRev, cfg.GitHub.RateLimit, logger)
		if err != nil {
			return fmt.Errorf("github inspector: %w", err)
		}
		source = inspector
	} else {
		source = git.NewInspector(repoPath, baseRev, headRev, logger)
	}

	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer store.Close()

	// Advisory chain: LLM primary unless disabled, deterministic fallback
	var primary risk.Advisor
	if !noAI && !cfg.Advisor.Disabled {
		client, err := llm.NewClient(ctx, cfg)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize AI client, using rule-based fallback")
		} else if client.IsEnabled() {
			logger.WithField("provider", client.GetProvider()).Debug("AI advisor enabled")
			primary = risk.NewLLMAdvisor(client)
		}
	}
	chain := risk.NewAdvisorChain(primary, risk.NewRuleAdvisor(), cfg.Advisor.Timeout, logger)

	engine := risk.NewEngine(source, risk.Calculators(repoPath), chain, store, logger)

	// A persistence failure still comes with a completed verdict; the
	// artifacts and CI signals are emitted before the error is surfaced
	result, runErr := engine.Run(ctx)
	if result == nil {
		return fmt.Errorf("assessment run: %w", runErr)
	}

	writer := output.NewWriter(outputDir)
	if err := writer.WriteArtifacts(result); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	output.PrintSummary(os.Stdout, result)

	if err := output.EmitSignals(os.Stdout, result); err != nil {
		logger.WithError(err).Warn("failed to emit CI signals")
	}

	if runErr != nil {
		return fmt.Errorf("assessment run: %w", runErr)
	}

	return nil
}

// newHistoryStore builds the configured history backend
func newHistoryStore() (history.Store, error) {
	switch cfg.History.Backend {
	case "sqlite":
		return history.NewSQLiteStore(cfg.History.Path, logger)
	case "file", "":
		return history.NewFileStore(cfg.History.Path, logger), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rlevin/matchpoint/internal/pipeline"
	"github.com/spf13/cobra"
)

var policyTimeout time.Duration

// policyCmd represents the policy command
var policyCmd = &cobra.Command{
	Use:   "policy <handbook>",
	Short: "Answer a benefits-policy question from a handbook",
	Long: `Policy extracts the sections of a benefits handbook relevant to a
question and returns a structured answer with sources, conflicting
percentage figures, and a confidence level.

Example:
  matchpoint policy handbook.txt
  matchpoint policy handbook.pdf --question "What is the 401k vesting schedule?"`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)

	policyCmd.Flags().StringVar(&question, "question", "", "policy question (default: match/HSA/vesting overview)")
	policyCmd.Flags().DurationVar(&policyTimeout, "timeout", time.Minute, "overall timeout")
	policyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable handbook text cache")
	policyCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "chunk size in characters (0 = default)")
	policyCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "chunk overlap in characters (-1 = default)")
	policyCmd.Flags().IntVar(&topK, "top-k", 0, "number of chunks retrieved on the fallback path (0 = default)")
}

func runPolicy(cmd *cobra.Command, args []string) error {
	handbook := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), policyTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	analyzer, err := pipeline.NewAnalyzer(cfg, tracerFor(verbose))
	if err != nil {
		return fmt.Errorf("build analyzer: %w", err)
	}

	answer, err := analyzer.AnswerPolicyQuestion(ctx, handbook, question)
	if err != nil {
		return fmt.Errorf("policy question failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(answer)
}

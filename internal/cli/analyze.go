package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/pipeline"
	"github.com/rlevin/matchpoint/internal/trace"
	"github.com/spf13/cobra"
)

var (
	recordPath   string
	question     string
	outJSON      string
	outMD        string
	outYAML      string
	timeout      time.Duration
	noCache      bool
	cacheDir     string
	noFooter     bool
	chunkSize    int
	chunkOverlap int
	topK         int
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <handbook>",
	Short: "Analyze a handbook and paystub record for 401k match leakage",
	Long: `Analyze reads a benefits handbook and one paystub record to:
- Extract the employer match policy (tiered or flat)
- Estimate pay frequency from the paystub period dates
- Compute the annual value of unclaimed employer match
- Cross-check the paystub arithmetic
- Flag upcoming RSU vesting events
- Compose a prioritized action plan

Example:
  matchpoint analyze handbook.txt --record paystub.json
  matchpoint analyze handbook.pdf --record paystub.json --json report.json --md report.md
  matchpoint analyze handbook.txt --record paystub.json --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&recordPath, "record", "", "paystub record file (JSON, required)")
	_ = analyzeCmd.MarkFlagRequired("record")
	analyzeCmd.Flags().StringVar(&question, "question", "", "policy question override for handbook retrieval")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path (optional)")

	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable handbook text cache")
	analyzeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist handbook cache to this directory (default: in-memory)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Retrieval flags
	analyzeCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "chunk size in characters (0 = default)")
	analyzeCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "chunk overlap in characters (-1 = default)")
	analyzeCmd.Flags().IntVar(&topK, "top-k", 0, "number of chunks retrieved on the fallback path (0 = default)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM recommendation synthesis")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	handbook := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Handbook: %s\n", handbook)
		fmt.Fprintf(os.Stderr, "Record:   %s\n", recordPath)
		fmt.Fprintf(os.Stderr, "Cache:    %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	paystub, rsu, err := pipeline.ReadRecordFile(recordPath)
	if err != nil {
		return fmt.Errorf("read record file: %w", err)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg, tracerFor(verbose))
	if err != nil {
		return fmt.Errorf("build analyzer: %w", err)
	}

	report, err := analyzer.Analyze(ctx, pipeline.Request{
		HandbookPath: handbook,
		Question:     question,
		Paystub:      paystub,
		RSU:          rsu,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Annual opportunity cost: $%.2f\n", report.Metrics.AnnualOpportunityCost)
		fmt.Fprintf(os.Stderr, "✓ Paystub verification: %s\n", report.Verification.Status)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Synthesized recommendation using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	return renderReport(cfg, report, outJSON, outMD, outYAML)
}

// buildConfig assembles configuration from defaults plus CLI flags, and pulls
// API keys from the environment when the LLM path is on.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if chunkSize > 0 {
		cfg.Retrieval.ChunkSize = chunkSize
	}
	if chunkOverlap >= 0 {
		cfg.Retrieval.ChunkOverlap = chunkOverlap
	}
	if topK > 0 {
		cfg.Retrieval.TopK = topK
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		if llmProvider == "openai" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
			if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	return cfg, nil
}

func tracerFor(verbose bool) trace.Tracer {
	if verbose {
		return trace.NewDevelopment()
	}
	return trace.Nop()
}

func renderReport(cfg *model.Config, report *model.Report, jsonPath, mdPath, yamlPath string) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if jsonPath != "" {
		if err := renderer.WriteJSON(report, jsonPath); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := renderer.WriteMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", mdPath)
		}
	}
	if yamlPath != "" {
		if err := renderer.WriteYAML(report, yamlPath); err != nil {
			return fmt.Errorf("write YAML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", yamlPath)
		}
	}
	return nil
}

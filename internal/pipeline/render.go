package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rlevin/matchpoint/internal/model"
)

// Renderer turns a report into output artifacts.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes the report as indented JSON.
func (r *Renderer) WriteJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteYAML writes the report as YAML.
func (r *Renderer) WriteYAML(report *model.Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteMarkdown writes the human-readable report.
func (r *Renderer) WriteMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the report for humans.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Matchpoint Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if report.Handbook != "" {
		fmt.Fprintf(&b, "Handbook: `%s`\n\n", report.Handbook)
	}

	m := report.Metrics
	fmt.Fprintf(&b, "## Leakage Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Gross pay per period | $%.2f |\n", m.GrossPay)
	fmt.Fprintf(&b, "| Current 401k per period | $%.2f |\n", m.Current401k)
	fmt.Fprintf(&b, "| Current 401k rate | %.2f%% |\n", m.Current401kRate*100)
	fmt.Fprintf(&b, "| Match rate | %.2f%% |\n", m.MatchRate*100)
	fmt.Fprintf(&b, "| Match up to | %.2f%% |\n", m.MatchUpTo*100)
	fmt.Fprintf(&b, "| Contribution gap | %.2f%% |\n", m.GapRate*100)
	fmt.Fprintf(&b, "| Annual opportunity cost | $%.2f |\n", m.AnnualOpportunityCost)
	fmt.Fprintf(&b, "| Pay periods per year | %d |\n\n", m.PayPeriodsPerYear)

	if m.TiersPresent {
		fmt.Fprintf(&b, "### Match Tiers\n\n")
		for _, tier := range m.Tiers {
			fmt.Fprintf(&b, "- %.0f%% match on %.1f%% of salary\n", tier.Rate*100, tier.Limit*100)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Payroll Integrity\n\n%s: %s\n\n", report.Verification.Status, report.Verification.Message)

	if report.Vesting != nil {
		v := report.Vesting
		fmt.Fprintf(&b, "## Vesting\n\n")
		fmt.Fprintf(&b, "- Next vesting date: %s (%d days)\n", v.NextVestingDate, v.DaysRemaining)
		fmt.Fprintf(&b, "- Shares: %.0f\n", v.Shares)
		if v.ValueEstimate > 0 {
			fmt.Fprintf(&b, "- Estimated value: $%.2f at $%.2f/share\n", v.ValueEstimate, v.StockPrice)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Policy Retrieval\n\n")
	fmt.Fprintf(&b, "- Confidence: %s\n", report.Policy.Confidence)
	fmt.Fprintf(&b, "- Conflicts detected: %v\n\n", report.Policy.Conflicts)

	if len(report.Reasoning) > 0 {
		fmt.Fprintf(&b, "## Reasoning\n\n")
		for _, entry := range report.Reasoning {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", entry.Assumption, entry.Calculation, entry.Result)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Recommendation\n\n%s\n", report.Recommendation)

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n\nGenerated by matchpoint. Estimates only; confirm figures with your plan administrator.\n")
	}

	return b.String()
}

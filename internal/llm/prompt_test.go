package llm

import (
	"strings"
	"testing"

	"github.com/rlevin/matchpoint/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(SynthesizeRequest{
		Metrics: model.LeakageMetrics{
			EmployeeName:          "Jordan Lee",
			AnnualOpportunityCost: 720,
		},
		Verification: model.VerificationResult{Status: model.VerifyCorrect},
	})

	if !strings.HasPrefix(prompt, "You are the Strategist.") {
		t.Errorf("Unexpected prompt prefix: %q", prompt)
	}
	if !strings.Contains(prompt, `"annual_opportunity_cost":720`) {
		t.Errorf("Expected metrics serialized, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"paystub_verification"`) {
		t.Errorf("Expected verification section, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Recommendation: ...") {
		t.Errorf("Expected format suffix, got:\n%s", prompt)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("Expected disabled path for empty provider, got %v %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "OpenAI", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected openai provider, got %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected name openai, got %s", p.Name())
	}
}

// Package pipeline wires the analysis stages together: handbook loading,
// policy retrieval, leakage math, verification, vesting analysis and
// recommendation synthesis.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rlevin/matchpoint/internal/cache"
	"github.com/rlevin/matchpoint/internal/docload"
	"github.com/rlevin/matchpoint/internal/llm"
	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/policy"
	"github.com/rlevin/matchpoint/internal/price"
	"github.com/rlevin/matchpoint/internal/retrieve"
	"github.com/rlevin/matchpoint/internal/strategy"
	"github.com/rlevin/matchpoint/internal/trace"
	"github.com/rlevin/matchpoint/internal/worker"
)

// DefaultPolicyQuestion is asked of the handbook when the caller supplies
// no question of their own.
const DefaultPolicyQuestion = "Find sections with match formulas, HSA contributions, and vesting schedules."

// boostedQuery is the retrieval query used on the chunking fallback path.
// It front-loads the policy vocabulary so token overlap favors match and
// vesting language over generic handbook text.
const boostedQuery = "401k match employer contribution percent tiered vesting cliff graded hsa contribute"

// Request is one analysis invocation: one handbook, one paystub record, and
// optionally one RSU record.
type Request struct {
	HandbookPath string
	Question     string
	Paystub      model.PaystubRecord
	RSU          *model.RSURecord
}

// Analyzer runs the full analysis. It is stateless across calls apart from
// the handbook-text cache, so one Analyzer serves concurrent requests.
type Analyzer struct {
	loader    *docload.Loader
	store     cache.Cache // nil when caching disabled
	chunker   *retrieve.Chunker
	retriever *retrieve.Retriever
	sections  *retrieve.SectionExtractor
	vesting   *strategy.VestingAnalyzer
	provider  llm.Provider // nil when LLM path disabled
	limiter   *worker.Limiter
	tracer    trace.Tracer
	cfg       *model.Config
}

// NewAnalyzer builds an analyzer from configuration. Chunker configuration
// errors are fatal; an unusable LLM provider only disables the LLM path.
func NewAnalyzer(cfg *model.Config, tracer trace.Tracer) (*Analyzer, error) {
	chunker, err := retrieve.NewChunker(cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("retrieval config: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewDisk(cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemory(cfg.Cache.TTL)
		}
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	if tracer == nil {
		tracer = trace.Nop()
	}

	return &Analyzer{
		loader:    docload.NewLoader(),
		store:     store,
		chunker:   chunker,
		retriever: retrieve.NewRetriever(cfg.Retrieval.TopK),
		sections:  retrieve.NewSectionExtractor(),
		vesting:   strategy.NewVestingAnalyzer(price.NewCached(price.NewStaticTable(), 15*time.Minute)),
		provider:  provider,
		limiter:   worker.NewLimiter(cfg.Concurrency.LLMRatePerSec, 1),
		tracer:    tracer,
		cfg:       cfg,
	}, nil
}

// AnswerPolicyQuestion locates the policy text answering the question.
// Keyword-bearing handbook sections are the primary path; when none qualify,
// the handbook is chunked and the best-scoring chunks become the answer.
func (a *Analyzer) AnswerPolicyQuestion(ctx context.Context, handbookPath, question string) (*model.PolicyAnswer, error) {
	if question == "" {
		question = DefaultPolicyQuestion
	}
	a.tracer.Step("policy_question_received", zap.String("question", question))

	text, err := a.loadHandbook(handbookPath)
	if err != nil {
		return nil, err
	}
	a.tracer.Step("policy_handbook_loaded", zap.Int("characters", len(text)))

	sections, conflicts := a.sections.Sections(text)
	a.tracer.Step("policy_sections_found", zap.Int("count", len(sections)), zap.Bool("conflicts", conflicts))

	answer := &model.PolicyAnswer{
		Question:   question,
		Conflicts:  conflicts,
		Confidence: retrieve.Confidence(sections, conflicts),
	}
	if len(sections) > 0 {
		answer.Answer = strings.Join(sections, "\n\n---\n\n")
		return answer, nil
	}

	a.tracer.Step("policy_section_fallback", zap.String("reason", "no sections matched"))
	chunks := a.chunker.Chunk(text)
	a.tracer.Step("policy_chunks_created", zap.Int("count", len(chunks)))
	matches := a.retriever.Retrieve(boostedQuery, chunks)
	a.tracer.Step("policy_chunks_retrieved", zap.Int("count", len(matches)))

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.Text)
	}
	answer.Answer = strings.Join(texts, "\n\n")
	answer.Sources = matches
	return answer, nil
}

// Analyze runs the complete pipeline for one request.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.Report, error) {
	policyAnswer, err := a.AnswerPolicyQuestion(ctx, req.HandbookPath, req.Question)
	if err != nil {
		return nil, fmt.Errorf("policy retrieval: %w", err)
	}

	snapshot := policy.ParseAnswer(policyAnswer.Answer)
	a.tracer.Step("policy_parsed", zap.Bool("structured", snapshot.Raw == ""))

	metrics := strategy.ComputeLeakedValue(req.Paystub, snapshot)
	metrics.EmployeeName = req.Paystub.EmployeeName
	if metrics.EmployeeName == "" {
		metrics.EmployeeName = "Employee"
	}
	a.tracer.Step("metrics_computed",
		zap.Float64("gap_rate", metrics.GapRate),
		zap.Float64("annual_opportunity_cost", metrics.AnnualOpportunityCost),
		zap.Bool("tiers_present", metrics.TiersPresent),
	)

	verification := strategy.VerifyPaystub(req.Paystub)
	a.tracer.Step("paystub_verified", zap.String("status", verification.Status))

	var vesting *model.VestingAlert
	if req.RSU != nil {
		vesting = a.vesting.Analyze(*req.RSU)
		if vesting != nil {
			a.tracer.Step("rsu_analyzed", zap.Int("days_remaining", vesting.DaysRemaining))
		}
	}

	plan := strategy.BuildActionPlan(metrics)
	reasoning := strategy.BuildReasoning(metrics)

	report := &model.Report{
		GeneratedAt:  time.Now(),
		Handbook:     req.HandbookPath,
		Policy:       *policyAnswer,
		Metrics:      metrics,
		Verification: verification,
		Vesting:      vesting,
		Reasoning:    reasoning,
		ActionPlan:   plan,
	}

	report.Recommendation = strategy.ComposeRecommendation(metrics, verification, vesting, policyAnswer.Conflicts, plan)
	if a.provider != nil {
		a.synthesize(ctx, report)
	}

	return report, nil
}

// synthesize replaces the deterministic recommendation with the hosted
// model's phrasing when the provider cooperates. Failures leave the
// deterministic text in place and are recorded as warnings.
func (a *Analyzer) synthesize(ctx context.Context, report *model.Report) {
	synthesis := &model.LLMSynthesis{
		Enabled:  true,
		Provider: a.provider.Name(),
	}
	report.LLM = synthesis

	if err := a.limiter.Wait(ctx, a.provider.Name()); err != nil {
		synthesis.Warnings = append(synthesis.Warnings, fmt.Sprintf("rate limit wait: %v", err))
		return
	}

	resp, err := a.provider.Synthesize(ctx, llm.SynthesizeRequest{
		Metrics:      report.Metrics,
		Verification: report.Verification,
		Vesting:      report.Vesting,
		Policy:       report.Policy,
	})
	if err != nil {
		synthesis.Warnings = append(synthesis.Warnings, fmt.Sprintf("synthesis failed, using deterministic composer: %v", err))
		return
	}
	synthesis.Model = resp.Model
	report.Recommendation = resp.Recommendation
	a.tracer.Step("recommendation_synthesized", zap.String("model", resp.Model), zap.Int("tokens", resp.TokensUsed))
}

// loadHandbook reads handbook text through the cache when one is configured.
func (a *Analyzer) loadHandbook(path string) (string, error) {
	if a.store == nil {
		return a.loader.Load(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", docload.ErrDocumentNotFound, path)
	}
	key := cache.HandbookKey(path, info.ModTime())
	if data, found := a.store.Get(key); found {
		a.tracer.Step("handbook_cache_hit", zap.String("path", path))
		return string(data), nil
	}

	text, err := a.loader.Load(path)
	if err != nil {
		return "", err
	}
	if err := a.store.Set(key, []byte(text), 0); err != nil {
		a.tracer.Step("handbook_cache_write_failed", zap.Error(err))
	}
	return text, nil
}

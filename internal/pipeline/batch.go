package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/worker"
)

// recordFile is the on-disk shape of one extracted record: either an
// envelope with paystub/rsu members, or a bare paystub object.
type recordFile struct {
	Paystub *model.PaystubRecord `json:"paystub"`
	RSU     *model.RSURecord     `json:"rsu"`
}

// ReadRecordFile decodes a paystub/RSU record file.
func ReadRecordFile(path string) (model.PaystubRecord, *model.RSURecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PaystubRecord{}, nil, fmt.Errorf("read record: %w", err)
	}

	var envelope recordFile
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Paystub != nil {
		return *envelope.Paystub, envelope.RSU, nil
	}

	var paystub model.PaystubRecord
	if err := json.Unmarshal(data, &paystub); err != nil {
		return model.PaystubRecord{}, nil, fmt.Errorf("decode record %s: %w", path, err)
	}
	return paystub, nil, nil
}

// AnalyzeJob analyzes one record file against the shared handbook.
type AnalyzeJob struct {
	Path     string
	Handbook string
	Question string
	Analyzer *Analyzer
}

// Execute implements worker.Job.
func (j *AnalyzeJob) Execute(ctx context.Context) worker.Result {
	paystub, rsu, err := ReadRecordFile(j.Path)
	if err != nil {
		return &BatchResult{Path: j.Path, Error: err}
	}
	report, err := j.Analyzer.Analyze(ctx, Request{
		HandbookPath: j.Handbook,
		Question:     j.Question,
		Paystub:      paystub,
		RSU:          rsu,
	})
	return &BatchResult{Path: j.Path, Report: report, Error: err}
}

// BatchResult is the outcome for one record file.
type BatchResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// Err implements worker.Result.
func (r *BatchResult) Err() error { return r.Error }

// BatchProcessor analyzes many record files concurrently against one
// handbook. Every record is an independent invocation of the analyzer.
type BatchProcessor struct {
	analyzer    *Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer *Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessPaths analyzes the given record files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, handbook string, paths []string) []*BatchResult {
	if len(paths) == 0 {
		return []*BatchResult{}
	}

	pool := worker.NewPool(b.concurrency)
	pool.Start()
	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Handbook: handbook,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()
	batchResults := make([]*BatchResult, len(results))
	for i, result := range results {
		batchResults[i] = result.(*BatchResult)
	}
	return batchResults
}

// ProcessFile reads record paths from a list file (one per line, # comments
// allowed, duplicates skipped) and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, handbook, listPath string) ([]*BatchResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read record list: %w", err)
	}
	return b.ProcessPaths(ctx, handbook, paths), nil
}

// ReadPathsFromFile reads file paths from a list file, one per line.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}

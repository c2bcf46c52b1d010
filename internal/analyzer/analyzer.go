package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"javacheck/internal/analyzer/detectors"
	"javacheck/internal/analyzer/metrics"
	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/javatree"
	"javacheck/internal/models"
	"javacheck/internal/telemetry"
)

// Reasons recorded for files that could not be analyzed.
const (
	SkipRead   = "read"
	SkipSize   = "size"
	SkipParse  = "parse"
	SkipBuild  = "build"
	SkipDetect = "detect"
	SkipMetric = "metric"
)

type Analyzer struct {
	config     *config.Config
	detectors  []Detector
	collectors []metrics.Collector
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// Detector finds one refactoring pattern in a built AST. An error means the
// tree did not have the shape the detector relies on; the file is skipped.
type Detector interface {
	Name() string
	Pattern() models.IssueType
	Detect(tree *ast.AST, filename string) ([]models.Issue, error)
}

type Option func(*Analyzer)

// WithLogger sets the logger for per-file diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records counters into m instead of a private registry.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithCollectors replaces the configured metric collectors.
func WithCollectors(cs ...metrics.Collector) Option {
	return func(a *Analyzer) {
		a.collectors = cs
	}
}

// WithDetectors replaces the configured detector set.
func WithDetectors(ds ...Detector) Option {
	return func(a *Analyzer) {
		a.detectors = ds
	}
}

func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.DefaultConfig())
}

func NewAnalyzerWithConfig(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	analyzer := &Analyzer{
		config:  cfg,
		logger:  slog.Default(),
		metrics: telemetry.New(),
	}

	all := []Detector{
		// Design
		detectors.NewClassicGetterDetectorWithConfig(cfg),
		detectors.NewClassicSetterDetectorWithConfig(cfg),
		detectors.NewHybridConstructorDetectorWithConfig(cfg),
		detectors.NewMethodChainDetectorWithConfig(cfg),

		// Performance
		detectors.NewNestedLoopDetectorWithConfig(cfg),
		detectors.NewStringConcatDetectorWithConfig(cfg),

		// Complexity
		detectors.NewComplexityDetectorWithConfig(cfg),
		detectors.NewMethodLengthDetectorWithConfig(cfg),
	}
	for _, d := range all {
		if cfg.IsRuleEnabled(string(d.Pattern())) {
			analyzer.detectors = append(analyzer.detectors, d)
		}
	}

	if cfg.Analysis.CollectMetrics {
		analyzer.collectors = metrics.Default()
	}

	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// Metrics returns the counters this analyzer records into.
func (a *Analyzer) Metrics() *telemetry.Metrics {
	return a.metrics
}

type metricValue struct {
	name  string
	value float64
}

type fileResult struct {
	issues  []models.Issue
	metrics []metricValue
	reason  string
	err     error
}

// AnalyzeFiles analyzes files in parallel, at most max_workers at a time.
// A file that cannot be read, parsed, checked or measured is recorded in Skipped and
// never fails the batch; only cancellation of ctx does. Results keep the
// input order of filenames.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, filenames []string) (*models.AnalysisResult, error) {
	startTime := time.Now()
	results := make([]fileResult, len(filenames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.config.Analysis.MaxWorkers, 1))
	for i, filename := range filenames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeFile(gctx, filename)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	result := models.NewAnalysisResult()
	for i, filename := range filenames {
		r := results[i]
		if r.err != nil {
			result.AddSkipped(filename, r.reason, r.err)
			continue
		}
		result.Files = append(result.Files, filename)
		for _, issue := range r.issues {
			result.AddIssue(issue)
		}
		for _, m := range r.metrics {
			result.SetMetric(filename, m.name, m.value)
		}
	}

	result.AnalysisDuration = time.Since(startTime).String()
	result.CalculateScore()
	result.RankPatterns()

	a.logger.Info("analysis finished",
		"run_id", result.RunID,
		"files", len(result.Files),
		"skipped", len(result.Skipped),
		"issues", result.TotalIssues,
		"duration", result.AnalysisDuration)
	return result, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, filename string) fileResult {
	start := time.Now()
	logger := a.logger.With("file", filename)

	if limit := a.config.Files.MaxFileSize; limit > 0 {
		info, err := os.Stat(filename)
		if err != nil {
			return a.skip(logger, SkipRead, err)
		}
		if info.Size() > int64(limit)*1024 {
			return a.skip(logger, SkipSize, fmt.Errorf("file is %d KB, limit is %d KB", info.Size()/1024, limit))
		}
	}

	parser := javatree.NewParser()
	defer parser.Close()

	root, err := parser.ParseFile(ctx, filename)
	if err != nil {
		var readErr *javatree.FileReadError
		if errors.As(err, &readErr) {
			return a.skip(logger, SkipRead, err)
		}
		return a.skip(logger, SkipParse, err)
	}

	tree, err := ast.Build(root)
	if err != nil {
		return a.skip(logger, SkipBuild, err)
	}

	var issues []models.Issue
	for _, d := range a.detectors {
		found, err := d.Detect(tree, filename)
		if err != nil {
			return a.skip(logger, SkipDetect, fmt.Errorf("%s: %w", d.Name(), err))
		}
		issues = append(issues, found...)
	}

	values := make([]metricValue, 0, len(a.collectors))
	for _, c := range a.collectors {
		v, err := c.Collect(tree)
		if err != nil {
			return a.skip(logger, SkipMetric, fmt.Errorf("%s: %w", c.Name(), err))
		}
		values = append(values, metricValue{name: c.Name(), value: v})
	}

	elapsed := time.Since(start)
	a.metrics.ObserveFile(tree.Len(), elapsed)
	for _, issue := range issues {
		a.metrics.ObserveIssue(string(issue.Type))
	}
	logger.Debug("analyzed file", "nodes", tree.Len(), "issues", len(issues), "duration", elapsed)

	return fileResult{issues: issues, metrics: values}
}

func (a *Analyzer) skip(logger *slog.Logger, reason string, err error) fileResult {
	a.metrics.ObserveSkip(reason)
	logger.Warn("skipping file", "reason", reason, "error", err)
	return fileResult{reason: reason, err: err}
}

// GetDetectorCount returns the number of active detectors
func (a *Analyzer) GetDetectorCount() int {
	return len(a.detectors)
}

// GetDetectorNames returns the names of all active detectors
func (a *Analyzer) GetDetectorNames() []string {
	names := make([]string, len(a.detectors))
	for i, detector := range a.detectors {
		names[i] = detector.Name()
	}
	return names
}

package models

import (
	"sort"

	"github.com/google/uuid"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IssueType names a refactoring pattern.
type IssueType string

const (
	IssueClassicGetter     IssueType = "classic_getter"
	IssueClassicSetter     IssueType = "classic_setter"
	IssueHybridConstructor IssueType = "hybrid_constructor"
	IssueNestedLoops       IssueType = "nested_loops"
	IssueStringConcat      IssueType = "string_concatenation"
	IssueMethodLength      IssueType = "method_length"
	IssueCyclomaticComplex IssueType = "cyclomatic_complexity"
	IssueMethodChain       IssueType = "method_chain"
)

// Weight is the relative cost of one occurrence of a pattern; ranking and
// scoring multiply by it.
func (t IssueType) Weight() float64 {
	switch t {
	case IssueCyclomaticComplex, IssueMethodLength:
		return 1.2 // maintainability
	case IssueNestedLoops, IssueStringConcat:
		return 1.5 // performance
	case IssueHybridConstructor:
		return 1.3
	default:
		return 1.0
	}
}

type Issue struct {
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	File       string    `json:"file"`
	Line       int       `json:"line"`
	Method     string    `json:"method,omitempty"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
	Complexity string    `json:"complexity,omitempty"`
}

// SkippedFile records a file the pipeline could not analyze.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// PatternRank is one row of the per-run pattern ranking.
type PatternRank struct {
	Pattern     IssueType `json:"pattern"`
	Occurrences int       `json:"occurrences"`
	Score       float64   `json:"score"`
}

type AnalysisResult struct {
	RunID            string                        `json:"run_id"`
	Files            []string                      `json:"files_analyzed"`
	Skipped          []SkippedFile                 `json:"files_skipped,omitempty"`
	TotalIssues      int                           `json:"total_issues"`
	IssuesBySeverity map[string]int                `json:"issues_by_severity"`
	Issues           []Issue                       `json:"issues"`
	Metrics          map[string]map[string]float64 `json:"metrics,omitempty"`
	Ranking          []PatternRank                 `json:"ranking"`
	QualityScore     int                           `json:"quality_score"` // 0-100 scale
	AnalysisDuration string                        `json:"analysis_duration"`
}

func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		RunID:            uuid.NewString(),
		Files:            make([]string, 0),
		Issues:           make([]Issue, 0),
		IssuesBySeverity: make(map[string]int),
		Metrics:          make(map[string]map[string]float64),
	}
}

func (ar *AnalysisResult) AddIssue(issue Issue) {
	ar.Issues = append(ar.Issues, issue)
	ar.TotalIssues++
	ar.IssuesBySeverity[issue.Severity.String()]++
}

func (ar *AnalysisResult) AddSkipped(file, reason string, err error) {
	skipped := SkippedFile{File: file, Reason: reason}
	if err != nil {
		skipped.Error = err.Error()
	}
	ar.Skipped = append(ar.Skipped, skipped)
}

func (ar *AnalysisResult) SetMetric(file, name string, value float64) {
	if ar.Metrics[file] == nil {
		ar.Metrics[file] = make(map[string]float64)
	}
	ar.Metrics[file][name] = value
}

func (ar *AnalysisResult) CalculateScore() {
	if ar.TotalIssues == 0 {
		ar.QualityScore = 100
		return
	}

	penalty := 0
	for _, issue := range ar.Issues {
		basePenalty := 0
		switch issue.Severity {
		case SeverityLow:
			basePenalty = 5
		case SeverityMedium:
			basePenalty = 15
		case SeverityHigh:
			basePenalty = 30
		case SeverityCritical:
			basePenalty = 50
		}
		penalty += int(float64(basePenalty) * issue.Type.Weight())
	}

	ar.QualityScore = max(100-penalty, 0)
}

// RankPatterns orders the patterns found in this run by expected
// improvement (occurrences times weight), highest first. Ties fall back to
// the pattern name.
func (ar *AnalysisResult) RankPatterns() {
	counts := make(map[IssueType]int)
	for _, issue := range ar.Issues {
		counts[issue.Type]++
	}

	ranking := make([]PatternRank, 0, len(counts))
	for pattern, n := range counts {
		ranking = append(ranking, PatternRank{
			Pattern:     pattern,
			Occurrences: n,
			Score:       float64(n) * pattern.Weight(),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Pattern < ranking[j].Pattern
	})
	ar.Ranking = ranking
}

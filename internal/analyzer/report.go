package analyzer

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"javacheck/internal/config"
	"javacheck/internal/models"

	"github.com/fatih/color"
)

// ReportGenerator handles formatting and displaying analysis results
type ReportGenerator struct {
	format string
	config *config.Config
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(format string) *ReportGenerator {
	return &ReportGenerator{
		format: format,
		config: config.DefaultConfig(),
	}
}

func NewReportGeneratorWithConfig(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate creates a formatted report from analysis results
func (r *ReportGenerator) Generate(result *models.AnalysisResult) (string, error) {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	default:
		return r.generateConsole(result), nil
	}
}

func (r *ReportGenerator) generateJSON(result *models.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data) + "\n", nil
}

// printer writes either colored or plain text depending on the output config.
type printer struct {
	sb     *strings.Builder
	colors bool
}

func (p printer) line(c *color.Color, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if p.colors && c != nil {
		text = c.Sprint(text)
	}
	p.sb.WriteString(text)
	p.sb.WriteByte('\n')
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	titleColor  = color.New(color.FgWhite, color.Bold)
	infoColor   = color.New(color.FgCyan)
	hintColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
)

func (r *ReportGenerator) generateConsole(result *models.AnalysisResult) string {
	var sb strings.Builder
	p := printer{sb: &sb, colors: r.config.Output.Colors}

	p.line(headerColor, "javacheck analysis report")
	p.line(titleColor, "%s\n", strings.Repeat("=", 39))

	if r.config.Output.Verbose {
		r.writeConfigInfo(p)
	}

	r.writeSummary(p, result)
	r.writeQualityScore(p, result.QualityScore)

	if len(result.Issues) == 0 {
		p.line(hintColor, "No refactoring patterns found.\n")
	} else {
		r.writeSeverityCounts(p, result)
		r.writeRanking(p, result.Ranking)
		r.writeDetailedIssues(p, result.Issues, r.config.Output.ShowSuggestions)
	}

	if len(result.Skipped) > 0 {
		r.writeSkipped(p, result.Skipped)
	}
	if r.config.Output.Verbose && len(result.Metrics) > 0 {
		r.writeMetrics(p, result.Metrics)
	}

	p.line(nil, "Run %s completed in %s", result.RunID, result.AnalysisDuration)
	return sb.String()
}

func (r *ReportGenerator) writeConfigInfo(p printer) {
	t := r.config.Analysis.ScoreThresholds
	p.line(titleColor, "Configuration:")
	p.line(infoColor, "   Enabled categories: %s", strings.Join(r.config.Analysis.EnabledCategories, ", "))
	p.line(infoColor, "   Score thresholds: %d/%d/%d", t.Excellent, t.Good, t.Fair)
	p.line(infoColor, "   Workers: %d\n", r.config.Analysis.MaxWorkers)
}

func (r *ReportGenerator) writeSummary(p printer, result *models.AnalysisResult) {
	p.line(titleColor, "Summary:")
	p.line(nil, "   Files analyzed: %d", len(result.Files))
	if len(result.Skipped) > 0 {
		p.line(warnColor, "   Files skipped: %d", len(result.Skipped))
	}
	p.line(nil, "   Issues found: %d\n", result.TotalIssues)
}

// scoreRating maps a quality score onto the configured thresholds.
func (r *ReportGenerator) scoreRating(score int) (string, *color.Color) {
	t := r.config.Analysis.ScoreThresholds
	switch {
	case score >= t.Excellent:
		return "excellent", color.New(color.FgGreen)
	case score >= t.Good:
		return "good", color.New(color.FgYellow)
	case score >= t.Fair:
		return "fair", color.New(color.FgHiYellow)
	default:
		return "poor", color.New(color.FgRed)
	}
}

func (r *ReportGenerator) writeQualityScore(p printer, score int) {
	rating, c := r.scoreRating(score)
	p.line(c, "Quality Score: %d/100 (%s)\n", score, rating)
}

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case models.SeverityHigh:
		return color.New(color.FgRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgBlue)
	}
}

func (r *ReportGenerator) writeSeverityCounts(p printer, result *models.AnalysisResult) {
	p.line(titleColor, "Issues by Severity:")
	for _, s := range []models.Severity{models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow} {
		if n := result.IssuesBySeverity[s.String()]; n > 0 {
			p.line(severityColor(s), "   %s: %d", s, n)
		}
	}
	p.sb.WriteByte('\n')
}

func (r *ReportGenerator) writeRanking(p printer, ranking []models.PatternRank) {
	p.line(titleColor, "Patterns to fix first:")
	for i, rank := range ranking {
		p.line(nil, "   %d. %-22s %3d occurrence(s), score %.1f", i+1, rank.Pattern, rank.Occurrences, rank.Score)
	}
	p.sb.WriteByte('\n')
}

func (r *ReportGenerator) writeDetailedIssues(p printer, issues []models.Issue, suggestions bool) {
	p.line(titleColor, "Detailed Issues:")
	p.line(nil, "%s\n", strings.Repeat("-", 50))

	// critical first, then file order
	sorted := slices.Clone(issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity > sorted[j].Severity
	})

	for i, issue := range sorted {
		p.line(severityColor(issue.Severity), "Issue #%d - %s %s", i+1, issue.Severity, strings.ToUpper(string(issue.Type)))

		location := fmt.Sprintf("   Location: %s:%d", issue.File, issue.Line)
		if issue.Method != "" {
			location += fmt.Sprintf(" in method '%s'", issue.Method)
		}
		p.line(infoColor, "%s", location)
		p.line(nil, "   Issue: %s", issue.Message)
		if issue.Complexity != "" {
			p.line(warnColor, "   Complexity: %s", issue.Complexity)
		}

		if suggestions && issue.Suggestion != "" {
			p.line(hintColor, "   Suggestion:")
			for _, s := range strings.Split(issue.Suggestion, "\n") {
				if s = strings.TrimSpace(s); s != "" {
					p.line(hintColor, "      %s", s)
				}
			}
		}
		p.sb.WriteByte('\n')
	}
}

func (r *ReportGenerator) writeSkipped(p printer, skipped []models.SkippedFile) {
	p.line(warnColor, "Skipped files:")
	for _, s := range skipped {
		p.line(warnColor, "   %s (%s): %s", s.File, s.Reason, s.Error)
	}
	p.sb.WriteByte('\n')
}

func (r *ReportGenerator) writeMetrics(p printer, metrics map[string]map[string]float64) {
	p.line(titleColor, "Metrics:")
	files := make([]string, 0, len(metrics))
	for f := range metrics {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		names := make([]string, 0, len(metrics[f]))
		for name := range metrics[f] {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%g", name, metrics[f][name])
		}
		p.line(nil, "   %s: %s", f, strings.Join(parts, " "))
	}
	p.sb.WriteByte('\n')
}

package detectors

import (
	"fmt"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// MethodLengthDetector finds overly long methods and constructors that
// should be refactored
type MethodLengthDetector struct {
	config *config.Config
}

func NewMethodLengthDetector() *MethodLengthDetector {
	return &MethodLengthDetector{}
}

func NewMethodLengthDetectorWithConfig(cfg *config.Config) *MethodLengthDetector {
	return &MethodLengthDetector{
		config: cfg,
	}
}

func (d *MethodLengthDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *MethodLengthDetector) Name() string {
	return "Method Length Detector"
}

func (d *MethodLengthDetector) Pattern() models.IssueType {
	return models.IssueMethodLength
}

func (d *MethodLengthDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	thresholds := configOrDefault(d.config).Rules.Complexity.MethodLength
	issues := make([]models.Issue, 0)

	for _, method := range callables(tree) {
		loc, span := methodLines(tree, method)
		if loc < thresholds.MediumThreshold {
			continue
		}

		name := declName(tree, method)
		severity := calculateSeverity(loc, thresholds)
		issues = append(issues, models.Issue{
			Type:       models.IssueMethodLength,
			Severity:   severity,
			File:       filename,
			Line:       line(tree, method),
			Method:     name,
			Message:    fmt.Sprintf("Method '%s' is too long (%d lines of code, %d total lines) - consider breaking into smaller methods", name, loc, span),
			Suggestion: d.generateSuggestion(severity, loc),
			Complexity: fmt.Sprintf("Method length: %d lines", loc),
		})
	}

	return issues, nil
}

// methodLines counts the distinct source lines that carry a node of the
// method (its lines of code) and the span from the first to the last one.
func methodLines(tree *ast.AST, method ast.NodeID) (loc, span int) {
	seen := make(map[int]bool)
	first, last := 0, 0
	for id := range tree.Subtree(method) {
		l, ok := tree.Line(id)
		if !ok || l <= 0 {
			continue
		}
		seen[l] = true
		if first == 0 || l < first {
			first = l
		}
		last = max(last, l)
	}
	if first == 0 {
		return 0, 0
	}
	return len(seen), last - first + 1
}

func calculateSeverity(value int, t config.ThresholdConfig) models.Severity {
	switch {
	case value >= t.CriticalThreshold:
		return models.SeverityCritical
	case value >= t.HighThreshold:
		return models.SeverityHigh
	case value >= t.MediumThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func (d *MethodLengthDetector) generateSuggestion(severity models.Severity, loc int) string {
	baseAdvice := `Long methods are harder to understand, test, and maintain. Consider refactoring using these techniques:

1. **Extract Method**: Move logical blocks into separate private methods
2. **Single Responsibility**: Ensure the method does only one thing
3. **Reduce Nesting**: Use guard clauses to flatten conditional logic
4. **Replace Temp with Query**: Turn intermediate variables into small methods`

	switch severity {
	case models.SeverityMedium:
		return baseAdvice + `

Target: Break into 2-3 smaller methods of ~10-20 lines each.`

	case models.SeverityHigh:
		return baseAdvice + fmt.Sprintf(`

PRIORITY: This %d-line method significantly exceeds recommended limits.

Refactoring strategy:
1. Identify 3-5 main logical sections
2. Extract each section into a separate method
3. Use meaningful method names that describe intent
4. Consider whether the sections belong in a separate class`, loc)

	case models.SeverityCritical:
		return baseAdvice + fmt.Sprintf(`

CRITICAL: This %d-line method is extremely difficult to maintain!

Immediate action required:
1. **Stop adding features** to this method
2. **Add tests** that pin down its current behavior
3. **Extract a method object**: move the body into its own class and split it there`, loc)

	default:
		return baseAdvice
	}
}

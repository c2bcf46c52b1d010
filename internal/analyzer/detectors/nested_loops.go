package detectors

import (
	"fmt"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

type NestedLoopDetector struct {
	config *config.Config
}

func NewNestedLoopDetector() *NestedLoopDetector {
	return &NestedLoopDetector{}
}

func NewNestedLoopDetectorWithConfig(cfg *config.Config) *NestedLoopDetector {
	return &NestedLoopDetector{
		config: cfg,
	}
}

func (d *NestedLoopDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *NestedLoopDetector) Name() string {
	return "Nested Loop Detector"
}

func (d *NestedLoopDetector) Pattern() models.IssueType {
	return models.IssueNestedLoops
}

func (d *NestedLoopDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	v := &nestedLoopVisitor{
		tree:     tree,
		filename: filename,
		maxDepth: configOrDefault(d.config).Rules.Performance.NestedLoops.MaxDepth,
		issues:   make([]models.Issue, 0),
	}

	for _, root := range outermostCallables(tree) {
		v.currentMethod = declName(tree, root)
		v.visit(root, 0)
	}

	sortIssues(v.issues)
	return v.issues, nil
}

type nestedLoopVisitor struct {
	tree          *ast.AST
	filename      string
	maxDepth      int
	currentMethod string
	issues        []models.Issue
}

func (v *nestedLoopVisitor) visit(id ast.NodeID, depth int) {
	if isLoop(v.tree.Type(id)) {
		depth++
		if depth > v.maxDepth {
			v.detectNestedLoop(id, depth)
		}
	}
	for c := range v.tree.Children(id) {
		v.visit(c, depth)
	}
}

func (v *nestedLoopVisitor) detectNestedLoop(id ast.NodeID, depth int) {
	v.issues = append(v.issues, models.Issue{
		Type:       models.IssueNestedLoops,
		Severity:   v.calculateSeverity(depth),
		File:       v.filename,
		Line:       line(v.tree, id),
		Method:     v.currentMethod,
		Message:    v.generateMessage(depth),
		Suggestion: v.generateSuggestion(depth),
		Complexity: fmt.Sprintf("O(n^%d)", depth),
	})
}

func (v *nestedLoopVisitor) calculateSeverity(depth int) models.Severity {
	switch {
	case depth <= 2:
		return models.SeverityMedium // O(n²) is concerning but common
	case depth == 3:
		return models.SeverityHigh // O(n³) is usually problematic
	default:
		return models.SeverityCritical
	}
}

func (v *nestedLoopVisitor) generateMessage(depth int) string {
	if depth == 2 {
		return fmt.Sprintf("Nested loop detected in method '%s' - potential O(n²) complexity", v.currentMethod)
	}
	return fmt.Sprintf("Deeply nested loops detected in method '%s' - O(n^%d) complexity", v.currentMethod, depth)
}

func (v *nestedLoopVisitor) generateSuggestion(depth int) string {
	suggestions := []string{
		"Consider using a HashMap or HashSet for O(1) lookups instead of nested iteration",
		"Pre-process data into a more efficient structure (e.g., group with Collectors.groupingBy)",
		"Use binary search if data is sorted",
		"Consider if you can break/continue early to reduce iterations",
		"Profile this code section to measure actual performance impact",
	}

	if depth == 2 {
		return suggestions[0] + ". " + suggestions[1]
	}
	return suggestions[2] + ". " + suggestions[4]
}

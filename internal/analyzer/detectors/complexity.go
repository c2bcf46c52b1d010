package detectors

import (
	"fmt"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// ComplexityDetector calculates cyclomatic complexity of methods
type ComplexityDetector struct {
	config *config.Config
}

// NewComplexityDetector creates a new complexity detector
func NewComplexityDetector() *ComplexityDetector {
	return &ComplexityDetector{}
}

func NewComplexityDetectorWithConfig(cfg *config.Config) *ComplexityDetector {
	return &ComplexityDetector{
		config: cfg,
	}
}

func (d *ComplexityDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

// Name returns the detector name
func (d *ComplexityDetector) Name() string {
	return "Cyclomatic Complexity Detector"
}

func (d *ComplexityDetector) Pattern() models.IssueType {
	return models.IssueCyclomaticComplex
}

// Detect finds methods with high cyclomatic complexity
func (d *ComplexityDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	thresholds := configOrDefault(d.config).Rules.Complexity.CyclomaticComplexity
	issues := make([]models.Issue, 0)

	for _, method := range callables(tree) {
		complexity, err := CyclomaticComplexity(tree, method)
		if err != nil {
			return nil, err
		}
		if complexity < thresholds.MediumThreshold {
			continue
		}

		name := declName(tree, method)
		issues = append(issues, models.Issue{
			Type:       models.IssueCyclomaticComplex,
			Severity:   calculateSeverity(complexity, thresholds),
			File:       filename,
			Line:       line(tree, method),
			Method:     name,
			Message:    fmt.Sprintf("Method '%s' has high cyclomatic complexity: %d", name, complexity),
			Suggestion: d.generateComplexitySuggestion(complexity, thresholds),
			Complexity: fmt.Sprintf("Complexity: %d", complexity),
		})
	}

	return issues, nil
}

// CyclomaticComplexity counts the decision points under root plus one.
// Nested method declarations and lambdas are not counted: they are
// separate units of their own.
func CyclomaticComplexity(tree *ast.AST, root ast.NodeID) (int, error) {
	complexity := 1 // Base complexity
	var err error

	tree.Inspect(root, func(id ast.NodeID) bool {
		if err != nil {
			return false
		}
		switch tree.Type(id) {
		case ast.MethodDeclaration, ast.ConstructorDeclaration, ast.LambdaExpression:
			return id == root

		case ast.IfStatement, ast.ForStatement, ast.WhileStatement, ast.DoStatement,
			ast.TernaryExpression, ast.CatchClause:
			complexity++

		case ast.SwitchStatementCase:
			// Each case label adds a path; default is a STRING and does not
			complexity += len(nodes(tree, id)) - len(statements(tree, id))

		case ast.BinaryOperation:
			// Logical operators add complexity
			op, opErr := tree.BinaryOperationName(id)
			if opErr != nil {
				err = opErr
				return false
			}
			if op == "&&" || op == "||" {
				complexity++
			}
		}
		return true
	})

	return complexity, err
}

// generateComplexitySuggestion provides advice for reducing complexity
func (d *ComplexityDetector) generateComplexitySuggestion(complexity int, t config.ThresholdConfig) string {
	suggestions := []string{
		"Consider breaking this method into smaller, single-purpose methods",
		"Use guard clauses and early returns to reduce nesting levels",
		"Extract complex conditional logic into well-named boolean methods",
		"Consider replacing conditionals with polymorphism or the strategy pattern",
		"Use a Map or an enum with behavior instead of long if-else chains",
	}

	if complexity < t.HighThreshold {
		return suggestions[0] + ". " + suggestions[1]
	} else if complexity < t.CriticalThreshold {
		return suggestions[0] + ". " + suggestions[2] + ". " + suggestions[1]
	} else {
		return suggestions[3] + ". " + suggestions[0] + ". " + suggestions[4]
	}
}

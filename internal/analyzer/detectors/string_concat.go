package detectors

import (
	"fmt"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// StringConcatDetector finds String variables rebuilt with + or += inside
// loops, which copies the whole string on every iteration.
type StringConcatDetector struct {
	config *config.Config
}

func NewStringConcatDetector() *StringConcatDetector {
	return &StringConcatDetector{}
}

func NewStringConcatDetectorWithConfig(cfg *config.Config) *StringConcatDetector {
	return &StringConcatDetector{
		config: cfg,
	}
}

func (d *StringConcatDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *StringConcatDetector) Name() string {
	return "String Concatenation Detector"
}

func (d *StringConcatDetector) Pattern() models.IssueType {
	return models.IssueStringConcat
}

func (d *StringConcatDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	issues := make([]models.Issue, 0)
	if !configOrDefault(d.config).Rules.Performance.StringConcat.DetectInLoops {
		return issues, nil
	}

	stringVars := d.stringVariables(tree)
	if len(stringVars) == 0 {
		return issues, nil
	}

	for _, method := range callables(tree) {
		inLoop := loopMembers(tree, method)
		name := declName(tree, method)

		for id := range tree.Subtree(method) {
			if !inLoop[id] || tree.Type(id) != ast.Assignment {
				continue
			}
			target, how, err := d.concatTarget(tree, id)
			if err != nil {
				return nil, err
			}
			if target == "" || !stringVars[target] {
				continue
			}
			issues = append(issues, models.Issue{
				Type:       models.IssueStringConcat,
				Severity:   models.SeverityMedium,
				File:       filename,
				Line:       line(tree, id),
				Method:     name,
				Message:    fmt.Sprintf("String concatenation using %s on '%s' in loop", how, target),
				Suggestion: d.generateSuggestion(target),
				Complexity: "O(n²) copying",
			})
		}
	}

	sortIssues(issues)
	return dedupe(issues), nil
}

// stringVariables collects every field, local and parameter declared as
// String anywhere in the file.
func (d *StringConcatDetector) stringVariables(tree *ast.AST) map[string]bool {
	vars := make(map[string]bool)
	for _, t := range []ast.NodeType{
		ast.FieldDeclaration, ast.LocalVariableDeclaration,
		ast.VariableDeclaration, ast.FormalParameter,
	} {
		for decl := range tree.NodesByType(t) {
			if referenceTypeName(tree, decl) != "String" {
				continue
			}
			for _, name := range declaredNames(tree, decl) {
				vars[name] = true
			}
		}
	}
	return vars
}

// concatTarget reports the variable an assignment grows, for `s += x` and
// `s = s + x`.
func (d *StringConcatDetector) concatTarget(tree *ast.AST, assignment ast.NodeID) (string, string, error) {
	op := texts(tree, assignment)
	operands := nodes(tree, assignment)
	if len(op) != 1 || len(operands) != 2 {
		return "", "", nil
	}
	target, ok, err := fieldName(tree, operands[0])
	if err != nil || !ok {
		return "", "", err
	}

	switch op[0] {
	case "+=":
		return target, "+=", nil
	case "=":
		left, err := leftmostOperand(tree, operands[1])
		if err != nil || left == ast.NoNode {
			return "", "", err
		}
		name, ok, err := fieldName(tree, left)
		if err != nil || !ok || name != target {
			return "", "", err
		}
		return target, "+", nil
	}
	return "", "", nil
}

// leftmostOperand descends the left spine of a chain of + operations.
func leftmostOperand(tree *ast.AST, id ast.NodeID) (ast.NodeID, error) {
	found := false
	for tree.Type(id) == ast.BinaryOperation {
		op, err := tree.BinaryOperationName(id)
		if err != nil {
			return ast.NoNode, err
		}
		if op != "+" {
			return ast.NoNode, nil
		}
		operands := nodes(tree, id)
		if len(operands) == 0 {
			return ast.NoNode, nil
		}
		id, found = operands[0], true
	}
	if !found {
		return ast.NoNode, nil
	}
	return id, nil
}

func (d *StringConcatDetector) generateSuggestion(target string) string {
	return fmt.Sprintf(`Java strings are immutable: each concatenation in a loop copies '%s' again.

Use a StringBuilder:

StringBuilder sb = new StringBuilder();
for (...) {
    sb.append(part);
}
String %s = sb.toString();

For joining collections, String.join or Collectors.joining is usually clearer.`, target, target)
}

// loopMembers returns the nodes that sit inside a loop body within root.
func loopMembers(tree *ast.AST, root ast.NodeID) map[ast.NodeID]bool {
	members := make(map[ast.NodeID]bool)
	for id := range tree.Subtree(root) {
		if !isLoop(tree.Type(id)) || members[id] {
			continue
		}
		for inner := range tree.Subtree(id) {
			if inner != id {
				members[inner] = true
			}
		}
	}
	return members
}

func dedupe(issues []models.Issue) []models.Issue {
	seen := make(map[string]bool)
	out := issues[:0]
	for _, issue := range issues {
		key := fmt.Sprintf("%d:%s", issue.Line, issue.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, issue)
	}
	return out
}

package detectors

import (
	"fmt"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// HybridConstructorDetector finds constructors that delegate to another
// constructor with this(...) and also do work of their own.
type HybridConstructorDetector struct {
	config *config.Config
}

func NewHybridConstructorDetector() *HybridConstructorDetector {
	return &HybridConstructorDetector{}
}

func NewHybridConstructorDetectorWithConfig(cfg *config.Config) *HybridConstructorDetector {
	return &HybridConstructorDetector{
		config: cfg,
	}
}

func (d *HybridConstructorDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *HybridConstructorDetector) Name() string {
	return "Hybrid Constructor Detector"
}

func (d *HybridConstructorDetector) Pattern() models.IssueType {
	return models.IssueHybridConstructor
}

func (d *HybridConstructorDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	issues := make([]models.Issue, 0)

	for ctor := range tree.NodesByType(ast.ConstructorDeclaration) {
		var c ctorStatements
		for _, stmt := range statements(tree, ctor) {
			c.traverse(tree, stmt)
		}
		if c.invocations == 0 || c.other == 0 {
			continue
		}

		name := declName(tree, ctor)
		issues = append(issues, models.Issue{
			Type:     models.IssueHybridConstructor,
			Severity: models.SeverityMedium,
			File:     filename,
			Line:     line(tree, ctor),
			Method:   name,
			Message:  fmt.Sprintf("Constructor '%s' calls this(...) and has %d other statement(s)", name, c.other),
			Suggestion: `A constructor should either delegate or initialize, not both.

1. Keep one primary constructor that assigns every field
2. Make secondary constructors a single this(...) call
3. Move extra logic into the primary constructor or a static factory method`,
		})
	}

	return issues, nil
}

type ctorStatements struct {
	invocations int
	other       int
}

func (c *ctorStatements) traverse(tree *ast.AST, stmt ast.NodeID) {
	switch tree.Type(stmt) {
	case ast.StatementExpression:
		if tree.FirstNChildrenWithType(stmt, ast.ExplicitConstructorInvocation, 1)[0] != ast.NoNode {
			c.invocations++
		} else {
			c.other++
		}

	case ast.BlockStatement, ast.WhileStatement, ast.DoStatement:
		for _, s := range statements(tree, stmt) {
			c.traverse(tree, s)
		}

	case ast.ForStatement, ast.IfStatement:
		c.other++
		for _, s := range statements(tree, stmt) {
			c.traverse(tree, s)
		}

	case ast.TryStatement:
		c.traverseTry(tree, stmt)

	default:
		c.other++
	}
}

// traverseTry counts a try statement as work unless it is a bare try with
// empty catch clauses, then walks the protected block. Statements after the
// first catch clause belong to the catches or the finally block.
func (c *ctorStatements) traverseTry(tree *ast.AST, stmt ast.NodeID) {
	var block []ast.NodeID
	inBlock, catches, trailing := true, 0, false
	hasResources := false

	for child := range tree.Children(stmt) {
		switch t := tree.Type(child); {
		case t == ast.TryResource:
			hasResources = true
		case t == ast.CatchClause:
			inBlock = false
			catches++
			if len(statements(tree, child)) > 0 {
				trailing = true
			}
		case isStatement(t):
			if inBlock {
				block = append(block, child)
			} else {
				trailing = true
			}
		}
	}

	if hasResources || catches == 0 || trailing {
		c.other++
	}
	for _, s := range block {
		c.traverse(tree, s)
	}
}

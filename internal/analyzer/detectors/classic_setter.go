package detectors

import (
	"fmt"
	"strings"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// ClassicSetterDetector finds `setX(v)` methods whose whole body is a plain
// `this.x = v;`.
type ClassicSetterDetector struct {
	config *config.Config
}

func NewClassicSetterDetector() *ClassicSetterDetector {
	return &ClassicSetterDetector{}
}

func NewClassicSetterDetectorWithConfig(cfg *config.Config) *ClassicSetterDetector {
	return &ClassicSetterDetector{
		config: cfg,
	}
}

func (d *ClassicSetterDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *ClassicSetterDetector) Name() string {
	return "Classic Setter Detector"
}

func (d *ClassicSetterDetector) Pattern() models.IssueType {
	return models.IssueClassicSetter
}

func (d *ClassicSetterDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	issues := make([]models.Issue, 0)

	for method := range tree.NodesByType(ast.MethodDeclaration) {
		name := declName(tree, method)
		if !strings.HasPrefix(name, "set") || len(name) == len("set") {
			continue
		}
		params := parameters(tree, method)
		if len(params) != 1 {
			continue
		}
		paramNames := declaredNames(tree, params[0])
		if len(paramNames) != 1 {
			continue
		}

		field, ok, err := d.assignedField(tree, method, paramNames[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		issues = append(issues, models.Issue{
			Type:     models.IssueClassicSetter,
			Severity: models.SeverityLow,
			File:     filename,
			Line:     line(tree, method),
			Method:   name,
			Message:  fmt.Sprintf("Method '%s' only overwrites field '%s'", name, field),
			Suggestion: `Setters make objects mutable from the outside and let them exist in half-built states.

1. Pass the value through the constructor and make the field final
2. Return a new instance with the changed value instead of mutating this one`,
		})
	}

	return issues, nil
}

// assignedField reports the field a single `field = param;` statement
// writes.
func (d *ClassicSetterDetector) assignedField(tree *ast.AST, method ast.NodeID, param string) (string, bool, error) {
	body := statements(tree, method)
	if len(body) != 1 || tree.Type(body[0]) != ast.StatementExpression {
		return "", false, nil
	}
	assignment := tree.FirstNChildrenWithType(body[0], ast.Assignment, 1)[0]
	if assignment == ast.NoNode {
		return "", false, nil
	}
	if op := texts(tree, assignment); len(op) != 1 || op[0] != "=" {
		return "", false, nil
	}

	operands := nodes(tree, assignment)
	if len(operands) != 2 {
		return "", false, nil
	}
	field, ok, err := fieldName(tree, operands[0])
	if err != nil || !ok {
		return "", false, err
	}
	value, ok, err := fieldName(tree, operands[1])
	if err != nil || !ok || value != param || tree.Type(operands[1]) != ast.MemberReference {
		return "", false, err
	}
	return field, true, nil
}

package detectors

import (
	"fmt"
	"strings"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// ClassicGetterDetector finds `getX()` methods whose whole body is
// `return x;` or `return this.x;`.
type ClassicGetterDetector struct {
	config *config.Config
}

func NewClassicGetterDetector() *ClassicGetterDetector {
	return &ClassicGetterDetector{}
}

func NewClassicGetterDetectorWithConfig(cfg *config.Config) *ClassicGetterDetector {
	return &ClassicGetterDetector{
		config: cfg,
	}
}

func (d *ClassicGetterDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *ClassicGetterDetector) Name() string {
	return "Classic Getter Detector"
}

func (d *ClassicGetterDetector) Pattern() models.IssueType {
	return models.IssueClassicGetter
}

func (d *ClassicGetterDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	issues := make([]models.Issue, 0)

	for method := range tree.NodesByType(ast.MethodDeclaration) {
		name := declName(tree, method)
		if !strings.HasPrefix(name, "get") || len(name) == len("get") {
			continue
		}
		if len(parameters(tree, method)) != 0 {
			continue
		}

		field, ok, err := d.returnedField(tree, method)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		issues = append(issues, models.Issue{
			Type:     models.IssueClassicGetter,
			Severity: models.SeverityLow,
			File:     filename,
			Line:     line(tree, method),
			Method:   name,
			Message:  fmt.Sprintf("Method '%s' only exposes field '%s'", name, field),
			Suggestion: `Getters leak object state and turn the class into a data bag.

1. Ask the object to do the work instead of pulling its data out
2. If a caller needs the value to decide something, move that decision into this class
3. Keep the getter only at real boundaries (serialization, views)`,
		})
	}

	return issues, nil
}

// returnedField reports the field a single `return` statement hands back.
func (d *ClassicGetterDetector) returnedField(tree *ast.AST, method ast.NodeID) (string, bool, error) {
	body := statements(tree, method)
	if len(body) != 1 || tree.Type(body[0]) != ast.ReturnStatement {
		return "", false, nil
	}
	if len(texts(tree, body[0])) > 0 { // labeled
		return "", false, nil
	}
	value := tree.FirstNChildrenWithType(body[0], ast.MemberReference, 1)[0]
	if value == ast.NoNode {
		value = tree.FirstNChildrenWithType(body[0], ast.This, 1)[0]
	}
	if value == ast.NoNode {
		return "", false, nil
	}
	return fieldName(tree, value)
}

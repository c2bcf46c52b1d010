package detectors

import (
	"fmt"
	"strings"

	"javacheck/internal/ast"
	"javacheck/internal/config"
	"javacheck/internal/models"
)

// MethodChainDetector finds long call chains like a.b().c().d().e().
type MethodChainDetector struct {
	config *config.Config
}

func NewMethodChainDetector() *MethodChainDetector {
	return &MethodChainDetector{}
}

func NewMethodChainDetectorWithConfig(cfg *config.Config) *MethodChainDetector {
	return &MethodChainDetector{
		config: cfg,
	}
}

func (d *MethodChainDetector) SetConfig(cfg *config.Config) {
	d.config = cfg
}

func (d *MethodChainDetector) Name() string {
	return "Method Chain Detector"
}

func (d *MethodChainDetector) Pattern() models.IssueType {
	return models.IssueMethodChain
}

func (d *MethodChainDetector) Detect(tree *ast.AST, filename string) ([]models.Issue, error) {
	maxChain := configOrDefault(d.config).Rules.Design.MethodChain.MaxChain
	issues := make([]models.Issue, 0)

	for id := range tree.Preorder() {
		calls, err := chainCalls(tree, id)
		if err != nil {
			return nil, err
		}
		if len(calls) <= maxChain {
			continue
		}

		severity := models.SeverityLow
		if len(calls) >= 2*maxChain {
			severity = models.SeverityMedium
		}
		issues = append(issues, models.Issue{
			Type:     models.IssueMethodChain,
			Severity: severity,
			File:     filename,
			Line:     line(tree, id),
			Message:  fmt.Sprintf("Chain of %d calls: %s", len(calls), strings.Join(calls, ".")),
			Suggestion: `Long chains couple the caller to the structure of every intermediate object.

1. Ask the first object for what you need instead of navigating through it
2. If this is a fluent builder, consider splitting it into named steps`,
		})
	}

	sortIssues(issues)
	return issues, nil
}

// chainCalls lists the calls of the chain rooted at the primary id: the
// primary itself when it is a call, followed by its invocation selectors.
// A selector invocation carries no qualifier, so its only STRING child is
// the method name; invocations in argument position always carry one.
func chainCalls(tree *ast.AST, id ast.NodeID) ([]string, error) {
	if tree.Type(id) == ast.MethodInvocation && len(texts(tree, id)) == 1 {
		return nil, nil // a selector, counted with its base
	}

	var calls []string
	if tree.Type(id) == ast.MethodInvocation {
		calls = append(calls, callName(tree, id)+"()")
	}
	for c := range tree.ChildrenWithType(id, ast.MethodInvocation) {
		if len(texts(tree, c)) != 1 {
			continue
		}
		params, err := tree.MethodInvocationParams(c)
		if err != nil {
			return nil, err
		}
		calls = append(calls, params.MethodName+"()")
	}
	if len(calls) < 2 {
		return nil, nil
	}
	return calls, nil
}

// callName returns the method name of a base invocation. The base may
// carry prefix operators, which MethodInvocationParams does not accept, so
// the name is read as the last STRING child.
func callName(tree *ast.AST, id ast.NodeID) string {
	s := texts(tree, id)
	return s[len(s)-1]
}

package analyzer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/config"
	"javacheck/internal/models"
)

func sampleResult() *models.AnalysisResult {
	result := models.NewAnalysisResult()
	result.Files = []string{"src/Inventory.java"}
	result.AddIssue(models.Issue{
		Type:       models.IssueNestedLoops,
		Severity:   models.SeverityMedium,
		File:       "src/Inventory.java",
		Line:       32,
		Method:     "restock",
		Message:    "Nested loop at depth 2",
		Suggestion: "Index the inner collection\n\nwith a map",
		Complexity: "O(n^2)",
	})
	result.AddIssue(models.Issue{
		Type:     models.IssueClassicGetter,
		Severity: models.SeverityLow,
		File:     "src/Inventory.java",
		Line:     21,
		Method:   "getCount",
		Message:  "Classic getter for 'count'",
	})
	result.AddSkipped("src/Broken.java", SkipParse, errors.New("3:5: syntax error"))
	result.SetMetric("src/Inventory.java", "ncss", 17)
	result.CalculateScore()
	result.RankPatterns()
	return result
}

func plainConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Output.Colors = false
	return cfg
}

func TestReportGenerator_Console(t *testing.T) {
	out, err := NewReportGeneratorWithConfig(plainConfig()).Generate(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "javacheck analysis report")
	assert.Contains(t, out, "Files analyzed: 1")
	assert.Contains(t, out, "Files skipped: 1")
	assert.Contains(t, out, "Issues found: 2")
	assert.Contains(t, out, "Quality Score: 73/100 (fair)")
	assert.Contains(t, out, "MEDIUM: 1")
	assert.Contains(t, out, "1. nested_loops")
	assert.Contains(t, out, "Location: src/Inventory.java:32 in method 'restock'")
	assert.Contains(t, out, "Location: src/Inventory.java:21 in method 'getCount'")
	assert.Contains(t, out, "Complexity: O(n^2)")
	assert.NotContains(t, out, "Suggestion:")
	assert.Contains(t, out, "src/Broken.java (parse): 3:5: syntax error")
	assert.NotContains(t, out, "Metrics:")
	assert.NotContains(t, out, "\x1b[")

	// medium is listed before low
	assert.Less(t, strings.Index(out, "NESTED_LOOPS"), strings.Index(out, "CLASSIC_GETTER"))
}

func TestReportGenerator_ConsoleVerbose(t *testing.T) {
	cfg := plainConfig()
	cfg.Output.Verbose = true
	cfg.Output.ShowSuggestions = false

	out, err := NewReportGeneratorWithConfig(cfg).Generate(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, out, "Enabled categories: complexity, performance, design")
	assert.Contains(t, out, "src/Inventory.java: ncss=17")
	assert.Contains(t, out, "Location: src/Inventory.java:32 in method 'restock'")
	assert.NotContains(t, out, "Suggestion:")
}

func TestReportGenerator_ConsoleSuggestions(t *testing.T) {
	cfg := plainConfig()
	cfg.Output.ShowSuggestions = true

	out, err := NewReportGeneratorWithConfig(cfg).Generate(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, out, "   Suggestion:\n      Index the inner collection\n      with a map\n")
	// an issue without a suggestion gets no empty heading
	assert.Equal(t, 1, strings.Count(out, "Suggestion:"))
}

func TestReportGenerator_ConsoleClean(t *testing.T) {
	result := models.NewAnalysisResult()
	result.CalculateScore()

	out, err := NewReportGeneratorWithConfig(plainConfig()).Generate(result)
	require.NoError(t, err)
	assert.Contains(t, out, "Quality Score: 100/100 (excellent)")
	assert.Contains(t, out, "No refactoring patterns found.")
}

func TestReportGenerator_JSON(t *testing.T) {
	out, err := NewReportGenerator("json").Generate(sampleResult())
	require.NoError(t, err)

	var decoded struct {
		Issues []struct {
			Type     string `json:"type"`
			Severity string `json:"severity"`
			Method   string `json:"method"`
		} `json:"issues"`
		Skipped []models.SkippedFile `json:"files_skipped"`
		Ranking []models.PatternRank `json:"ranking"`
		Score   int                  `json:"quality_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "nested_loops", decoded.Issues[0].Type)
	assert.Equal(t, "MEDIUM", decoded.Issues[0].Severity)
	assert.Equal(t, "restock", decoded.Issues[0].Method)
	assert.Equal(t, SkipParse, decoded.Skipped[0].Reason)
	assert.Equal(t, models.IssueNestedLoops, decoded.Ranking[0].Pattern)
	assert.Equal(t, 73, decoded.Score)
}

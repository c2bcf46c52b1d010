package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisResult_RunID(t *testing.T) {
	a := NewAnalysisResult()
	b := NewAnalysisResult()

	_, err := uuid.Parse(a.RunID)
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   int
	}{
		{"clean", nil, 100},
		{"one low getter", []Issue{{Type: IssueClassicGetter, Severity: SeverityLow}}, 95},
		{"weighted nested loop", []Issue{{Type: IssueNestedLoops, Severity: SeverityHigh}}, 55},
		{"floors at zero", []Issue{
			{Type: IssueMethodLength, Severity: SeverityCritical},
			{Type: IssueMethodLength, Severity: SeverityCritical},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewAnalysisResult()
			for _, issue := range tt.issues {
				r.AddIssue(issue)
			}
			r.CalculateScore()
			assert.Equal(t, tt.want, r.QualityScore)
		})
	}
}

func TestRankPatterns(t *testing.T) {
	r := NewAnalysisResult()
	r.AddIssue(Issue{Type: IssueClassicGetter})
	r.AddIssue(Issue{Type: IssueClassicGetter})
	r.AddIssue(Issue{Type: IssueClassicSetter})
	r.AddIssue(Issue{Type: IssueNestedLoops})
	r.AddIssue(Issue{Type: IssueNestedLoops})

	r.RankPatterns()

	require.Len(t, r.Ranking, 3)
	assert.Equal(t, IssueNestedLoops, r.Ranking[0].Pattern)
	assert.InDelta(t, 3.0, r.Ranking[0].Score, 1e-9)
	assert.Equal(t, IssueClassicGetter, r.Ranking[1].Pattern)
	assert.Equal(t, 2, r.Ranking[1].Occurrences)
	assert.Equal(t, IssueClassicSetter, r.Ranking[2].Pattern)
}

func TestAnalysisResult_Bookkeeping(t *testing.T) {
	r := NewAnalysisResult()
	r.AddIssue(Issue{Type: IssueMethodChain, Severity: SeverityMedium})
	r.AddSkipped("Bad.java", "parse", errors.New("1:7: syntax error"))
	r.SetMetric("A.java", "ncss", 12)

	assert.Equal(t, 1, r.TotalIssues)
	assert.Equal(t, 1, r.IssuesBySeverity["MEDIUM"])
	assert.Equal(t, []SkippedFile{{File: "Bad.java", Reason: "parse", Error: "1:7: syntax error"}}, r.Skipped)
	assert.Equal(t, 12.0, r.Metrics["A.java"]["ncss"])

	data, err := json.Marshal(r.Issues[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"MEDIUM"`)
}

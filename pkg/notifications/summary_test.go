package notifications

import (
	"testing"

	"github.com/gimlet-io/teams-notify/pkg/dx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, summarize(nil, "outcome"))
	assert.Empty(t, summarize(dx.Results{}, "result"))
}

func TestSummarizeFailureOutputs(t *testing.T) {
	results := dx.Results{
		{ID: "a", Outcome: "failure", Outputs: dx.Outputs{{Name: "x", Value: "y"}}},
	}

	sections := summarize(results, "outcome")
	require.Len(t, sections, 1)
	section := sections[0]
	assert.True(t, section.StartGroup)
	assert.Equal(t, []Fact{{Name: "✗ a", Value: "Failure"}}, section.Facts)
	assert.Contains(t, section.Text, "a:")
	assert.Contains(t, section.Text, "+ x:\n```\ny\n```")
}

func TestSummarizeOnlyRendersOutputsOfFailures(t *testing.T) {
	results := dx.Results{
		{ID: "checkout", Outcome: "success", Outputs: dx.Outputs{{Name: "ref", Value: "main"}}},
		{ID: "lint", Result: "skipped"},
		{ID: "deploy", Result: "failure"},
	}

	sections := summarize(results, "result")
	require.Len(t, sections, 1)
	assert.Empty(t, sections[0].Text)
	assert.Equal(t, []Fact{
		{Name: "✓ checkout", Value: "Success!"},
		{Name: "⤼ lint", Value: "Skipped"},
		{Name: "✗ deploy", Value: "Failure"},
	}, sections[0].Facts)
}

func TestFlattenCommitMessage(t *testing.T) {
	assert.Equal(t, "line1, line2, line3", FlattenCommitMessage("line1\nline2\n\nline3"))
	assert.Equal(t, "fix bug", FlattenCommitMessage("fix bug"))
	assert.Equal(t, "first, second", FlattenCommitMessage("  first  \r\n\n  second\n"))
	assert.Equal(t, "a, b, c", FlattenCommitMessage("a,\nb\nc"))
	assert.Equal(t, "", FlattenCommitMessage("\n\n"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "fix bug", firstLine("fix bug\nmore detail\neven more"))
	assert.Equal(t, "fix bug", firstLine("fix bug"))
}

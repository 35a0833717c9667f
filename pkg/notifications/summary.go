package notifications

import (
	"fmt"
	"strings"

	"github.com/gimlet-io/teams-notify/pkg/dx"
)

// summarize renders the results of steps or needed jobs as one fact section.
// statusField names the status field of the results, "outcome" for steps and "result" for needs.
func summarize(results dx.Results, statusField string) []Section {
	if len(results) == 0 {
		return nil
	}

	section := Section{
		Facts:      []Fact{},
		StartGroup: true,
	}
	text := strings.Builder{}
	for _, result := range results {
		status := ResolveStatus(result.StatusOf(statusField))
		section.Facts = append(section.Facts, Fact{
			Name:  fmt.Sprintf("%s %s", status.Icon, result.ID),
			Value: status.Title,
		})

		if status.ID == dx.Failure && len(result.Outputs) > 0 {
			text.WriteString(fmt.Sprintf("%s:\n", result.ID))
			text.WriteString(outputsToMarkdown(result.Outputs))
		}
	}
	section.Text = text.String()

	return []Section{section}
}

func outputsToMarkdown(outputs dx.Outputs) string {
	markdown := strings.Builder{}
	for _, output := range outputs {
		markdown.WriteString(fmt.Sprintf("+ %s:\n```\n%s\n```\n", output.Name, output.Value))
	}
	return markdown.String()
}

// FlattenCommitMessage joins the non-empty lines of a commit message with commas
func FlattenCommitMessage(message string) string {
	flat := ""
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case flat == "":
		case strings.HasSuffix(flat, ","):
			flat += " "
		default:
			flat += ", "
		}
		flat += line
	}
	return flat
}

// firstLine is the commit subject
func firstLine(message string) string {
	return strings.SplitN(message, "\n", 2)[0]
}

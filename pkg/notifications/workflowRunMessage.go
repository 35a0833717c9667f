package notifications

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gimlet-io/teams-notify/pkg/dx"
	"github.com/google/uuid"
)

const workflowRunLinkFormat = "%s/actions/runs/%s"
const workflowRunsLinkFormat = "%s/actions?query=workflow%%3A%s"

type workflowRunMessage struct {
	actionContext *dx.ActionContext
	jobContext    *dx.JobContext
	runID         string
}

// MessageFromWorkflowRun is the notification about a finished workflow job
func MessageFromWorkflowRun(actionContext *dx.ActionContext, jobContext *dx.JobContext, runID string) Message {
	if actionContext == nil {
		actionContext = &dx.ActionContext{}
	}
	if jobContext == nil {
		jobContext = &dx.JobContext{Job: dx.Job{Status: dx.Unknown.String()}}
	}
	return &workflowRunMessage{
		actionContext: actionContext,
		jobContext:    jobContext,
		runID:         runID,
	}
}

func (wm *workflowRunMessage) AsTeamsMessage() (*MessageCard, error) {
	jobStatus := wm.jobContext.Job.Status
	if jobStatus == "" {
		jobStatus = dx.Unknown.String()
	}
	status := ResolveStatus(jobStatus)

	sections := []Section{}
	sections = append(sections, summarize(wm.jobContext.Steps, "outcome")...)
	sections = append(sections, summarize(wm.jobContext.Needs, "result")...)
	sections = append(sections, Section{
		ActivityTitle:    status.Title,
		ActivitySubtitle: wm.timestamp(),
		ActivityImage:    status.Image,
	})
	if changelog := wm.changelog(); changelog != "" {
		sections = append(sections, Section{
			Facts: []Fact{
				{Name: "Changelog", Value: changelog},
			},
		})
	}

	correlationID := wm.actionContext.SHA
	if correlationID == "" {
		correlationID = uuid.New().String()
	}

	repositoryURL := wm.actionContext.RepositoryURL()
	return &MessageCard{
		Type:          messageCardType,
		Context:       messageCardContext,
		CorrelationID: correlationID,
		ThemeColor:    status.Color,
		Title:         wm.title(),
		Summary:       fmt.Sprintf("[%s](%s)", wm.actionContext.RepositoryFullName(), repositoryURL),
		Sections:      sections,
		Text:          fmt.Sprintf("by **%s** on **%s**", wm.actionContext.SenderLogin(), wm.actionContext.RepositoryName()),
		PotentialAction: []Action{
			openURIAction("Repository", repositoryURL),
			openURIAction("Pull Request", wm.actionContext.PullRequestURL()),
			openURIAction("Workflow Run", wm.workflowRunURL()),
			openURIAction("Compare", wm.actionContext.CompareURL()),
		},
	}, nil
}

func (wm *workflowRunMessage) title() string {
	payload := wm.actionContext.Payload
	if payload.HeadCommit != nil {
		return fmt.Sprintf("[Push] %s", firstLine(payload.HeadCommit.GetMessage()))
	}
	if payload.PullRequest != nil {
		return fmt.Sprintf("[PR] %s", payload.PullRequest.GetTitle())
	}

	trigger := wm.actionContext.EventName
	if trigger == dx.WorkflowDispatch {
		trigger = "Manually"
	}
	return fmt.Sprintf("%s triggered \"%s\"", trigger, wm.actionContext.Workflow)
}

func (wm *workflowRunMessage) timestamp() string {
	payload := wm.actionContext.Payload
	if payload.HeadCommit != nil {
		if payload.HeadCommit.Timestamp == nil {
			return ""
		}
		return payload.HeadCommit.Timestamp.Format(time.RFC3339)
	}
	if payload.PullRequest != nil && payload.PullRequest.UpdatedAt != nil {
		return payload.PullRequest.UpdatedAt.Format(time.RFC3339)
	}
	return ""
}

func (wm *workflowRunMessage) changelog() string {
	commits := wm.actionContext.Payload.Commits
	if len(commits) == 0 {
		return ""
	}

	changelog := strings.Builder{}
	for _, commit := range commits {
		changelog.WriteString("\n+ ")
		changelog.WriteString(FlattenCommitMessage(commit.GetMessage()))
	}
	return changelog.String()
}

func (wm *workflowRunMessage) workflowRunURL() string {
	repositoryURL := wm.actionContext.RepositoryURL()
	if repositoryURL == "" {
		return ""
	}
	if wm.runID != "" {
		return fmt.Sprintf(workflowRunLinkFormat, repositoryURL, wm.runID)
	}
	return fmt.Sprintf(workflowRunsLinkFormat, repositoryURL, url.QueryEscape(wm.actionContext.Workflow))
}

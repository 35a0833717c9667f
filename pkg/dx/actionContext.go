package dx

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/google/go-github/v37/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WorkflowDispatch is the event name of manually triggered workflow runs
const WorkflowDispatch = "workflow_dispatch"

// ActionContext is the snapshot of the workflow run that the notification is about.
// It is loaded once and passed around explicitly, nothing reads the environment after load.
type ActionContext struct {
	Payload   EventPayload
	EventName string
	Workflow  string
	SHA       string
}

// EventPayload holds the parts of the webhook event payload that end up in the notification.
// Push events carry HeadCommit and Commits, pull request events carry PullRequest.
type EventPayload struct {
	Repository  *github.Repository   `json:"repository,omitempty"`
	Compare     *string              `json:"compare,omitempty"`
	Sender      *github.User         `json:"sender,omitempty"`
	Commits     []*github.HeadCommit `json:"commits,omitempty"`
	HeadCommit  *github.HeadCommit   `json:"head_commit,omitempty"`
	PullRequest *github.PullRequest  `json:"pull_request,omitempty"`
}

// LoadActionContext reads the event payload from eventPath.
// A missing or unreadable payload file is not an error, the context is returned with an empty payload.
func LoadActionContext(eventPath, eventName, workflow, sha string) (*ActionContext, error) {
	actionContext := &ActionContext{
		EventName: eventName,
		Workflow:  workflow,
		SHA:       sha,
	}

	if eventPath == "" {
		logrus.Warn("no event payload path set, notification will miss repository details")
		return actionContext, nil
	}

	content, err := os.ReadFile(eventPath)
	if err != nil {
		logrus.Warnf("cannot read event payload %s, notification will miss repository details: %s", eventPath, err)
		return actionContext, nil
	}

	payload, err := ParseEventPayload(content)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse event payload %s", eventPath)
	}
	actionContext.Payload = *payload

	return actionContext, nil
}

// ParseEventPayload decodes a GitHub webhook event payload
func ParseEventPayload(content []byte) (*EventPayload, error) {
	var payload EventPayload
	err := json.Unmarshal(content, &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// RepositoryURL is the html url of the repository, empty if unknown
func (c *ActionContext) RepositoryURL() string {
	return c.Payload.Repository.GetHTMLURL()
}

// RepositoryFullName is the owner/name of the repository, empty if unknown
func (c *ActionContext) RepositoryFullName() string {
	return c.Payload.Repository.GetFullName()
}

// RepositoryName is the short name of the repository, empty if unknown
func (c *ActionContext) RepositoryName() string {
	return c.Payload.Repository.GetName()
}

// SenderLogin is the login of the user who triggered the event, empty if unknown
func (c *ActionContext) SenderLogin() string {
	return c.Payload.Sender.GetLogin()
}

// PullRequestURL is the html url of the pull request, empty for non pull request events
func (c *ActionContext) PullRequestURL() string {
	return c.Payload.PullRequest.GetHTMLURL()
}

// CompareURL is the diff link of a push event, empty if unknown
func (c *ActionContext) CompareURL() string {
	if c.Payload.Compare == nil {
		return ""
	}
	return *c.Payload.Compare
}

// DefaultRepository fills in the repository from its owner/name when the payload did not carry one
func (c *ActionContext) DefaultRepository(serverURL string, fullName string) {
	if c.Payload.Repository != nil || fullName == "" {
		return
	}

	name := fullName
	if parts := strings.SplitN(fullName, "/", 2); len(parts) == 2 {
		name = parts[1]
	}
	c.Payload.Repository = &github.Repository{
		Name:     github.String(name),
		FullName: github.String(fullName),
		HTMLURL:  github.String(strings.TrimSuffix(serverURL, "/") + "/" + fullName),
	}
}

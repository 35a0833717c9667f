package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gimlet-io/teams-notify/pkg/commands"
	"github.com/gimlet-io/teams-notify/pkg/notifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

const pushEvent = `{
  "compare": "https://github.com/gimlet-io/onechart/compare/1f2e...ea9a",
  "repository": {
    "name": "onechart",
    "full_name": "gimlet-io/onechart",
    "html_url": "https://github.com/gimlet-io/onechart"
  },
  "sender": {"login": "laszlocph"},
  "head_commit": {
    "id": "ea9ab7cc31b2599bf4afcfd639da516ca27a4780",
    "message": "Bugfix 123\n\nLonger description",
    "timestamp": "2021-03-19T12:56:03+01:00"
  },
  "commits": [
    {"id": "ea9ab7cc31b2599bf4afcfd639da516ca27a4780", "message": "Bugfix 123\n\nLonger description"}
  ]
}`

func setupWorkflowEnv(t *testing.T) {
	eventPath := filepath.Join(t.TempDir(), "event.json")
	err := os.WriteFile(eventPath, []byte(pushEvent), 0666)
	require.NoError(t, err)

	t.Setenv("GITHUB_EVENT_PATH", eventPath)
	t.Setenv("GITHUB_EVENT_NAME", "push")
	t.Setenv("GITHUB_WORKFLOW", "CI")
	t.Setenv("GITHUB_SHA", "ea9ab7cc31b2599bf4afcfd639da516ca27a4780")
}

func Test_render(t *testing.T) {
	setupWorkflowEnv(t)
	output := filepath.Join(t.TempDir(), "card.json")

	args := strings.Split("teams-notify render", " ")
	args = append(args, "--job", `{"status": "success"}`)
	args = append(args, "--steps", `{"checkout": {"outcome": "success", "outputs": {}}}`)
	args = append(args, "--run-id", "1234")
	args = append(args, "--overwrite", `{title: "Released onechart"}`)
	args = append(args, "-o", output)

	err := commands.Run(&RenderCommand, args)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc notifications.Document
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, "Released onechart", doc["title"])
	assert.Equal(t, "#2cbe4e", doc["themeColor"])
	assert.Equal(t, "ea9ab7cc31b2599bf4afcfd639da516ca27a4780", doc["correlationId"])
	assert.Equal(t, "by **laszlocph** on **onechart**", doc["text"])
	assert.Len(t, doc["sections"], 3)
	assert.Len(t, doc["potentialAction"], 4)
	assert.Contains(t, string(content), "https://github.com/gimlet-io/onechart/actions/runs/1234")
}

func Test_renderYAML(t *testing.T) {
	setupWorkflowEnv(t)
	output := filepath.Join(t.TempDir(), "card.yaml")

	args := strings.Split("teams-notify render --format yaml", " ")
	args = append(args, "-o", output)

	err := commands.Run(&RenderCommand, args)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yamlv3.Unmarshal(content, &doc))
	assert.Equal(t, "[Push] Bugfix 123", doc["title"])
	assert.Equal(t, "MessageCard", doc["@type"])
}

func Test_renderYAMLKeepsChangelog(t *testing.T) {
	setupWorkflowEnv(t)
	output := filepath.Join(t.TempDir(), "card.yaml")

	args := strings.Split("teams-notify render --format yaml", " ")
	args = append(args, "-o", output)

	err := commands.Run(&RenderCommand, args)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)

	var card notifications.MessageCard
	require.NoError(t, yaml.Unmarshal(content, &card))
	changelog := card.Sections[len(card.Sections)-1]
	require.Len(t, changelog.Facts, 1)
	assert.Equal(t, "Changelog", changelog.Facts[0].Name)
	assert.Equal(t, "\n+ Bugfix 123, Longer description", changelog.Facts[0].Value)
}

func Test_renderRejectsBrokenOverride(t *testing.T) {
	setupWorkflowEnv(t)

	args := strings.Split("teams-notify render", " ")
	args = append(args, "--overwrite", `{potentialAction: "none"}`)
	args = append(args, "-o", filepath.Join(t.TempDir(), "card.json"))

	err := commands.Run(&RenderCommand, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "potentialAction")
}

func Test_send(t *testing.T) {
	setupWorkflowEnv(t)

	var received notifications.Document
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.Write([]byte("1"))
	}))
	defer ts.Close()

	args := strings.Split("teams-notify send", " ")
	args = append(args, "--webhook-url", ts.URL)
	args = append(args, "--job", `{"status": "failure"}`)
	args = append(args, "--needs", `{"build": {"result": "failure", "outputs": {"error": "exit 1"}}}`)

	err := commands.Run(&SendCommand, args)
	require.NoError(t, err)
	assert.Equal(t, "[Push] Bugfix 123", received["title"])
	assert.Equal(t, "#cb2431", received["themeColor"])
	sections := received["sections"].([]interface{})
	assert.Contains(t, sections[0].(map[string]interface{})["text"], "build:")
}

func Test_sendFailsWithoutAcknowledgment(t *testing.T) {
	setupWorkflowEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	args := strings.Split("teams-notify send", " ")
	args = append(args, "--webhook-url", ts.URL)

	err := commands.Run(&SendCommand, args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send notification to Microsoft Teams")
}

func Test_sendDryRun(t *testing.T) {
	setupWorkflowEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("dry run must not call the webhook")
	}))
	defer ts.Close()

	args := strings.Split("teams-notify send --dry-run", " ")
	args = append(args, "--webhook-url", ts.URL)

	err := commands.Run(&SendCommand, args)
	require.NoError(t, err)
}

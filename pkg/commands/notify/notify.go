package notify

import (
	"github.com/gimlet-io/teams-notify/cmd/teams-notify/config"
	"github.com/gimlet-io/teams-notify/pkg/dx"
	"github.com/gimlet-io/teams-notify/pkg/notifications"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var cardFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "job",
		Usage:   "JSON serialized job context, ${{ toJson(job) }}",
		EnvVars: []string{"INPUT_JOB"},
	},
	&cli.StringFlag{
		Name:    "steps",
		Usage:   "JSON serialized steps context, ${{ toJson(steps) }}",
		EnvVars: []string{"INPUT_STEPS"},
	},
	&cli.StringFlag{
		Name:    "needs",
		Usage:   "JSON serialized needs context, ${{ toJson(needs) }}",
		EnvVars: []string{"INPUT_NEEDS"},
	},
	&cli.StringFlag{
		Name:    "overwrite",
		Usage:   "YAML or JSON document merged on top of the generated card",
		EnvVars: []string{"INPUT_OVERWRITE"},
	},
	&cli.StringFlag{
		Name:    "run-id",
		Usage:   "The workflow run id, links the card to the run instead of the workflow",
		EnvVars: []string{"INPUT_RUN_ID"},
	},
}

// card builds the message card document from the flags and the workflow run environment
func card(c *cli.Context) (notifications.Document, error) {
	cfg, err := config.Environ()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	actionContext, err := dx.LoadActionContext(
		cfg.Github.EventPath,
		cfg.Github.EventName,
		cfg.Github.Workflow,
		cfg.Github.SHA,
	)
	if err != nil {
		return nil, err
	}
	actionContext.DefaultRepository(cfg.Github.ServerURL, cfg.Github.Repository)

	jobContext, err := dx.ParseJobContext(c.String("job"), c.String("steps"), c.String("needs"))
	if err != nil {
		return nil, err
	}

	override, err := notifications.ParseOverride(c.String("overwrite"))
	if err != nil {
		return nil, err
	}

	msg := notifications.MessageFromWorkflowRun(actionContext, jobContext, c.String("run-id"))
	messageCard, err := msg.AsTeamsMessage()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create teams message")
	}

	return messageCard.AsDocument(override)
}

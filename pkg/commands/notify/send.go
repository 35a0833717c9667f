package notify

import (
	"fmt"

	"github.com/enescakir/emoji"
	"github.com/fatih/color"
	"github.com/gimlet-io/teams-notify/pkg/notifications"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var SendCommand = cli.Command{
	Name:  "send",
	Usage: "Sends the workflow run card to a Microsoft Teams webhook",
	UsageText: `teams-notify send \
     --webhook-url https://mycompany.webhook.office.com/webhookb2/... \
     --job '${{ toJson(job) }}' \
     --steps '${{ toJson(steps) }}'`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "webhook-url",
			Usage:    "Microsoft Teams incoming webhook URL, INPUT_WEBHOOK_URL environment variable alternatively",
			EnvVars:  []string{"INPUT_WEBHOOK_URL"},
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "Prints the card instead of sending it",
			EnvVars: []string{"INPUT_DRY_RUN"},
		},
	}, cardFlags...),
	Action: send,
}

func send(c *cli.Context) error {
	doc, err := card(c)
	if err != nil {
		return err
	}

	if c.Bool("dry-run") {
		logrus.Info("dry run, not sending the card")
		return write(c.App.Writer, doc, "json")
	}

	provider := notifications.NewTeamsProvider(c.String("webhook-url"))
	err = provider.Notify(c.Context, doc)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(c.App.Writer, "%s %s %v\n", emoji.CheckMark, green("Notification sent:"), doc["title"])
	return nil
}

package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gimlet-io/teams-notify/pkg/notifications"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/yaml"
)

var RenderCommand = cli.Command{
	Name:  "render",
	Usage: "Renders the workflow run card without sending it",
	UsageText: `teams-notify render \
     --job '{"status": "success"}' \
     -o card.json`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file, stdout if not set",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "json or yaml",
			Value: "json",
		},
	}, cardFlags...),
	Action: render,
}

func render(c *cli.Context) error {
	doc, err := card(c)
	if err != nil {
		return err
	}

	outputPath := c.String("output")
	if outputPath == "" {
		return write(c.App.Writer, doc, c.String("format"))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cannot write card %s", err)
	}
	defer f.Close()

	return write(f, doc, c.String("format"))
}

func write(w io.Writer, doc notifications.Document, format string) error {
	switch format {
	case "json":
		out := bytes.NewBufferString("")
		e := json.NewEncoder(out)
		e.SetIndent("", "  ")
		e.SetEscapeHTML(false)
		err := e.Encode(doc)
		if err != nil {
			return fmt.Errorf("cannot serialize card %s", err)
		}
		_, err = w.Write(out.Bytes())
		return err
	case "yaml":
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("cannot serialize card %s", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %s, use json or yaml", format)
	}
}

package commands

import (
	"github.com/urfave/cli/v2"
)

// Run executes a single command as if it was invoked from the command line.
// args[0] is the program name, args[1] the command name.
func Run(command *cli.Command, args []string) error {
	app := &cli.App{
		Name:     args[0],
		Commands: []*cli.Command{command},
	}
	return app.Run(args)
}

package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version and build information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "short",
				Usage: "print only the version number",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("short") {
				fmt.Println(Version)
				return nil
			}
			fmt.Print(buildInfo())
			return nil
		},
	}
}

func buildInfo() string {
	return fmt.Sprintf("ruleport version %s\n  commit: %s\n  built: %s\n  go: %s\n",
		Version, Commit, BuildDate, runtime.Version())
}

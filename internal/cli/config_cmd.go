package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"

	"github.com/lewiesnyder/RulePort/internal/config"
	"github.com/lewiesnyder/RulePort/internal/logging"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the merged configuration (file, environment and flags)",
				UsageText: "ruleport config show [path] [--format yaml|json|toml]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output format: yaml, json, toml",
						Value:   "yaml",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, err := loadProject(ctx, cmd)
					if err != nil {
						return err
					}
					out, err := formatConfig(p.Config, cmd.String("format"))
					if err != nil {
						return err
					}
					fmt.Print(out)
					return nil
				},
			},
			{
				Name:      "path",
				Usage:     "Print the config file location for a project",
				UsageText: "ruleport config path [path]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, _, err := splitArgs(logging.WithContext(ctx), cmd.Args().Slice())
					if err != nil {
						return err
					}
					root, err := config.ResolveRoot(path)
					if err != nil {
						return err
					}
					file := config.FilePath(root)
					if cmd.String("config") != "" {
						file = cmd.String("config")
					}
					fmt.Println(file)
					if _, statErr := os.Stat(file); statErr != nil {
						fmt.Println("  (not found, defaults apply)")
					}
					return nil
				},
			},
		},
	}
}

func formatConfig(cfg *config.Config, format string) (string, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		data, err := cfg.YAML()
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format %q (valid: yaml, json, toml)", format)
	}
}

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/peak/wanna/config"
	"github.com/peak/wanna/log"
)

const (
	defaultRetryCount = 10

	appName = "wanna"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  appName,
		Usage: "Encrypted file transfers between your disk and cloud object storage",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "enable JSON formatted output",
			},
			&cli.StringFlag{
				Name:  "log",
				Value: "info",
				Usage: "log level: (debug, info, warning, error)",
			},
			&cli.StringFlag{
				Name:    "credentials-file",
				EnvVars: []string{config.EnvCredentialsFile},
				Usage:   "read settings from the given file instead of ~/.wanna/credentials",
			},
			&cli.StringFlag{
				Name:  "vendor",
				Value: string(config.VendorAWS),
				Usage: "cloud storage vendor: (aws, softlayer, azure, googlecloud)",
			},
			&cli.IntFlag{
				Name:    "retry-count",
				Aliases: []string{"r"},
				Value:   defaultRetryCount,
				Usage:   "number of times that a request will be retried for failures",
			},
			&cli.StringFlag{
				Name:  "endpoint-url",
				Usage: "override default S3 host for custom services",
			},
			&cli.BoolFlag{
				Name:  "no-verify-ssl",
				Usage: "disable SSL certificate verification",
			},
		},
		Before: func(c *cli.Context) error {
			log.Init(c.String("log"), c.Bool("json"))

			if c.Int("retry-count") < 1 {
				err := fmt.Errorf("retry count must be a positive value")
				printError(givenCommand(c), "wanna", err)
				return err
			}

			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				err := fmt.Errorf("command %q not found", c.Args().First())
				printError(givenCommand(c), "wanna", err)
				return err
			}
			return cli.ShowAppHelp(c)
		},
		After: func(c *cli.Context) error {
			log.Close()
			return nil
		},
	}
}

// Main runs the wanna command line with the given arguments. Failures are
// logged before they are returned.
func Main(ctx context.Context, args []string) error {
	app := newApp()
	app.Commands = []*cli.Command{
		NewDownloadCommand(),
		NewUploadCommand(),
		NewVersionCommand(),
	}

	return app.RunContext(ctx, args)
}

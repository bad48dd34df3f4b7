package command

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"

	"github.com/peak/wanna/config"
	"github.com/peak/wanna/storage"
	"github.com/peak/wanna/transfer"
)

// givenCommand returns the command and its arguments as typed in a shell.
func givenCommand(c *cli.Context) string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", c.Command.FullName(), shellquote.Join(c.Args().Slice()...)))
}

// NewTransferFlags returns the flags shared by download and upload.
func NewTransferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-encryption",
			Usage: "transfer the object without server side encryption",
		},
		&cli.BoolFlag{
			Name:  "checksum",
			Usage: "transfer the checksum companion of the file and verify it on download",
		},
		&cli.BoolFlag{
			Name:    "show-progress",
			Aliases: []string{"sp"},
			Usage:   "show a progress bar",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "use the given prefix instead of the upload prefix of the settings",
		},
		&cli.BoolFlag{
			Name:  "ignore-prefix",
			Usage: "use the path as the object key as is",
		},
	}
}

// NewTransferOptions creates transfer.Options from the command flags.
func NewTransferOptions(c *cli.Context) transfer.Options {
	return transfer.Options{
		NoEncryption: c.Bool("no-encryption"),
		AddChecksum:  c.Bool("checksum"),
		ShowProgress: c.Bool("show-progress"),
		Prefix:       c.String("prefix"),
		IgnorePrefix: c.Bool("ignore-prefix"),
	}
}

// NewStorageOpts creates storage.Options from the global flags.
func NewStorageOpts(c *cli.Context) storage.Options {
	return storage.Options{
		MaxRetries:  c.Int("retry-count"),
		Endpoint:    c.String("endpoint-url"),
		NoVerifySSL: c.Bool("no-verify-ssl"),
	}
}

func validateTransferCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected a single file path")
	}

	if c.IsSet("prefix") && c.Bool("ignore-prefix") {
		return fmt.Errorf(`it is not allowed to combine "prefix" and "ignore-prefix" flags`)
	}

	if _, err := config.ParseVendor(c.String("vendor")); err != nil {
		return fmt.Errorf("vendor %q: %w", c.String("vendor"), err)
	}

	return nil
}

// newClient loads the settings of the vendor and returns a transfer client
// for them.
func newClient(credentialsFile, vendor string, opts storage.Options) (*transfer.Client, error) {
	path := credentialsFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	settings, err := config.Load(path, vendor)
	if err != nil {
		return nil, err
	}

	return transfer.New(settings, transfer.WithStorageOptions(opts)), nil
}

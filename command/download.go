package command

import (
	"context"

	"github.com/urfave/cli/v2"

	errorpkg "github.com/peak/wanna/error"
	"github.com/peak/wanna/log"
	"github.com/peak/wanna/storage"
	"github.com/peak/wanna/transfer"
)

var downloadHelpTemplate = `Name:
	{{.HelpName}} - {{.Usage}}

Usage:
	{{.HelpName}} [options] path

Options:
	{{range .VisibleFlags}}{{.}}
	{{end}}
Examples:
	01. Download an encrypted file into reports/2021.csv
		 > wanna {{.HelpName}} reports/2021.csv

	02. Download a file and verify its checksum
		 > wanna {{.HelpName}} --checksum reports/2021.csv

	03. Download an object stored under another prefix
		 > wanna {{.HelpName}} --prefix outgoing reports/2021.csv

	04. Download the object whose key is the given path
		 > wanna {{.HelpName}} --ignore-prefix acme/outgoing/reports/2021.csv

	05. Download a file uploaded without encryption through a custom endpoint
		 > wanna --endpoint-url https://storage.example.com {{.HelpName}} --no-encryption reports/2021.csv
`

func NewDownloadCommand() *cli.Command {
	return &cli.Command{
		Name:               "download",
		HelpName:           "download",
		Usage:              "download a file from cloud storage",
		Flags:              NewTransferFlags(),
		CustomHelpTemplate: downloadHelpTemplate,
		Before: func(c *cli.Context) error {
			err := validateTransferCommand(c)
			if err != nil {
				printError(givenCommand(c), c.Command.Name, err)
			}
			return err
		},
		Action: func(c *cli.Context) error {
			return Download{
				path:        c.Args().First(),
				op:          c.Command.Name,
				fullCommand: givenCommand(c),

				credentialsFile: c.String("credentials-file"),
				vendor:          c.String("vendor"),
				opts:            NewTransferOptions(c),
				storageOpts:     NewStorageOpts(c),
			}.Run(c.Context)
		},
	}
}

// Download holds download operation flags and states.
type Download struct {
	path        string
	op          string
	fullCommand string

	credentialsFile string
	vendor          string
	opts            transfer.Options
	storageOpts     storage.Options
}

// Run downloads the file.
func (d Download) Run(ctx context.Context) error {
	client, err := newClient(d.credentialsFile, d.vendor, d.storageOpts)
	if err != nil {
		printError(d.fullCommand, d.op, err)
		return err
	}

	resp, err := client.Download(ctx, d.path, d.opts)
	if err != nil {
		err = &errorpkg.Error{
			Op:  d.op,
			Src: d.path,
			Err: err,
		}
		printError(d.fullCommand, d.op, err)
		return err
	}

	log.Info(log.InfoMessage{
		Operation:   d.op,
		Source:      resp.URL(),
		Destination: resp.Path,
		Size:        resp.Size,
	})

	return nil
}

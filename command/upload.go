package command

import (
	"context"

	"github.com/urfave/cli/v2"

	errorpkg "github.com/peak/wanna/error"
	"github.com/peak/wanna/log"
	"github.com/peak/wanna/storage"
	"github.com/peak/wanna/transfer"
)

var uploadHelpTemplate = `Name:
	{{.HelpName}} - {{.Usage}}

Usage:
	{{.HelpName}} [options] path

Options:
	{{range .VisibleFlags}}{{.}}
	{{end}}
Examples:
	01. Upload reports/2021.csv encrypted with the key of the settings
		 > wanna {{.HelpName}} reports/2021.csv

	02. Upload a file with its checksum companion
		 > wanna {{.HelpName}} --checksum reports/2021.csv

	03. Upload a file under another prefix with a progress bar
		 > wanna {{.HelpName}} --show-progress --prefix archive reports/2021.csv
`

func NewUploadCommand() *cli.Command {
	return &cli.Command{
		Name:               "upload",
		HelpName:           "upload",
		Usage:              "upload a file to cloud storage",
		Flags:              NewTransferFlags(),
		CustomHelpTemplate: uploadHelpTemplate,
		Before: func(c *cli.Context) error {
			err := validateTransferCommand(c)
			if err != nil {
				printError(givenCommand(c), c.Command.Name, err)
			}
			return err
		},
		Action: func(c *cli.Context) error {
			return Upload{
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

// Upload holds upload operation flags and states.
type Upload struct {
	path        string
	op          string
	fullCommand string

	credentialsFile string
	vendor          string
	opts            transfer.Options
	storageOpts     storage.Options
}

// Run uploads the file.
func (u Upload) Run(ctx context.Context) error {
	client, err := newClient(u.credentialsFile, u.vendor, u.storageOpts)
	if err != nil {
		printError(u.fullCommand, u.op, err)
		return err
	}

	resp, err := client.Upload(ctx, u.path, u.opts)
	if err != nil {
		err = &errorpkg.Error{
			Op:  u.op,
			Src: u.path,
			Err: err,
		}
		printError(u.fullCommand, u.op, err)
		return err
	}

	log.Info(log.InfoMessage{
		Operation:   u.op,
		Source:      resp.Path,
		Destination: resp.URL(),
		Size:        resp.Size,
	})

	return nil
}

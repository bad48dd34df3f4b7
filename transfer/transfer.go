// Package transfer downloads and uploads files through a storage vendor and
// verifies their checksum companions.
package transfer

import (
	"context"
	"os"

	"github.com/peak/wanna/checksum"
	"github.com/peak/wanna/config"
	"github.com/peak/wanna/log"
	"github.com/peak/wanna/progressbar"
	"github.com/peak/wanna/storage"
)

// Options alter a single transfer.
type Options struct {
	// NoEncryption transfers the primary object without the customer key
	// of the settings. The zero value encrypts. Checksum companions are
	// never encrypted.
	NoEncryption bool
	// AddChecksum transfers the checksum companion of the file too. A
	// download fails with *checksum.IntegrityError if the checksums differ.
	AddChecksum bool
	// ShowProgress draws a progress bar for the primary object.
	ShowProgress bool
	// Prefix overrides the upload prefix of the settings.
	Prefix string
	// IgnorePrefix uses the path as the object key verbatim.
	IgnorePrefix bool
}

// DefaultOptions returns the options used when none are given: encryption
// on, everything else off. It is the zero Options.
func DefaultOptions() Options {
	return Options{}
}

// VendorFunc returns a vendor client for the settings.
type VendorFunc func(context.Context, *config.Settings, storage.Options) (storage.Vendor, error)

// Client transfers files on behalf of the user the settings belong to.
type Client struct {
	settings    *config.Settings
	storageOpts storage.Options
	newVendor   VendorFunc
}

// Option configures a Client.
type Option func(*Client)

// WithStorageOptions sets the options every vendor client is created with.
// Prefix and IgnorePrefix are overridden per transfer.
func WithStorageOptions(opts storage.Options) Option {
	return func(c *Client) {
		c.storageOpts = opts
	}
}

// WithVendorFunc replaces storage.New as the vendor client constructor.
func WithVendorFunc(fn VendorFunc) Option {
	return func(c *Client) {
		c.newVendor = fn
	}
}

// New creates a Client for the given settings.
func New(settings *config.Settings, opts ...Option) *Client {
	c := &Client{
		settings:  settings,
		newVendor: storage.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) vendor(ctx context.Context, opts Options) (storage.Vendor, error) {
	storageOpts := c.storageOpts
	storageOpts.Prefix = opts.Prefix
	storageOpts.IgnorePrefix = opts.IgnorePrefix
	return c.newVendor(ctx, c.settings, storageOpts)
}

// Download fetches the object of path into the local file at path and
// returns the response of the vendor. With AddChecksum the checksum
// companion is fetched first, and the computed checksum of the downloaded
// file must match it. Vendor errors are returned as is.
func (c *Client) Download(ctx context.Context, path string, opts Options) (*storage.Response, error) {
	vendor, err := c.vendor(ctx, opts)
	if err != nil {
		return nil, err
	}

	var checksumPath string
	if opts.AddChecksum {
		checksumPath = path + vendor.ChecksumSuffix()
		if _, err := vendor.Download(ctx, checksumPath, storage.TransferOptions{}); err != nil {
			return nil, err
		}
	}

	bar := progressbar.Select(opts.ShowProgress)
	bar.Start()
	resp, err := vendor.Download(ctx, path, storage.TransferOptions{
		Encrypt:  !opts.NoEncryption,
		Progress: bar,
	})
	bar.Finish()
	if err != nil {
		return nil, err
	}

	if !opts.AddChecksum {
		return resp, nil
	}

	expected, err := os.ReadFile(checksumPath)
	if err != nil {
		return nil, err
	}

	actual, err := vendor.Checksum(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := checksum.Verify(path, expected, actual); err != nil {
		return nil, err
	}

	log.Info(log.InfoMessage{
		Operation: "verify",
		Source:    path,
		Detail:    "integrity check: OK",
	})

	return resp, nil
}

// Upload stores the local file at path as the object of path and returns
// the response of the vendor. With AddChecksum the checksum of the file is
// written next to it and uploaded as its companion.
func (c *Client) Upload(ctx context.Context, path string, opts Options) (*storage.Response, error) {
	vendor, err := c.vendor(ctx, opts)
	if err != nil {
		return nil, err
	}

	bar := progressbar.Select(opts.ShowProgress)
	bar.Start()
	resp, err := vendor.Upload(ctx, path, storage.TransferOptions{
		Encrypt:  !opts.NoEncryption,
		Progress: bar,
	})
	bar.Finish()
	if err != nil {
		return nil, err
	}

	if !opts.AddChecksum {
		return resp, nil
	}

	sum, err := vendor.Checksum(ctx, path)
	if err != nil {
		return nil, err
	}

	checksumPath := path + vendor.ChecksumSuffix()
	if err := os.WriteFile(checksumPath, append(sum, '\n'), 0o644); err != nil {
		return nil, err
	}

	if _, err := vendor.Upload(ctx, checksumPath, storage.TransferOptions{}); err != nil {
		return nil, err
	}

	return resp, nil
}

// DownloadFile loads the settings of vendor from the credentials file and
// downloads path with them. DefaultOptions, the zero Options, encrypts.
func DownloadFile(ctx context.Context, path, vendor string, opts Options) (*storage.Response, error) {
	settings, err := loadSettings(vendor)
	if err != nil {
		return nil, err
	}
	return New(settings).Download(ctx, path, opts)
}

// UploadFile loads the settings of vendor from the credentials file and
// uploads path with them.
func UploadFile(ctx context.Context, path, vendor string, opts Options) (*storage.Response, error) {
	settings, err := loadSettings(vendor)
	if err != nil {
		return nil, err
	}
	return New(settings).Upload(ctx, path, opts)
}

func loadSettings(vendor string) (*config.Settings, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path, vendor)
}

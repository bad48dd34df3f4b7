// Package storage implements the vendor clients objects are transferred
// with.
package storage

//go:generate mockgen -destination=mock/vendor.go -package=mock github.com/peak/wanna/storage Vendor

import (
	"context"
	"errors"
	"fmt"

	"github.com/peak/wanna/config"
	"github.com/peak/wanna/progressbar"
)

var (
	// ErrGivenObjectNotFound indicates a specified object is not found.
	ErrGivenObjectNotFound = errors.New("given object not found")

	// ErrUnsupportedVendor indicates there is no client for the credentials
	// of the settings.
	ErrUnsupportedVendor = errors.New("no client for vendor")

	// ErrInvalidEncryptionKey indicates the configured key can not be used
	// with the encryption algorithm.
	ErrInvalidEncryptionKey = errors.New("encryption key must be 32 bytes long")

	// ErrInvalidPath indicates a path which has no object key, like "." or
	// a path climbing out of the partner prefix.
	ErrInvalidPath = errors.New("path has no object key")
)

// Vendor is the client of a cloud storage vendor. Multipart transfers,
// parallelism and retries are left to the vendor SDK.
type Vendor interface {
	// Download fetches the object of path into the local file at path.
	Download(ctx context.Context, path string, opts TransferOptions) (*Response, error)
	// Upload stores the local file at path as the object of path.
	Upload(ctx context.Context, path string, opts TransferOptions) (*Response, error)
	// Checksum returns the checksum of the local file at path.
	Checksum(ctx context.Context, path string) ([]byte, error)
	// ChecksumSuffix is appended to path to get the path of its checksum
	// companion.
	ChecksumSuffix() string
}

// TransferOptions alter a single download or upload.
type TransferOptions struct {
	// Encrypt applies server side encryption with the customer key of the
	// settings.
	Encrypt bool
	// Progress receives transferred byte counts. Nil disables reporting.
	Progress progressbar.ProgressBar
}

func (o TransferOptions) progress() progressbar.ProgressBar {
	if o.Progress == nil {
		return &progressbar.NoOp{}
	}
	return o.Progress
}

// Options stores configuration for vendor clients.
type Options struct {
	// Prefix overrides the upload prefix of the settings.
	Prefix string
	// IgnorePrefix uses paths as object keys verbatim.
	IgnorePrefix bool

	MaxRetries  int
	Endpoint    string
	NoVerifySSL bool
}

// Response is the confirmation of a transfer returned by the vendor.
type Response struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	ETag      string `json:"etag,omitempty"`
	VersionID string `json:"version_id,omitempty"`
	Location  string `json:"location,omitempty"`
}

// URL returns the remote address of the object.
func (r *Response) URL() string {
	return fmt.Sprintf("s3://%v/%v", r.Bucket, r.Key)
}

// New returns the client matching the credentials of the settings.
func New(ctx context.Context, settings *config.Settings, opts Options) (Vendor, error) {
	switch credentials := settings.Credentials.(type) {
	case *config.AWSCredentials:
		return NewS3(ctx, settings, credentials, opts)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVendor, settings.Vendor)
	}
}

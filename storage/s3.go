package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/endpoints"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/peak/wanna/checksum"
	"github.com/peak/wanna/config"
)

var _ Vendor = (*S3)(nil)

const defaultContentType = "application/octet-stream"

// S3 is a Vendor which interacts with S3API, DownloaderAPI and
// UploaderAPI.
type S3 struct {
	api        s3iface.S3API
	downloader s3manageriface.DownloaderAPI
	uploader   s3manageriface.UploaderAPI
	settings   *config.Settings
	opts       Options
}

// NewS3 creates new S3 session authenticated with the given credentials.
func NewS3(ctx context.Context, settings *config.Settings, creds *config.AWSCredentials, opts Options) (*S3, error) {
	awsSession, err := newAWSSession(creds, opts)
	if err != nil {
		return nil, err
	}

	return &S3{
		api:        s3.New(awsSession),
		downloader: s3manager.NewDownloader(awsSession),
		uploader:   s3manager.NewUploader(awsSession),
		settings:   settings,
		opts:       opts,
	}, nil
}

// Key returns the object key of the given local path. Keys are
// "<partner>/<prefix>/<path>", prefix being either the prefix of the
// options or the upload prefix of the settings. Paths which resolve outside
// of that namespace, like "../x", are rejected with ErrInvalidPath.
func (s *S3) Key(p string) (string, error) {
	p = path.Clean(strings.TrimLeft(filepath.ToSlash(p), "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	if s.opts.IgnorePrefix {
		return p, nil
	}

	prefix := s.opts.Prefix
	if prefix == "" {
		prefix = s.settings.UploadPrefix
	}
	return path.Join(s.settings.PartnerName, prefix, p), nil
}

// Download is a multipart download operation which downloads the object of
// path into the local file at path. The object is first written to a
// temporary file which replaces the destination only if the download
// succeeds.
func (s *S3) Download(ctx context.Context, path string, opts TransferOptions) (*Response, error) {
	key, err := s.Key(path)
	if err != nil {
		return nil, err
	}
	bar := opts.progress()

	headInput := &s3.HeadObjectInput{
		Bucket: aws.String(s.settings.Bucket),
		Key:    aws.String(key),
	}
	getInput := &s3.GetObjectInput{
		Bucket: aws.String(s.settings.Bucket),
		Key:    aws.String(key),
	}

	if opts.Encrypt {
		algorithm, customerKey, err := s.customerKey()
		if err != nil {
			return nil, err
		}
		headInput.SSECustomerAlgorithm = algorithm
		headInput.SSECustomerKey = customerKey
		getInput.SSECustomerAlgorithm = algorithm
		getInput.SSECustomerKey = customerKey
	}

	head, err := s.api.HeadObjectWithContext(ctx, headInput)
	if err != nil {
		if errHasCode(err, "NotFound") {
			return nil, ErrGivenObjectNotFound
		}
		return nil, err
	}

	bar.SetObject(key)
	bar.AddTotalBytes(aws.Int64Value(head.ContentLength))

	file, err := createTemp(path)
	if err != nil {
		return nil, err
	}

	writer := &countingWriterAt{w: file, bar: bar}
	size, err := s.downloader.DownloadWithContext(ctx, writer, getInput)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(file.Name(), path)
	}
	if err != nil {
		_ = os.Remove(file.Name())
		return nil, err
	}

	return &Response{
		Bucket:    s.settings.Bucket,
		Key:       key,
		Path:      path,
		Size:      size,
		ETag:      strings.Trim(aws.StringValue(head.ETag), `"`),
		VersionID: aws.StringValue(head.VersionId),
	}, nil
}

// Upload is a multipart upload operation which stores the local file at
// path as the object of path.
func (s *S3) Upload(ctx context.Context, path string, opts TransferOptions) (*Response, error) {
	key, err := s.Key(path)
	if err != nil {
		return nil, err
	}
	bar := opts.progress()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	st, err := file.Stat()
	if err != nil {
		return nil, err
	}

	input := &s3manager.UploadInput{
		Bucket:      aws.String(s.settings.Bucket),
		Key:         aws.String(key),
		Body:        &countingReader{r: file, bar: bar},
		ContentType: aws.String(defaultContentType),
	}

	if opts.Encrypt {
		algorithm, customerKey, err := s.customerKey()
		if err != nil {
			return nil, err
		}
		input.SSECustomerAlgorithm = algorithm
		input.SSECustomerKey = customerKey
	}

	bar.SetObject(key)
	bar.AddTotalBytes(st.Size())

	output, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return nil, err
	}

	return &Response{
		Bucket:    s.settings.Bucket,
		Key:       key,
		Path:      path,
		Size:      st.Size(),
		VersionID: aws.StringValue(output.VersionID),
		Location:  output.Location,
	}, nil
}

// Checksum computes the checksum of the local file at path.
func (s *S3) Checksum(_ context.Context, path string) ([]byte, error) {
	return checksum.File(path)
}

// ChecksumSuffix implements the Vendor interface.
func (s *S3) ChecksumSuffix() string {
	return checksum.Suffix
}

// customerKey returns the SSE-C parameters of the settings.
func (s *S3) customerKey() (*string, *string, error) {
	if len(s.settings.EncryptionKey) != 32 {
		return nil, nil, ErrInvalidEncryptionKey
	}
	return aws.String(s.settings.EncryptionAlgorithm), aws.String(string(s.settings.EncryptionKey)), nil
}

// newAWSSession initializes a new AWS session with region fallback and custom
// options. Shared AWS config files are not read, the credentials always come
// from the wanna settings.
func newAWSSession(creds *config.AWSCredentials, opts Options) (*session.Session, error) {
	newSession := func(c *aws.Config) (*session.Session, error) {
		return session.NewSessionWithOptions(session.Options{
			Config:            *c,
			SharedConfigState: session.SharedConfigDisable,
		})
	}

	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = aws.UseServiceDefaultRetries
	}

	awsCfg := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(creds.AccessKeyID, creds.SecretAccessKey, "")).
		WithMaxRetries(maxRetries)

	if opts.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(opts.Endpoint).WithS3ForcePathStyle(true)
	}

	if opts.NoVerifySSL {
		awsCfg = awsCfg.WithHTTPClient(&http.Client{Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}})
	}

	if creds.Region != "" {
		awsCfg = awsCfg.WithRegion(creds.Region)
		return newSession(awsCfg)
	}

	ses, err := newSession(awsCfg)
	if err != nil {
		return nil, err
	}
	if aws.StringValue(ses.Config.Region) == "" {
		// No region specified in env or config, fallback to us-east-1
		awsCfg = awsCfg.WithRegion(endpoints.UsEast1RegionID)
		ses, err = newSession(awsCfg)
	}

	return ses, err
}

func errHasCode(err error, code string) bool {
	if code == "" || err == nil {
		return false
	}

	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		if awsErr.Code() == code {
			return true
		}
	}
	return false
}

// IsCancelationError reports whether given error is a SDK cancelation error.
func IsCancelationError(err error) bool {
	return errHasCode(err, request.CanceledErrorCode)
}

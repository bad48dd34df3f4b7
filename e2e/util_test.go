// Package e2e contains tests that run against a real wanna binary,
// compiled on the fly at the start of the test run.
package e2e

import (
	"bytes"
	jsonpkg "encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/endpoints"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/go-cmp/cmp"
	"github.com/iancoleman/strcase"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
	"gotest.tools/v3/icmd"

	"github.com/peak/wanna/config"
)

const (
	defaultAccessKeyID     = "wanna-test-access-key-id"
	defaultSecretAccessKey = "wanna-test-secret-access-key"

	testPartner      = "acme"
	testUploadPrefix = "incoming"
)

var (
	flagTestLogLevel = flag.String("test.log.level", "err", "Test log level: {debug|warn|err}")
	wannaPath        string
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

type setupOpts struct {
	s3backend string
}

type option func(*setupOpts)

func withS3Backend(backend string) option {
	return func(opts *setupOpts) {
		opts.s3backend = backend
	}
}

// setup starts a fake S3 server with an empty bucket, writes a credentials
// file pointing to it and returns a raw S3 client, the working directory
// of the commands and a command builder.
func setup(t *testing.T, options ...option) (*s3.S3, string, *fs.Dir, func(...string) icmd.Cmd) {
	t.Helper()

	opts := &setupOpts{
		s3backend: "bolt",
	}

	for _, option := range options {
		option(opts)
	}

	bucket := s3BucketFromTestName(t)

	testdir := fs.NewDir(t, bucket, fs.WithFile("credentials", credentialsFile(bucket)))
	t.Cleanup(testdir.Remove)

	workdir := fs.NewDir(t, bucket, fs.WithMode(0700))
	t.Cleanup(workdir.Remove)

	s3LogLevel := *flagTestLogLevel
	if *flagTestLogLevel == "debug" {
		s3LogLevel = "info" // aws has no level other than 'debug'
	}

	endpoint := s3ServerEndpoint(t, testdir, s3LogLevel, opts.s3backend)

	client := s3client(t, endpoint)
	createBucket(t, client, bucket)

	return client, bucket, workdir, wanna(workdir, testdir.Join("credentials"), endpoint)
}

func credentialsFile(bucket string) string {
	return fmt.Sprintf(`[default]
partner = %v
encryption_key = 000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f
upload_prefix = %v
bucket = %v

[aws]
aws_access_key_id = %v
aws_secret_access_key = %v
region = %v
`, testPartner, testUploadPrefix, bucket, defaultAccessKeyID, defaultSecretAccessKey, endpoints.UsEast1RegionID)
}

func s3client(t *testing.T, endpoint string) *s3.S3 {
	t.Helper()

	awsLogLevel := aws.LogOff
	if *flagTestLogLevel == "debug" {
		awsLogLevel = aws.LogDebug
	}

	s3Config := aws.NewConfig().
		WithEndpoint(endpoint).
		WithRegion(endpoints.UsEast1RegionID).
		WithCredentials(credentials.NewStaticCredentials(defaultAccessKeyID, defaultSecretAccessKey, "")).
		WithDisableSSL(true).
		WithS3ForcePathStyle(true).
		WithCredentialsChainVerboseErrors(true).
		WithLogLevel(awsLogLevel)

	sess, err := session.NewSession(s3Config)
	assert.NilError(t, err)

	return s3.New(sess)
}

func wanna(workdir *fs.Dir, credentials, endpoint string) func(args ...string) icmd.Cmd {
	return func(args ...string) icmd.Cmd {
		args = append([]string{"--endpoint-url", endpoint}, args...)

		cmd := icmd.Command(wannaPath, args...)
		cmd.Env = append(os.Environ(), fmt.Sprintf("%v=%v", config.EnvCredentialsFile, credentials))
		cmd.Dir = workdir.Path()
		return cmd
	}
}

func goBuildWanna() func() {
	tmpdir, err := ioutil.TempDir("", "")
	if err != nil {
		panic(err)
	}

	wanna := "wanna"
	if runtime.GOOS == "windows" {
		wanna += ".exe"
	}

	wannaPath = filepath.Join(tmpdir, wanna)

	workdir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// 'go build' will change the working directory to the path where tests
	// reside. workdir should be the project root.
	workdir = filepath.Dir(workdir)

	args := []string{"build", "-o", wannaPath}
	if runtime.GOOS != "windows" {
		args = []string{"build", "-race", "-o", wannaPath}
	}
	cmd := exec.Command("go", args...)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout
	cmd.Dir = workdir

	if err := cmd.Run(); err != nil {
		// The go compiler will have already produced some error messages
		// on stderr by the time we get here.
		panic(fmt.Sprintf("failed to build executable: %s", err))
	}

	if err := os.Chmod(wannaPath, 0755); err != nil {
		panic(err)
	}

	return func() {
		os.RemoveAll(tmpdir)
	}
}

func createBucket(t *testing.T, client *s3.S3, bucket string) {
	t.Helper()

	_, err := client.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func objectKey(path string) string {
	return fmt.Sprintf("%v/%v/%v", testPartner, testUploadPrefix, path)
}

var errS3NoSuchKey = fmt.Errorf("s3: no such key")

func ensureS3Object(client *s3.S3, bucket, key, content string) error {
	output, err := client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == s3.ErrCodeNoSuchKey {
		return fmt.Errorf("%v: %w", key, errS3NoSuchKey)
	}
	if err != nil {
		return err
	}
	defer output.Body.Close()

	var body bytes.Buffer
	if _, err := io.Copy(&body, output.Body); err != nil {
		return err
	}

	if diff := cmp.Diff(content, body.String()); diff != "" {
		return fmt.Errorf("s3 %v/%v: (-want +got):\n%v", bucket, key, diff)
	}

	return nil
}

func putFile(t *testing.T, client *s3.S3, bucket, key, content string) {
	t.Helper()

	_, err := client.PutObject(&s3.PutObjectInput{
		Body:   strings.NewReader(content),
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func s3BucketFromTestName(t *testing.T) string {
	t.Helper()
	bucket := strcase.ToKebab(t.Name())

	if len(bucket) > 63 {
		bucket = fmt.Sprintf("%v-%v", bucket[:55], randomString(7))
	}

	return bucket
}

func randomString(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

type compareFunc func(string) error

func equals(format string, args ...interface{}) compareFunc {
	expected := fmt.Sprintf(format, args...)
	return func(actual string) error {
		if expected == actual {
			return nil
		}
		return fmt.Errorf("(-want +got):\n%v", cmp.Diff(expected, actual))
	}
}

func contains(format string, args ...interface{}) compareFunc {
	expected := fmt.Sprintf(format, args...)
	return func(actual string) error {
		if strings.Contains(actual, expected) {
			return nil
		}
		return fmt.Errorf("expected %q to contain %q", actual, expected)
	}
}

func json(format string, args ...interface{}) compareFunc {
	expected := fmt.Sprintf(format, args...)
	return func(actual string) error {
		var want, got interface{}
		if err := jsonpkg.Unmarshal([]byte(expected), &want); err != nil {
			return fmt.Errorf("expected is not a valid json: %v", err)
		}
		if err := jsonpkg.Unmarshal([]byte(actual), &got); err != nil {
			return fmt.Errorf("actual is not a valid json: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			return fmt.Errorf("(-want +got):\n%v", diff)
		}
		return nil
	}
}

// assertLines runs the comparison of each line in expectedlines against the
// matching line of actual. Every line must have a comparison.
func assertLines(t *testing.T, actual string, expectedlines map[int]compareFunc) {
	t.Helper()

	actual = strings.TrimSpace(actual)
	if actual == "" {
		if len(expectedlines) > 0 {
			t.Errorf("expected a content, got empty string")
		}
		return
	}

	lines := strings.Split(actual, "\n")
	if len(expectedlines) != len(lines) {
		t.Errorf("expected %v lines, got %v", len(expectedlines), len(lines))
	}

	for i, line := range lines {
		line = regexp.MustCompile(`\s+`).ReplaceAllString(line, " ")

		cmp, ok := expectedlines[i]
		if !ok {
			t.Errorf("expected a comparison function for line %q (lineno: %v)", line, i)
			continue
		}

		if err := cmp(line); err != nil {
			t.Errorf("line %v: %v", i, err)
		}
	}

	if t.Failed() {
		t.Log(actual)
	}
}

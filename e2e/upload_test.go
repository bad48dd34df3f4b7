package e2e

import (
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
	"gotest.tools/v3/icmd"
)

const (
	fileContent  = "content"
	fileChecksum = "9a0364b9e99bb480dd25e1f0284c8555"
)

// wanna upload --no-encryption data.bin
func TestUploadSingleFile(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t)
	fs.Apply(t, workdir, fs.WithFile("data.bin", fileContent))

	cmd := wanna("upload", "--no-encryption", "data.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Success)

	assertLines(t, result.Stdout(), map[int]compareFunc{
		0: equals("upload data.bin s3://%v/%v (7 B)", bucket, objectKey("data.bin")),
	})

	assert.NilError(t, ensureS3Object(s3client, bucket, objectKey("data.bin"), fileContent))
}

// wanna --json upload --no-encryption data.bin
func TestUploadSingleFileJSON(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t, withS3Backend("mem"))
	fs.Apply(t, workdir, fs.WithFile("data.bin", fileContent))

	cmd := wanna("--json", "upload", "--no-encryption", "data.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Success)

	assertLines(t, result.Stdout(), map[int]compareFunc{
		0: json(`
			{
				"operation": "upload",
				"success": true,
				"source": "data.bin",
				"destination": "s3://%v/%v",
				"size": 7
			}
		`, bucket, objectKey("data.bin")),
	})

	assert.NilError(t, ensureS3Object(s3client, bucket, objectKey("data.bin"), fileContent))
}

// wanna upload --no-encryption --checksum data.bin
func TestUploadWithChecksum(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t)
	fs.Apply(t, workdir, fs.WithFile("data.bin", fileContent))

	cmd := wanna("upload", "--no-encryption", "--checksum", "data.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Success)

	assertLines(t, result.Stdout(), map[int]compareFunc{
		0: equals("upload data.bin s3://%v/%v (7 B)", bucket, objectKey("data.bin")),
	})

	expected := fs.Expected(t,
		fs.WithFile("data.bin", fileContent),
		fs.WithFile("data.bin.md5", fileChecksum+"\n"),
	)
	assert.Assert(t, fs.Equal(workdir.Path(), expected))

	assert.NilError(t, ensureS3Object(s3client, bucket, objectKey("data.bin"), fileContent))
	assert.NilError(t, ensureS3Object(s3client, bucket, objectKey("data.bin.md5"), fileChecksum+"\n"))
}

// wanna upload --no-encryption --prefix archive reports/2021.csv
func TestUploadWithPrefix(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t)
	fs.Apply(t, workdir, fs.WithDir("reports", fs.WithFile("2021.csv", fileContent)))

	cmd := wanna("upload", "--no-encryption", "--prefix", "archive", "reports/2021.csv")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Success)

	key := testPartner + "/archive/reports/2021.csv"
	assertLines(t, result.Stdout(), map[int]compareFunc{
		0: equals("upload reports/2021.csv s3://%v/%v (7 B)", bucket, key),
	})

	assert.NilError(t, ensureS3Object(s3client, bucket, key, fileContent))
}

// wanna upload --no-encryption --ignore-prefix raw/data.bin
func TestUploadIgnorePrefix(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t)
	fs.Apply(t, workdir, fs.WithDir("raw", fs.WithFile("data.bin", fileContent)))

	cmd := wanna("upload", "--no-encryption", "--ignore-prefix", "raw/data.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Success)

	assert.NilError(t, ensureS3Object(s3client, bucket, "raw/data.bin", fileContent))
}

// wanna upload missing.bin
func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	_, _, _, wanna := setup(t)

	cmd := wanna("upload", "--no-encryption", "missing.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Expected{ExitCode: 1})

	assertLines(t, result.Stderr(), map[int]compareFunc{
		0: contains(`ERROR "upload missing.bin": open missing.bin: no such file or directory`),
	})
}

// SSE-C keys are never sent over plain HTTP.
func TestUploadEncryptedOverHTTP(t *testing.T) {
	t.Parallel()

	s3client, bucket, workdir, wanna := setup(t)
	fs.Apply(t, workdir, fs.WithFile("data.bin", fileContent))

	cmd := wanna("upload", "data.bin")
	result := icmd.RunCmd(cmd)

	result.Assert(t, icmd.Expected{ExitCode: 1})

	assertLines(t, result.Stderr(), map[int]compareFunc{
		0: contains("cannot send SSE keys over HTTP"),
	})

	err := ensureS3Object(s3client, bucket, objectKey("data.bin"), fileContent)
	assert.ErrorContains(t, err, errS3NoSuchKey.Error())
}

// Package checksum computes and verifies content digests of transferred
// files.
package checksum

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Suffix is appended to the path of an object to get the path of its
// checksum companion object.
const Suffix = ".md5"

// IntegrityError states the checksum of a transferred file does not match
// the checksum recorded in its companion object.
type IntegrityError struct {
	Path     string
	Expected []byte
	Actual   []byte
	// Diff is a unified diff from Actual to Expected.
	Diff string
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return "file corrupted!\n" + e.Diff
}

// File computes the hex encoded MD5 digest of the local file.
func File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Reader(f)
}

// Reader computes the hex encoded MD5 digest of everything read from r.
func Reader(r io.Reader) ([]byte, error) {
	hash := md5.New()
	if _, err := io.Copy(hash, r); err != nil {
		return nil, err
	}

	sum := hash.Sum(nil)
	encoded := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(encoded, sum)
	return encoded, nil
}

// Verify compares the checksum read from the companion object of path with
// the checksum computed for path. Surrounding whitespace of expected is
// ignored.
func Verify(path string, expected, actual []byte) error {
	expected = bytes.TrimSpace(expected)
	if bytes.Equal(expected, actual) {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(actual)),
		B:        difflib.SplitLines(string(expected)),
		FromFile: "computed",
		ToFile:   path + Suffix,
		Context:  1,
	})
	if err != nil {
		diff = fmt.Sprintf("-%s\n+%s\n", actual, expected)
	}

	return &IntegrityError{
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Diff:     diff,
	}
}

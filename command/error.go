package command

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/peak/wanna/checksum"
	errorpkg "github.com/peak/wanna/error"
	"github.com/peak/wanna/log"
)

// printError is the helper function to log error messages.
func printError(command, op string, err error) {
	// dont print cancelation errors
	if errorpkg.IsCancelation(err) {
		return
	}

	// check if we have our own error type
	var cerr *errorpkg.Error
	if errors.As(err, &cerr) {
		log.Error(log.ErrorMessage{
			Err:       errorString(cerr.Err),
			Command:   cerr.FullCommand(),
			Operation: cerr.Op,
		})
		return
	}

	// check if errors are aggregated
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, err := range merr.Errors {
			printError(command, op, err)
		}
		return
	}

	// we don't know the exact error type. log the error as is.
	log.Error(log.ErrorMessage{
		Err:       errorString(err),
		Command:   command,
		Operation: op,
	})
}

// errorString returns the single line message of err. Integrity errors keep
// their diff.
func errorString(err error) string {
	var integrityErr *checksum.IntegrityError
	if errors.As(err, &integrityErr) {
		return strings.TrimSpace(err.Error())
	}
	return cleanupError(err)
}

// cleanupError converts multiline messages into
// a single line.
func cleanupError(err error) string {
	s := strings.Replace(err.Error(), "\n", " ", -1)
	s = strings.Replace(s, "\t", " ", -1)
	s = strings.Replace(s, "  ", " ", -1)
	s = strings.TrimSpace(s)
	return s
}

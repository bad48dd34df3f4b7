// Package error holds the error type the command line reports failures
// with.
package error

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/peak/wanna/storage"
)

// Error is the type that implements error interface.
type Error struct {
	// Op is the operation being performed, usually the name of the command
	// being invoked (download, upload)
	Op string
	// Src is the source argument
	Src string
	// Dst is the destination argument
	Dst string
	// The underlying error if any
	Err error
}

// FullCommand returns the command string that occurred at.
func (e *Error) FullCommand() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v %v", e.Op, e.Src, e.Dst))
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap unwraps the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsCancelation reports whether if given error is a cancelation error.
func IsCancelation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return true
	}

	if storage.IsCancelationError(err) {
		return true
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return false
	}

	for _, err := range merr.Errors {
		if IsCancelation(err) {
			return true
		}
	}

	return false
}

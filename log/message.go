package log

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/peak/wanna/strutil"
)

// Message is an interface to print structured logs.
type Message interface {
	fmt.Stringer
	JSON() string
}

// InfoMessage is a generic message structure for successful operations.
type InfoMessage struct {
	Operation   string `json:"operation"`
	Success     bool   `json:"success"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// String is the string representation of InfoMessage.
func (i InfoMessage) String() string {
	s := fmt.Sprintf("%v %v", i.Operation, i.Source)
	if i.Destination != "" {
		s += " " + i.Destination
	}
	if i.Size > 0 {
		s += fmt.Sprintf(" (%v)", humanize.Bytes(uint64(i.Size)))
	}
	if i.Detail != "" {
		s += ": " + i.Detail
	}
	return s
}

// JSON is the JSON representation of InfoMessage.
func (i InfoMessage) JSON() string {
	i.Success = true
	return strutil.JSON(i)
}

// ErrorMessage is a generic message structure for unsuccessful operations.
type ErrorMessage struct {
	Operation string `json:"operation,omitempty"`
	Command   string `json:"command,omitempty"`
	Err       string `json:"error"`
}

// String is the string representation of ErrorMessage.
func (e ErrorMessage) String() string {
	if e.Command == "" {
		return e.Err
	}
	return fmt.Sprintf("%q: %v", e.Command, e.Err)
}

// JSON is the JSON representation of ErrorMessage.
func (e ErrorMessage) JSON() string {
	return strutil.JSON(e)
}

// WarningMessage is a generic message structure for operations which
// succeeded with a caveat.
type WarningMessage struct {
	Operation string `json:"operation,omitempty"`
	Command   string `json:"command,omitempty"`
	Err       string `json:"error"`
}

// String is the string representation of WarningMessage.
func (w WarningMessage) String() string {
	if w.Command == "" {
		return w.Err
	}
	return fmt.Sprintf("%q (%v)", w.Command, w.Err)
}

// JSON is the JSON representation of WarningMessage.
func (w WarningMessage) JSON() string {
	return strutil.JSON(w)
}

// DebugMessage is a generic message structure for debugging logs.
type DebugMessage struct {
	Operation string `json:"operation,omitempty"`
	Command   string `json:"command,omitempty"`
	Err       string `json:"error,omitempty"`
	Content   string `json:"content,omitempty"`
}

// String is the string representation of DebugMessage.
func (d DebugMessage) String() string {
	if d.Err == "" {
		return d.Content
	}
	if d.Command == "" {
		return d.Err
	}
	return fmt.Sprintf("%q (%v)", d.Command, d.Err)
}

// JSON is the JSON representation of DebugMessage.
func (d DebugMessage) JSON() string {
	return strutil.JSON(d)
}

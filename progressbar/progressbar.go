// Package progressbar reports the progress of a transfer on the terminal.
package progressbar

import (
	"sync"

	"github.com/cheggaaa/pb/v3"
)

// ProgressBar receives byte and object counts of a running transfer.
type ProgressBar interface {
	Start()
	Finish()
	SetObject(key string)
	AddCompletedBytes(bytes int64)
	AddTotalBytes(bytes int64)
}

// NoOp is a ProgressBar which discards every update.
type NoOp struct{}

func (pb *NoOp) Start() {}

func (pb *NoOp) Finish() {}

func (pb *NoOp) SetObject(key string) {}

func (pb *NoOp) AddCompletedBytes(bytes int64) {}

func (pb *NoOp) AddTotalBytes(bytes int64) {}

// CommandProgressBar draws the byte progress of one object with
// cheggaaa/pb, labelled with the object key.
type CommandProgressBar struct {
	totalBytes     int64
	completedBytes int64
	mu             sync.Mutex
	progressbar    *pb.ProgressBar
}

var _ ProgressBar = (*CommandProgressBar)(nil)

const progressbarTemplate = `{{percent . | green}} {{bar . " " "━" "━" "─" " " | green}} {{counters . | green}} {{speed . "(%s/s)" | red}} {{rtime . "%s left" | blue}} {{ string . "object" | yellow}}`

// New returns a ProgressBar writing to standard error.
func New() *CommandProgressBar {
	cp := &CommandProgressBar{}
	cp.progressbar = pb.New64(0)
	cp.progressbar.Set(pb.Bytes, true)
	cp.progressbar.Set(pb.SIBytesPrefix, true)
	cp.progressbar.SetWidth(128)
	cp.progressbar.SetTemplateString(progressbarTemplate)
	return cp
}

// Select returns a CommandProgressBar if enabled, a NoOp otherwise.
func Select(enabled bool) ProgressBar {
	if enabled {
		return New()
	}
	return &NoOp{}
}

func (cp *CommandProgressBar) Start() {
	cp.progressbar.Start()
}

func (cp *CommandProgressBar) Finish() {
	cp.progressbar.Finish()
}

// SetObject labels the bar with the key of the transferred object.
func (cp *CommandProgressBar) SetObject(key string) {
	cp.progressbar.Set("object", key)
}

func (cp *CommandProgressBar) AddCompletedBytes(bytes int64) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.completedBytes += bytes
	cp.progressbar.Add64(bytes)
}

func (cp *CommandProgressBar) AddTotalBytes(bytes int64) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.totalBytes += bytes
	cp.progressbar.SetTotal(cp.totalBytes)
}

package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/peak/wanna/progressbar"
)

const downloadedFileMode = 0o644

// createTemp creates a temporary file next to path. The file is renamed to
// path once the transfer into it completes.
func createTemp(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	file, err := os.CreateTemp(dir, filepath.Base(path)+".*.part")
	if err != nil {
		return nil, err
	}

	// CreateTemp creates files readable by the owner only.
	if err := file.Chmod(downloadedFileMode); err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, err
	}
	return file, nil
}

// countingWriterAt reports every written byte to a progress bar.
type countingWriterAt struct {
	w   io.WriterAt
	bar progressbar.ProgressBar
}

func (c *countingWriterAt) WriteAt(p []byte, off int64) (int, error) {
	n, err := c.w.WriteAt(p, off)
	c.bar.AddCompletedBytes(int64(n))
	return n, err
}

// countingReader reports every read byte to a progress bar. It hides the
// io.Seeker of the underlying file, so the uploader reads each byte once.
type countingReader struct {
	r   io.Reader
	bar progressbar.ProgressBar
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.bar.AddCompletedBytes(int64(n))
	return n, err
}

package pipeline

import (
	"errors"
	"fmt"
)

// ErrBufferLimit indicates the in-memory output exceeded the caller-supplied
// ceiling.
var ErrBufferLimit = errors.New("output exceeds buffer limit")

// ExitError reports a non-zero transcoder exit. The transcoder's exit code is
// authoritative for the whole pipeline; the downloader's exit code is carried
// as a diagnostic only.
type ExitError struct {
	// Code is the transcoder's exit status.
	Code int
	// DownloaderExit is the downloader's exit status, or -1 if it was not
	// observed.
	DownloaderExit int
	// Stderr holds the tail of the transcoder's stderr output.
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("transcoder exited with code %d", e.Code)
}

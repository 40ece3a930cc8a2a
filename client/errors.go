package client

import (
	"errors"
	"fmt"

	"github.com/famomatic/ytpipe/internal/binres"
	"github.com/famomatic/ytpipe/internal/pipeline"
)

var (
	// ErrMissingURL indicates Download was called without a source URL.
	ErrMissingURL = errors.New("missing url")
	// ErrInvalidMode indicates an Options.Mode outside audio/video.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrBufferLimit indicates the in-memory output exceeded
	// Options.MaxBufferBytes.
	ErrBufferLimit = errors.New("output exceeds buffer limit")
)

// TranscodeError reports that the transcoder process exited non-zero, which
// fails the whole pipeline regardless of the downloader's exit status.
type TranscodeError struct {
	Code           int
	DownloaderExit int
	Stderr         string
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcoder exited with code %d", e.Code)
}

// FetchError reports a failed binary auto-provisioning download.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Download failed: %d", e.StatusCode)
}

// mapError converts internal pipeline errors into the exported taxonomy.
// Anything unrecognized passes through unchanged.
func mapError(err error) error {
	var exitErr *pipeline.ExitError
	if errors.As(err, &exitErr) {
		return &TranscodeError{
			Code:           exitErr.Code,
			DownloaderExit: exitErr.DownloaderExit,
			Stderr:         exitErr.Stderr,
		}
	}

	var fetchErr *binres.FetchError
	if errors.As(err, &fetchErr) {
		return &FetchError{URL: fetchErr.URL, StatusCode: fetchErr.StatusCode}
	}

	if errors.Is(err, pipeline.ErrBufferLimit) {
		return ErrBufferLimit
	}

	return err
}

package client

import (
	"net/http"
	"time"
)

// Config holds configuration for the download client.
type Config struct {
	// CacheDir is where auto-provisioned binaries are stored.
	// If empty, "./bin" is used. A leading "~" is expanded.
	CacheDir string

	// HTTPClient is used for binary auto-provisioning.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// Timeout bounds a whole Download call, external processes included.
	// Zero means no timeout, matching the historical behavior of this
	// kind of wrapper; hung external processes then hang the pipeline.
	Timeout time.Duration

	// BinaryBaseURL overrides the release-asset host binaries are fetched
	// from. Intended for tests and mirrors.
	BinaryBaseURL string
}

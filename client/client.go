// Package client is the library surface for ytpipe: a thin orchestration
// wrapper that resolves the yt-dlp and ffmpeg binaries, wires them together
// through an OS pipe, and returns the transcoded media as an in-memory
// buffer or a file on disk.
package client

import (
	"github.com/rs/zerolog"

	"github.com/famomatic/ytpipe/internal/binres"
	xlog "github.com/famomatic/ytpipe/internal/log"
	"github.com/famomatic/ytpipe/internal/pipeline"
)

// Client runs download pipelines. It is safe for concurrent use; each
// Download call is an independent pipeline run.
type Client struct {
	config   Config
	pipeline *pipeline.Pipeline
	logger   zerolog.Logger
}

// New returns a Client for the given configuration.
func New(cfg Config) *Client {
	resolver := binres.New(cfg.CacheDir, cfg.HTTPClient)
	if cfg.BinaryBaseURL != "" {
		resolver.BaseURL = cfg.BinaryBaseURL
	}
	return &Client{
		config:   cfg,
		pipeline: pipeline.New(resolver),
		logger:   xlog.WithComponent("client"),
	}
}

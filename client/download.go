package client

import (
	"context"
	"os"
	"strings"

	"github.com/famomatic/ytpipe/internal/cookies"
)

// Result describes a completed download. Exactly one of Buffer or OutputPath
// is populated.
type Result struct {
	// Buffer holds the transcoded bytes when Options.Output was empty.
	Buffer []byte
	// OutputPath is the written file when Options.Output was set.
	OutputPath string
	// DownloaderExit is the downloader's exit status, kept as a
	// diagnostic: a non-zero value with overall success means the
	// transcoder accepted a partial stream.
	DownloaderExit int
}

// Download fetches url through the downloader/transcoder pipeline. When
// opts.Output is empty the transcoded media is returned in Result.Buffer;
// otherwise it is written to the given path and Result.Buffer is nil.
func (c *Client) Download(ctx context.Context, url string, opts Options) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrMissingURL
	}

	req, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	if opts.Cookies != "" {
		path, cleanup, err := cookies.Materialize(opts.Cookies)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		req.CookiesFile = path
		c.logCookies(path)
	}

	res, err := c.pipeline.Run(ctx, url, req)
	if err != nil {
		return nil, mapError(err)
	}

	return &Result{
		Buffer:         res.Buffer,
		OutputPath:     res.OutputPath,
		DownloaderExit: res.DownloaderExit,
	}, nil
}

// logCookies emits a diagnostic count of usable cookies. Parse problems are
// left for the downloader to complain about.
func (c *Client) logCookies(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	parsed, err := cookies.ParseNetscape(f)
	if err != nil {
		return
	}
	c.logger.Debug().Int("cookies", len(parsed)).Str("file", path).Msg("cookie file loaded")
}

package client

import (
	"fmt"

	"github.com/famomatic/ytpipe/internal/pipeline"
)

// Mode values accepted by Options.Mode.
const (
	ModeAudio = "audio"
	ModeVideo = "video"
)

// Options controls one download. Zero values select the documented defaults:
// audio mode, mp3/mp4 format, quality "0" (audio) or "best" (video).
type Options struct {
	// Mode is "audio" (default) or "video".
	Mode string

	// Format is the output container format. Defaults to mp3 for audio
	// and mp4 for video.
	Format string

	// Quality is the quality selector: the transcoder's audio quality
	// scale in audio mode (default "0", the best VBR setting), the
	// downloader's format selector in video mode (default "best").
	Quality string

	// Output is the target file path. When empty the transcoded bytes
	// are returned in Result.Buffer instead.
	Output string

	// Cookies is a cookies.txt path or raw Netscape-format cookie data.
	// Raw data is materialized into a temp file for the downloader and
	// removed when the run finishes.
	Cookies string

	// DownloaderArgs and TranscoderArgs are passed through to the
	// respective tool verbatim, after the built-in arguments.
	DownloaderArgs []string
	TranscoderArgs []string

	// MaxBufferBytes caps in-memory accumulation when Output is empty.
	// Zero means unbounded, mirroring the original unbounded collection;
	// set a ceiling for production use.
	MaxBufferBytes int64
}

// resolve applies defaulting rules once and returns the immutable pipeline
// request the rest of the run consumes.
func (o Options) resolve() (pipeline.Request, error) {
	mode := pipeline.Mode(o.Mode)
	if o.Mode == "" {
		mode = pipeline.ModeAudio
	}

	req := pipeline.Request{
		Mode:           mode,
		Format:         o.Format,
		Quality:        o.Quality,
		Output:         o.Output,
		DownloaderArgs: o.DownloaderArgs,
		TranscoderArgs: o.TranscoderArgs,
		MaxBufferBytes: o.MaxBufferBytes,
	}

	switch mode {
	case pipeline.ModeAudio:
		if req.Format == "" {
			req.Format = "mp3"
		}
		if req.Quality == "" {
			req.Quality = "0"
		}
	case pipeline.ModeVideo:
		if req.Format == "" {
			req.Format = "mp4"
		}
		if req.Quality == "" {
			req.Quality = "best"
		}
	default:
		return pipeline.Request{}, fmt.Errorf("%w: %q", ErrInvalidMode, o.Mode)
	}

	return req, nil
}

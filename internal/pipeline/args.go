package pipeline

// Mode selects the pipeline's output kind.
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// Request is the fully-defaulted parameter set for one pipeline run. Values
// are resolved once at the client entry point and not mutated afterwards.
type Request struct {
	Mode    Mode
	Format  string
	Quality string

	// Output is the target file path. Empty means buffer mode: the
	// transcoder writes to its stdout and the bytes are accumulated.
	Output string

	// CookiesFile is an already materialized cookies.txt path, or empty.
	CookiesFile string

	// DownloaderArgs and TranscoderArgs are appended verbatim after the
	// built-in arguments. They may override or duplicate built-ins; no
	// conflict detection is attempted.
	DownloaderArgs []string
	TranscoderArgs []string

	// MaxBufferBytes caps in-memory accumulation in buffer mode.
	// Zero means unbounded.
	MaxBufferBytes int64
}

// downloaderArgs builds the argument list for the media downloader. The
// downloader always streams to stdout; the pipeline owns where bytes land.
func downloaderArgs(url string, req Request) []string {
	args := []string{"-q", "--no-warnings"}

	switch req.Mode {
	case ModeVideo:
		args = append(args, "-f", req.Quality, "--merge-output-format", req.Format)
	default:
		args = append(args, "-f", "bestaudio")
	}

	if req.CookiesFile != "" {
		args = append(args, "--cookies", req.CookiesFile)
	}

	args = append(args, "-o", "-")
	args = append(args, req.DownloaderArgs...)
	args = append(args, url)
	return args
}

// transcoderArgs builds the argument list for the media transcoder. Input is
// always the downloader's stdout on pipe:0; output is pipe:1 in buffer mode
// or the requested path otherwise.
func transcoderArgs(req Request) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-i", "pipe:0"}

	switch req.Mode {
	case ModeVideo:
		args = append(args, "-c", "copy")
		// A non-seekable mp4 output needs fragmented muxing.
		if req.Format == "mp4" && req.Output == "" {
			args = append(args, "-movflags", "frag_keyframe+empty_moov")
		}
	default:
		args = append(args, "-vn", "-q:a", req.Quality)
	}

	args = append(args, "-f", req.Format)
	args = append(args, req.TranscoderArgs...)

	if req.Output != "" {
		args = append(args, "-y", req.Output)
	} else {
		args = append(args, "pipe:1")
	}
	return args
}
